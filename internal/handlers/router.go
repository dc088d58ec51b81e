package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

type HandlerManager struct {
	catalogHandler *CatalogHandler
	intakeHandler  *IntakeHandler
	accountHandler *AccountHandler
	studentHandler *StudentHandler
	teacherHandler *TeacherHandler
	adminHandler   *AdminHandler
	authMiddleware *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		catalogHandler: NewCatalogHandler(serviceManager.Catalog(), logger),
		intakeHandler:  NewIntakeHandler(serviceManager.Intake(), logger),
		accountHandler: NewAccountHandler(serviceManager.Account(), logger),
		studentHandler: NewStudentHandler(serviceManager.Student(), logger),
		teacherHandler: NewTeacherHandler(serviceManager.Teacher(), logger),
		adminHandler:   NewAdminHandler(serviceManager.Admin(), serviceManager.Catalog(), logger),
		authMiddleware: NewAuthMiddleware(repo.Identity(), repo.KV(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	auth := hm.authMiddleware

	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.GET("/courses", hm.catalogHandler.ListCourses)
		v1.GET("/courses/:id", hm.catalogHandler.GetCourse)
		v1.POST("/placement-test", hm.intakeHandler.SubmitPlacementTest)
		v1.POST("/consultation", hm.intakeHandler.BookConsultation)
		v1.POST("/signup", hm.accountHandler.Signup)
		v1.POST("/init-courses", hm.catalogHandler.InitCourses)

		// Authenticated, no role requirement
		v1.GET("/profile", auth.RequireAuth(), hm.accountHandler.GetProfile)

		// Student routes
		student := v1.Group("/student")
		student.Use(auth.RequireAuth(), auth.RequireRole(models.RoleStudent))
		{
			student.GET("/dashboard", hm.studentHandler.GetDashboard)
			student.POST("/enroll", hm.studentHandler.Enroll)
			student.POST("/assignment/submit", hm.studentHandler.SubmitAssignment)
		}

		// Teacher routes
		teacher := v1.Group("/teacher")
		teacher.Use(auth.RequireAuth(), auth.RequireRole(models.RoleTeacher))
		{
			teacher.GET("/dashboard", hm.teacherHandler.GetDashboard)
			teacher.POST("/assignment/create", hm.teacherHandler.CreateAssignment)
			teacher.POST("/assignment/grade", hm.teacherHandler.GradeSubmission)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(auth.RequireAuth(), auth.RequireRole(models.RoleAdmin))
		{
			admin.GET("/dashboard", hm.adminHandler.GetDashboard)
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.GET("/users/export", hm.adminHandler.ExportUsers)
			admin.POST("/course/create", hm.adminHandler.CreateCourse)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "portal-service",
		})
	})
}
