package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/services"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	adminService   services.AdminService
	catalogService services.CatalogService
}

func NewAdminHandler(adminService services.AdminService, catalogService services.CatalogService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    NewBaseHandler(logger),
		adminService:   adminService,
		catalogService: catalogService,
	}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting admin dashboard")

	stats, err := h.adminService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"stats": stats})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"users": users})
}

// ExportUsers streams the profile list as an xlsx workbook.
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	h.LogRequest(c, "Exporting users")

	workbook, err := h.adminService.ExportUsers(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func (h *AdminHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "Creating course")

	var req services.CreateCourseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	course, err := h.catalogService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"courseId": course.ID})
}
