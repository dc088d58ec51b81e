package services

import (
	"context"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

// Request DTO aliases; the validator package owns the shapes and tags.
type SignupRequest = validator.SignupRequest
type PlacementTestRequest = validator.PlacementTestRequest
type ConsultationRequest = validator.ConsultationRequest
type EnrollRequest = validator.EnrollRequest
type SubmitAssignmentRequest = validator.SubmitAssignmentRequest
type CreateAssignmentRequest = validator.CreateAssignmentRequest
type GradeRequest = validator.GradeRequest
type CreateCourseRequest = validator.CreateCourseRequest

// ===== SERVICE INTERFACES =====

// CatalogService serves the public course catalog and its idempotent seed.
type CatalogService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	SeedDefaultCourses(ctx context.Context) error
}

// IntakeService handles the unauthenticated public intake surfaces.
type IntakeService interface {
	ScorePlacementTest(ctx context.Context, req *PlacementTestRequest) (*models.PlacementResult, error)
	BookConsultation(ctx context.Context, req *ConsultationRequest) (string, error)
}

// AccountService creates identities plus profiles and serves the caller's own
// profile.
type AccountService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// StudentService covers student-gated operations.
type StudentService interface {
	GetDashboard(ctx context.Context, userID string) (*models.StudentDashboard, error)
	Enroll(ctx context.Context, userID string, req *EnrollRequest) (*models.Enrollment, error)
	SubmitAssignment(ctx context.Context, userID string, req *SubmitAssignmentRequest) (*models.Submission, error)
}

// TeacherService covers teacher-gated operations.
type TeacherService interface {
	GetDashboard(ctx context.Context, teacherID string) (*models.TeacherDashboard, error)
	CreateAssignment(ctx context.Context, teacherID string, req *CreateAssignmentRequest) (*models.Assignment, error)
	GradeSubmission(ctx context.Context, teacherID string, req *GradeRequest) (*models.Submission, error)
}

// AdminService covers admin-gated operations.
type AdminService interface {
	GetDashboard(ctx context.Context) (*models.AdminDashboardStats, error)
	ListUsers(ctx context.Context) ([]models.Profile, error)
	ExportUsers(ctx context.Context) ([]byte, error)
}
