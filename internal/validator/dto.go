package validator

import "github.com/atlas-lingua/portal-service/internal/models"

// Request DTOs for every mutating endpoint. Shapes mirror the records in
// internal/models; validation tags enforce at the boundary what the flat
// key-value store cannot.

// SignupRequest creates an identity at the auth provider plus a Profile record.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

type PlacementTestRequest struct {
	Email   string                   `json:"email" validate:"required,email"`
	Answers []models.PlacementAnswer `json:"answers" validate:"required,min=1,dive"`
}

type ConsultationRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	PreferredDate string `json:"preferredDate" validate:"omitempty,max=64"`
	Message       string `json:"message" validate:"omitempty,max=2000"`
}

type EnrollRequest struct {
	CourseID      string `json:"courseId" validate:"required,max=128"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card transfer cash"`
}

type SubmitAssignmentRequest struct {
	AssignmentID string   `json:"assignmentId" validate:"required,max=128"`
	Content      string   `json:"content" validate:"required,max=20000"`
	Files        []string `json:"files" validate:"omitempty,max=10,dive,max=500"`
}

type CreateAssignmentRequest struct {
	CourseID    string `json:"courseId" validate:"required,max=128"`
	Title       string `json:"title" validate:"required,max=300"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	DueDate     string `json:"dueDate" validate:"omitempty"`
	MaxPoints   int    `json:"maxPoints" validate:"required,min=1,max=1000"`
}

// GradeRequest addresses the submission by owner + assignment, matching the
// composite key the record is stored under.
type GradeRequest struct {
	StudentID    string `json:"studentId" validate:"required,max=128"`
	AssignmentID string `json:"assignmentId" validate:"required,max=128"`
	Grade        int    `json:"grade" validate:"min=0,max=1000"`
	Feedback     string `json:"feedback" validate:"omitempty,max=5000"`
}

type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Level       string   `json:"level" validate:"required,course_level"`
	Duration    string   `json:"duration" validate:"required,max=64"`
	MaxStudents int      `json:"maxStudents" validate:"required,min=1,max=500"`
	Price       float64  `json:"price" validate:"min=0"`
	Features    []string `json:"features" validate:"omitempty,max=20,dive,max=300"`
}
