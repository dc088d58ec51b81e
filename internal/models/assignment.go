package models

import "time"

type Assignment struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacherId"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	MaxPoints   int       `json:"maxPoints"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	AssignmentStatusActive   = "active"
	AssignmentStatusArchived = "archived"
)

type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusGraded    SubmissionStatus = "graded"
)

// Submission is created once by the owning student and mutated in place by the
// grading teacher. Grading must leave content and files untouched.
type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignmentId"`
	UserID       string           `json:"userId"`
	Content      string           `json:"content"`
	Files        []string         `json:"files"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	Status       SubmissionStatus `json:"status"`
	Grade        *int             `json:"grade"`
	Feedback     *string          `json:"feedback"`
	GradedAt     *time.Time       `json:"gradedAt,omitempty"`
}

// Class groups students under a teacher for the teacher dashboard.
type Class struct {
	ID        string   `json:"id"`
	TeacherID string   `json:"teacherId"`
	Name      string   `json:"name"`
	CourseID  string   `json:"courseId"`
	Students  []string `json:"students"`
	Schedule  string   `json:"schedule"`
}
