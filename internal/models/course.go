package models

import "time"

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	Duration    string    `json:"duration"`
	MaxStudents int       `json:"maxStudents"`
	Price       float64   `json:"price"`
	Features    []string  `json:"features"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Enrollment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CourseID      string    `json:"courseId"`
	CourseName    string    `json:"courseName"`
	EnrolledAt    time.Time `json:"enrolledAt"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	Progress      int       `json:"progress"`
}

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
)
