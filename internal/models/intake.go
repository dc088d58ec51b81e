package models

import "time"

// Consultation is a public intake record, stored without authentication.
type Consultation struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PreferredDate string    `json:"preferredDate"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

const ConsultationStatusPending = "pending"

type PlacementAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// TestResult is immutable once written.
type TestResult struct {
	Email             string            `json:"email"`
	Score             int               `json:"score"`
	Percentage        float64           `json:"percentage"`
	Level             string            `json:"level"`
	RecommendedCourse string            `json:"recommendedCourse"`
	Answers           []PlacementAnswer `json:"answers"`
	Timestamp         time.Time         `json:"timestamp"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
