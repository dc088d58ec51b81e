package models

// ===== RESPONSE ENVELOPE =====

// Every handler response is wrapped in a {success: bool, ...} envelope; errors
// carry a single error string alongside success=false.

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ===== DASHBOARD DTOs =====

type StudentDashboard struct {
	Enrollments   []Enrollment   `json:"enrollments"`
	Submissions   []Submission   `json:"submissions"`
	Notifications []Notification `json:"notifications"`
}

type TeacherDashboard struct {
	Classes            []Class `json:"classes"`
	PendingAssignments int     `json:"pendingAssignments"`
	TotalStudents      int     `json:"totalStudents"`
}

type AdminDashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalStudents    int `json:"totalStudents"`
	TotalTeachers    int `json:"totalTeachers"`
	TotalCourses     int `json:"totalCourses"`
	TotalEnrollments int `json:"totalEnrollments"`
}

// ===== PLACEMENT TEST DTOs =====

type PlacementResult struct {
	Score             int     `json:"score"`
	Percentage        float64 `json:"percentage"`
	Level             string  `json:"level"`
	RecommendedCourse string  `json:"recommendedCourse"`
}
