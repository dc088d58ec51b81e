package models

import "fmt"

// Key prefixes for the flat key-value namespace. Prefix scans on these are the
// only listing mechanism; there is no secondary index.
const (
	PrefixProfile      = "profile:"
	PrefixCourse       = "course:"
	PrefixEnrollment   = "enrollment:"
	PrefixAssignment   = "assignment:"
	PrefixSubmission   = "assignment-submission:"
	PrefixConsultation = "consultation:"
	PrefixTestResult   = "test:"
	PrefixNotification = "notification:"
	PrefixClass        = "class:teacher:"
)

func ProfileKey(userID string) string {
	return PrefixProfile + userID
}

func CourseKey(courseID string) string {
	return PrefixCourse + courseID
}

// EnrollmentKey embeds the owning user id so "my enrollments" is a prefix scan
// and re-enrolling in the same course overwrites instead of duplicating.
func EnrollmentKey(userID, courseID string) string {
	return fmt.Sprintf("%s%s:%s", PrefixEnrollment, userID, courseID)
}

func EnrollmentUserPrefix(userID string) string {
	return PrefixEnrollment + userID + ":"
}

func AssignmentKey(assignmentID string) string {
	return PrefixAssignment + assignmentID
}

func SubmissionKey(userID, assignmentID string) string {
	return fmt.Sprintf("%s%s:%s", PrefixSubmission, userID, assignmentID)
}

func SubmissionUserPrefix(userID string) string {
	return PrefixSubmission + userID + ":"
}

func ConsultationKey(consultationID string) string {
	return PrefixConsultation + consultationID
}

func TestResultKey(testID string) string {
	return PrefixTestResult + testID
}

func NotificationKey(userID, notificationID string) string {
	return fmt.Sprintf("%s%s:%s", PrefixNotification, userID, notificationID)
}

func NotificationUserPrefix(userID string) string {
	return PrefixNotification + userID + ":"
}

func ClassTeacherPrefix(teacherID string) string {
	return PrefixClass + teacherID + ":"
}

func ClassKey(teacherID, classID string) string {
	return fmt.Sprintf("%s%s:%s", PrefixClass, teacherID, classID)
}
