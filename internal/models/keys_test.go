package models

import (
	"strings"
	"testing"
)

func TestKeyBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"profile", ProfileKey("u1"), "profile:u1"},
		{"course", CourseKey("beginner-english"), "course:beginner-english"},
		{"enrollment", EnrollmentKey("u1", "c1"), "enrollment:u1:c1"},
		{"submission", SubmissionKey("u1", "a1"), "assignment-submission:u1:a1"},
		{"assignment", AssignmentKey("a1"), "assignment:a1"},
		{"consultation", ConsultationKey("x"), "consultation:x"},
		{"test result", TestResultKey("t1"), "test:t1"},
		{"notification", NotificationKey("u1", "n1"), "notification:u1:n1"},
		{"class", ClassKey("t1", "c1"), "class:teacher:t1:c1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s key = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestUserScopedPrefixes(t *testing.T) {
	// A user-scoped prefix must match that user's keys and nothing from a
	// user whose id merely shares a prefix.
	if !strings.HasPrefix(EnrollmentKey("u1", "c1"), EnrollmentUserPrefix("u1")) {
		t.Error("enrollment key does not match its user prefix")
	}
	if strings.HasPrefix(EnrollmentKey("u12", "c1"), EnrollmentUserPrefix("u1")) {
		t.Error("enrollment prefix for u1 matches keys of u12")
	}
	if strings.HasPrefix(NotificationKey("u12", "n1"), NotificationUserPrefix("u1")) {
		t.Error("notification prefix for u1 matches keys of u12")
	}
	if strings.HasPrefix(SubmissionKey("u12", "a1"), SubmissionUserPrefix("u1")) {
		t.Error("submission prefix for u1 matches keys of u12")
	}
	if strings.HasPrefix(ClassKey("t12", "c1"), ClassTeacherPrefix("t1")) {
		t.Error("class prefix for t1 matches keys of t12")
	}
}

func TestUserRoleValid(t *testing.T) {
	for _, role := range []UserRole{RoleStudent, RoleTeacher, RoleAdmin} {
		if !role.Valid() {
			t.Errorf("role %q reported invalid", role)
		}
	}
	for _, role := range []UserRole{"", "superadmin", "Student"} {
		if role.Valid() {
			t.Errorf("role %q reported valid", role)
		}
	}
}
