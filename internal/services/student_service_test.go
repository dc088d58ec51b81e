package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlas-lingua/portal-service/internal/events"
	"github.com/atlas-lingua/portal-service/internal/models"
)

func newStudentFixture() (*mockRepository, *events.MockEventPublisher, StudentService) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewStudentService(repo, publisher, testLogger(), testValidator())
	return repo, publisher, svc
}

func TestEnroll(t *testing.T) {
	repo, publisher, svc := newStudentFixture()
	ctx := context.Background()

	course := models.Course{ID: "beginner-english", Title: "Beginner English"}
	repo.kv.mustPut(models.CourseKey(course.ID), course)

	enrollment, err := svc.Enroll(ctx, "user-1", &EnrollRequest{
		CourseID:      "beginner-english",
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	if enrollment.CourseName != "Beginner English" {
		t.Errorf("course name = %q", enrollment.CourseName)
	}
	if enrollment.Status != models.EnrollmentStatusActive {
		t.Errorf("status = %q, want active", enrollment.Status)
	}
	if enrollment.Progress != 0 {
		t.Errorf("progress = %d, want 0", enrollment.Progress)
	}

	var stored models.Enrollment
	key := models.EnrollmentKey("user-1", "beginner-english")
	if err := repo.kv.Get(ctx, key, &stored); err != nil {
		t.Fatalf("enrollment record missing at %q: %v", key, err)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("published events = %d, want 1", len(published))
	}
	if published[0].UserID != "user-1" || published[0].Type != events.NotificationEnrollment {
		t.Errorf("published event = %+v", published[0])
	}
}

func TestEnroll_SameCourseOverwrites(t *testing.T) {
	repo, _, svc := newStudentFixture()
	ctx := context.Background()

	course := models.Course{ID: "beginner-english", Title: "Beginner English"}
	repo.kv.mustPut(models.CourseKey(course.ID), course)

	first, err := svc.Enroll(ctx, "user-1", &EnrollRequest{CourseID: "beginner-english", PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	second, err := svc.Enroll(ctx, "user-1", &EnrollRequest{CourseID: "beginner-english", PaymentMethod: "transfer"})
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}

	if got := repo.kv.keyCount(models.EnrollmentUserPrefix("user-1")); got != 1 {
		t.Fatalf("enrollment records = %d, want 1 (overwrite, not duplicate)", got)
	}

	var stored models.Enrollment
	repo.kv.Get(ctx, models.EnrollmentKey("user-1", "beginner-english"), &stored)
	if stored.ID != second.ID || stored.ID == first.ID {
		t.Errorf("stored enrollment id = %q, want the latest (%q)", stored.ID, second.ID)
	}
	if stored.PaymentMethod != "transfer" {
		t.Errorf("payment method = %q, want transfer", stored.PaymentMethod)
	}
}

func TestEnroll_UnknownCourse(t *testing.T) {
	_, publisher, svc := newStudentFixture()

	_, err := svc.Enroll(context.Background(), "user-1", &EnrollRequest{
		CourseID:      "no-such-course",
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("failed enrollment published a notification")
	}
}

func TestEnroll_Validation(t *testing.T) {
	_, _, svc := newStudentFixture()

	_, err := svc.Enroll(context.Background(), "user-1", &EnrollRequest{
		CourseID:      "beginner-english",
		PaymentMethod: "bitcoin",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestSubmitAssignment(t *testing.T) {
	repo, _, svc := newStudentFixture()
	ctx := context.Background()

	assignment := models.Assignment{ID: "hw-1", TeacherID: "teacher-1", Title: "Essay"}
	repo.kv.mustPut(models.AssignmentKey(assignment.ID), assignment)

	submission, err := svc.SubmitAssignment(ctx, "user-1", &SubmitAssignmentRequest{
		AssignmentID: "hw-1",
		Content:      "My essay text",
		Files:        []string{"essay.pdf"},
	})
	if err != nil {
		t.Fatalf("SubmitAssignment: %v", err)
	}
	if submission.Status != models.SubmissionStatusSubmitted {
		t.Errorf("status = %q, want submitted", submission.Status)
	}
	if submission.Grade != nil || submission.GradedAt != nil {
		t.Error("fresh submission must not carry a grade")
	}

	var stored models.Submission
	key := models.SubmissionKey("user-1", "hw-1")
	if err := repo.kv.Get(ctx, key, &stored); err != nil {
		t.Fatalf("submission record missing at %q: %v", key, err)
	}
	if stored.Content != "My essay text" || len(stored.Files) != 1 {
		t.Errorf("stored submission = %+v", stored)
	}
}

func TestSubmitAssignment_UnknownAssignment(t *testing.T) {
	_, _, svc := newStudentFixture()

	_, err := svc.SubmitAssignment(context.Background(), "user-1", &SubmitAssignmentRequest{
		AssignmentID: "no-such-assignment",
		Content:      "text",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetDashboard(t *testing.T) {
	repo, _, svc := newStudentFixture()
	ctx := context.Background()

	repo.kv.mustPut(models.EnrollmentKey("user-1", "c1"), models.Enrollment{ID: "e1", UserID: "user-1", CourseID: "c1"})
	repo.kv.mustPut(models.EnrollmentKey("user-1", "c2"), models.Enrollment{ID: "e2", UserID: "user-1", CourseID: "c2"})
	repo.kv.mustPut(models.SubmissionKey("user-1", "hw-1"), models.Submission{ID: "s1", UserID: "user-1", AssignmentID: "hw-1"})

	// Another student's records must not leak in.
	repo.kv.mustPut(models.EnrollmentKey("user-2", "c1"), models.Enrollment{ID: "e3", UserID: "user-2", CourseID: "c1"})
	repo.kv.mustPut(models.SubmissionKey("user-2", "hw-1"), models.Submission{ID: "s2", UserID: "user-2", AssignmentID: "hw-1"})

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		n := models.Notification{
			ID:        string(rune('a' + i)),
			UserID:    "user-1",
			Title:     "n" + string(rune('a'+i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		repo.kv.mustPut(models.NotificationKey("user-1", n.ID), n)
	}

	dashboard, err := svc.GetDashboard(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if len(dashboard.Enrollments) != 2 {
		t.Errorf("enrollments = %d, want 2", len(dashboard.Enrollments))
	}
	if len(dashboard.Submissions) != 1 {
		t.Errorf("submissions = %d, want 1", len(dashboard.Submissions))
	}
	if len(dashboard.Notifications) != 5 {
		t.Fatalf("notifications = %d, want latest 5", len(dashboard.Notifications))
	}
	for i := 1; i < len(dashboard.Notifications); i++ {
		if dashboard.Notifications[i].CreatedAt.After(dashboard.Notifications[i-1].CreatedAt) {
			t.Fatal("notifications not sorted newest first")
		}
	}
	// The two oldest must have been cut off.
	for _, n := range dashboard.Notifications {
		if n.CreatedAt.Before(base.Add(2 * time.Hour)) {
			t.Errorf("dashboard kept old notification %q", n.ID)
		}
	}
}

func TestGetDashboard_Empty(t *testing.T) {
	_, _, svc := newStudentFixture()

	dashboard, err := svc.GetDashboard(context.Background(), "brand-new-user")
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if len(dashboard.Enrollments) != 0 || len(dashboard.Submissions) != 0 || len(dashboard.Notifications) != 0 {
		t.Errorf("empty dashboard = %+v", dashboard)
	}
}
