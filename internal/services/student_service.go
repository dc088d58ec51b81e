package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-lingua/portal-service/internal/events"
	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// GetDashboard gathers the caller's enrollments, submissions, and the latest
// five notifications. All three listings are prefix scans scoped by user id.
func (s *studentService) GetDashboard(ctx context.Context, userID string) (*models.StudentDashboard, error) {
	kv := s.repo.KV()

	rawEnrollments, err := kv.GetByPrefix(ctx, models.EnrollmentUserPrefix(userID))
	if err != nil {
		return nil, storageErr("list enrollments", err)
	}

	rawSubmissions, err := kv.GetByPrefix(ctx, models.SubmissionUserPrefix(userID))
	if err != nil {
		return nil, storageErr("list submissions", err)
	}

	rawNotifications, err := kv.GetByPrefix(ctx, models.NotificationUserPrefix(userID))
	if err != nil {
		return nil, storageErr("list notifications", err)
	}

	notifications := repositories.DecodeAll[models.Notification](rawNotifications)
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	if len(notifications) > 5 {
		notifications = notifications[:5]
	}

	return &models.StudentDashboard{
		Enrollments:   repositories.DecodeAll[models.Enrollment](rawEnrollments),
		Submissions:   repositories.DecodeAll[models.Submission](rawSubmissions),
		Notifications: notifications,
	}, nil
}

// Enroll creates an enrollment under enrollment:<userId>:<courseId>. Enrolling
// twice in the same course overwrites the record rather than duplicating it.
func (s *studentService) Enroll(ctx context.Context, userID string, req *EnrollRequest) (*models.Enrollment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	var course models.Course
	err := s.repo.KV().Get(ctx, models.CourseKey(req.CourseID), &course)
	if err != nil {
		if errors.Is(err, repositories.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get course", err)
	}

	enrollment := models.Enrollment{
		ID:            uuid.New().String(),
		UserID:        userID,
		CourseID:      req.CourseID,
		CourseName:    course.Title,
		EnrolledAt:    time.Now().UTC(),
		Status:        models.EnrollmentStatusActive,
		PaymentMethod: req.PaymentMethod,
		Progress:      0,
	}

	key := models.EnrollmentKey(userID, req.CourseID)
	if err := s.repo.KV().Set(ctx, key, enrollment); err != nil {
		return nil, storageErr("store enrollment", err)
	}

	if err := s.publisher.PublishNotification(ctx, &events.NotificationEvent{
		UserID:  userID,
		Type:    events.NotificationEnrollment,
		Title:   "Enrollment confirmed",
		Message: fmt.Sprintf("You are enrolled in %s.", course.Title),
	}); err != nil {
		s.logger.Warn("failed to publish enrollment notification",
			"user_id", userID, "course_id", req.CourseID, "error", err)
	}

	s.logger.Info("student enrolled", "user_id", userID, "course_id", req.CourseID)
	return &enrollment, nil
}

func (s *studentService) SubmitAssignment(ctx context.Context, userID string, req *SubmitAssignmentRequest) (*models.Submission, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	var assignment models.Assignment
	err := s.repo.KV().Get(ctx, models.AssignmentKey(req.AssignmentID), &assignment)
	if err != nil {
		if errors.Is(err, repositories.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get assignment", err)
	}

	files := req.Files
	if files == nil {
		files = []string{}
	}

	submission := models.Submission{
		ID:           uuid.New().String(),
		AssignmentID: req.AssignmentID,
		UserID:       userID,
		Content:      req.Content,
		Files:        files,
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionStatusSubmitted,
	}

	key := models.SubmissionKey(userID, req.AssignmentID)
	if err := s.repo.KV().Set(ctx, key, submission); err != nil {
		return nil, storageErr("store submission", err)
	}

	s.logger.Info("assignment submitted",
		"user_id", userID, "assignment_id", req.AssignmentID)
	return &submission, nil
}
