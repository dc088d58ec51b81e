package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-lingua/portal-service/internal/events"
	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// GetDashboard returns the teacher's classes, the count of ungraded
// submissions for the teacher's own assignments, and the total student count
// across classes. The pending count is scoped per teacher: counting every
// submission in the system regardless of owner would leak other teachers'
// workload into the number.
func (s *teacherService) GetDashboard(ctx context.Context, teacherID string) (*models.TeacherDashboard, error) {
	kv := s.repo.KV()

	rawClasses, err := kv.GetByPrefix(ctx, models.ClassTeacherPrefix(teacherID))
	if err != nil {
		return nil, storageErr("list classes", err)
	}
	classes := repositories.DecodeAll[models.Class](rawClasses)

	rawAssignments, err := kv.GetByPrefix(ctx, models.PrefixAssignment)
	if err != nil {
		return nil, storageErr("list assignments", err)
	}
	ownAssignments := make(map[string]bool)
	for _, a := range repositories.DecodeAll[models.Assignment](rawAssignments) {
		if a.TeacherID == teacherID {
			ownAssignments[a.ID] = true
		}
	}

	rawSubmissions, err := kv.GetByPrefix(ctx, models.PrefixSubmission)
	if err != nil {
		return nil, storageErr("list submissions", err)
	}
	pending := 0
	for _, sub := range repositories.DecodeAll[models.Submission](rawSubmissions) {
		if sub.Status == models.SubmissionStatusSubmitted && ownAssignments[sub.AssignmentID] {
			pending++
		}
	}

	totalStudents := 0
	for _, class := range classes {
		totalStudents += len(class.Students)
	}

	return &models.TeacherDashboard{
		Classes:            classes,
		PendingAssignments: pending,
		TotalStudents:      totalStudents,
	}, nil
}

func (s *teacherService) CreateAssignment(ctx context.Context, teacherID string, req *CreateAssignmentRequest) (*models.Assignment, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return nil, validationErr(fmt.Errorf("dueDate must be RFC3339: %v", err))
		}
		dueDate = &parsed
	}

	assignment := models.Assignment{
		ID:          uuid.New().String(),
		TeacherID:   teacherID,
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		MaxPoints:   req.MaxPoints,
		Status:      models.AssignmentStatusActive,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.KV().Set(ctx, models.AssignmentKey(assignment.ID), assignment); err != nil {
		return nil, storageErr("store assignment", err)
	}

	s.logger.Info("assignment created",
		"assignment_id", assignment.ID, "teacher_id", teacherID)
	return &assignment, nil
}

// GradeSubmission sets grade, feedback, gradedAt, and status=graded on the
// addressed submission. Content and files are preserved untouched.
func (s *teacherService) GradeSubmission(ctx context.Context, teacherID string, req *GradeRequest) (*models.Submission, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	key := models.SubmissionKey(req.StudentID, req.AssignmentID)

	var submission models.Submission
	err := s.repo.KV().Get(ctx, key, &submission)
	if err != nil {
		if errors.Is(err, repositories.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get submission", err)
	}

	now := time.Now().UTC()
	grade := req.Grade
	feedback := req.Feedback
	submission.Grade = &grade
	submission.Feedback = &feedback
	submission.GradedAt = &now
	submission.Status = models.SubmissionStatusGraded

	if err := s.repo.KV().Set(ctx, key, submission); err != nil {
		return nil, storageErr("store graded submission", err)
	}

	if err := s.publisher.PublishNotification(ctx, &events.NotificationEvent{
		UserID:  req.StudentID,
		Type:    events.NotificationGrade,
		Title:   "Assignment graded",
		Message: fmt.Sprintf("Your assignment was graded: %d points.", req.Grade),
	}); err != nil {
		s.logger.Warn("failed to publish grade notification",
			"student_id", req.StudentID, "assignment_id", req.AssignmentID, "error", err)
	}

	s.logger.Info("submission graded",
		"teacher_id", teacherID, "student_id", req.StudentID, "assignment_id", req.AssignmentID)
	return &submission, nil
}
