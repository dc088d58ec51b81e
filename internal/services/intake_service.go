package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

type intakeService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewIntakeService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) IntakeService {
	return &intakeService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Placement level thresholds. The level-to-course mapping is fixed and must
// stay in sync with the seeded catalog ids.
const (
	levelAdvanced     = "Advanced"
	levelIntermediate = "Intermediate"
	levelElementary   = "Elementary"
	levelBeginner     = "Beginner"
)

// ScorePlacementTest scores an answer sheet, persists the immutable test
// result, and returns the recommendation.
func (s *intakeService) ScorePlacementTest(ctx context.Context, req *PlacementTestRequest) (*models.PlacementResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	correct := 0
	for _, answer := range req.Answers {
		if answer.IsCorrect {
			correct++
		}
	}
	percentage := float64(correct) / float64(len(req.Answers)) * 100

	level := levelBeginner
	recommendedCourse := "beginner-english"
	switch {
	case percentage >= 80:
		level = levelAdvanced
		recommendedCourse = "advanced-english"
	case percentage >= 60:
		level = levelIntermediate
		recommendedCourse = "intermediate-english"
	case percentage >= 40:
		level = levelElementary
		recommendedCourse = "beginner-english"
	}

	testID := uuid.New().String()
	result := models.TestResult{
		Email:             req.Email,
		Score:             correct,
		Percentage:        percentage,
		Level:             level,
		RecommendedCourse: recommendedCourse,
		Answers:           req.Answers,
		Timestamp:         time.Now().UTC(),
	}

	if err := s.repo.KV().Set(ctx, models.TestResultKey(testID), result); err != nil {
		return nil, storageErr("store test result", err)
	}

	s.logger.Info("placement test scored",
		"test_id", testID, "score", correct, "total", len(req.Answers), "level", level)

	return &models.PlacementResult{
		Score:             correct,
		Percentage:        percentage,
		Level:             level,
		RecommendedCourse: recommendedCourse,
	}, nil
}

func (s *intakeService) BookConsultation(ctx context.Context, req *ConsultationRequest) (string, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return "", validationErr(errs)
	}

	consultation := models.Consultation{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		Message:       req.Message,
		Status:        models.ConsultationStatusPending,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.repo.KV().Set(ctx, models.ConsultationKey(consultation.ID), consultation); err != nil {
		return "", storageErr("store consultation", err)
	}

	s.logger.Info("consultation booked", "consultation_id", consultation.ID)
	return consultation.ID, nil
}
