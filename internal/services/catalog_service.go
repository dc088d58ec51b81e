package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

type catalogService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCatalogService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CatalogService {
	return &catalogService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *catalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	raw, err := s.repo.KV().GetByPrefix(ctx, models.PrefixCourse)
	if err != nil {
		return nil, storageErr("list courses", err)
	}
	return repositories.DecodeAll[models.Course](raw), nil
}

func (s *catalogService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course
	err := s.repo.KV().Get(ctx, models.CourseKey(courseID), &course)
	if err != nil {
		if errors.Is(err, repositories.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get course", err)
	}
	return &course, nil
}

func (s *catalogService) CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	course := models.Course{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Duration:    req.Duration,
		MaxStudents: req.MaxStudents,
		Price:       req.Price,
		Features:    req.Features,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.KV().Set(ctx, models.CourseKey(course.ID), course); err != nil {
		return nil, storageErr("create course", err)
	}

	s.logger.Info("course created", "course_id", course.ID, "title", course.Title)
	return &course, nil
}

// SeedDefaultCourses writes the three canonical courses when the catalog is
// empty. Re-invocation with existing records is a no-op.
func (s *catalogService) SeedDefaultCourses(ctx context.Context) error {
	existing, err := s.repo.KV().GetByPrefix(ctx, models.PrefixCourse)
	if err != nil {
		return storageErr("check existing courses", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, course := range DefaultCourses() {
		if err := s.repo.KV().Set(ctx, models.CourseKey(course.ID), course); err != nil {
			return storageErr("seed course "+course.ID, err)
		}
	}

	s.logger.Info("default courses seeded", "count", len(DefaultCourses()))
	return nil
}

// DefaultCourses returns the canonical catalog used when no courses exist yet.
// Field values are fixed; the placement test recommends these ids.
func DefaultCourses() []models.Course {
	now := time.Now().UTC()
	return []models.Course{
		{
			ID:          "beginner-english",
			Title:       "Beginner English",
			Description: "Perfect for those starting their English journey. Learn basic vocabulary, grammar, and conversation skills.",
			Level:       "Beginner",
			Duration:    "3 months",
			MaxStudents: 15,
			Price:       299,
			Features: []string{
				"Fundamental grammar rules",
				"Essential vocabulary (500+ words)",
				"Basic conversation practice",
				"Reading comprehension",
				"Writing exercises",
			},
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:          "intermediate-english",
			Title:       "Intermediate English",
			Description: "Build upon your existing knowledge and develop more complex language skills for everyday situations.",
			Level:       "Intermediate",
			Duration:    "4 months",
			MaxStudents: 12,
			Price:       399,
			Features: []string{
				"Advanced grammar structures",
				"Expanded vocabulary (1000+ words)",
				"Fluent conversation practice",
				"Business English basics",
				"Presentation skills",
			},
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:          "advanced-english",
			Title:       "Advanced English",
			Description: "Master advanced English for professional and academic success. Focus on fluency and confidence.",
			Level:       "Advanced",
			Duration:    "4 months",
			MaxStudents: 10,
			Price:       499,
			Features: []string{
				"Complex grammar mastery",
				"Professional vocabulary",
				"Academic writing skills",
				"Public speaking",
				"IELTS/TOEFL preparation",
			},
			IsActive:  true,
			CreatedAt: now,
		},
	}
}
