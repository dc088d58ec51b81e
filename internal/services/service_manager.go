package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/atlas-lingua/portal-service/internal/events"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

// ServiceManager owns construction and lifecycle of all domain services.
type ServiceManager interface {
	Catalog() CatalogService
	Intake() IntakeService
	Account() AccountService
	Student() StudentService
	Teacher() TeacherService
	Admin() AdminService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type serviceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator

	catalogService CatalogService
	intakeService  IntakeService
	accountService AccountService
	studentService StudentService
	teacherService TeacherService
	adminService   AdminService

	initialized bool
	mu          sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}

	m.catalogService = NewCatalogService(m.repo, m.logger, m.validator)
	m.intakeService = NewIntakeService(m.repo, m.logger, m.validator)
	m.accountService = NewAccountService(m.repo, m.logger, m.validator)
	m.studentService = NewStudentService(m.repo, m.publisher, m.logger, m.validator)
	m.teacherService = NewTeacherService(m.repo, m.publisher, m.logger, m.validator)
	m.adminService = NewAdminService(m.repo, m.logger)

	m.initialized = true
	m.logger.Info("services initialized")
	return nil
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}
	m.initialized = false
	return m.publisher.Close()
}

func (m *serviceManager) Catalog() CatalogService { return m.catalogService }
func (m *serviceManager) Intake() IntakeService   { return m.intakeService }
func (m *serviceManager) Account() AccountService { return m.accountService }
func (m *serviceManager) Student() StudentService { return m.studentService }
func (m *serviceManager) Teacher() TeacherService { return m.teacherService }
func (m *serviceManager) Admin() AdminService     { return m.adminService }
