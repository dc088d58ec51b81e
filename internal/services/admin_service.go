package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
)

type adminService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAdminService(repo repositories.Repository, logger *slog.Logger) AdminService {
	return &adminService{
		repo:   repo,
		logger: logger,
	}
}

// GetDashboard aggregates counts over full prefix scans. O(n) over total
// records per call; acceptable at the school's record volume.
func (s *adminService) GetDashboard(ctx context.Context) (*models.AdminDashboardStats, error) {
	kv := s.repo.KV()

	rawProfiles, err := kv.GetByPrefix(ctx, models.PrefixProfile)
	if err != nil {
		return nil, storageErr("list profiles", err)
	}
	profiles := repositories.DecodeAll[models.Profile](rawProfiles)

	rawCourses, err := kv.GetByPrefix(ctx, models.PrefixCourse)
	if err != nil {
		return nil, storageErr("list courses", err)
	}

	rawEnrollments, err := kv.GetByPrefix(ctx, models.PrefixEnrollment)
	if err != nil {
		return nil, storageErr("list enrollments", err)
	}

	stats := &models.AdminDashboardStats{
		TotalUsers:       len(profiles),
		TotalCourses:     len(rawCourses),
		TotalEnrollments: len(rawEnrollments),
	}
	for _, p := range profiles {
		switch p.Role {
		case models.RoleStudent:
			stats.TotalStudents++
		case models.RoleTeacher:
			stats.TotalTeachers++
		}
	}
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.Profile, error) {
	raw, err := s.repo.KV().GetByPrefix(ctx, models.PrefixProfile)
	if err != nil {
		return nil, storageErr("list profiles", err)
	}

	profiles := repositories.DecodeAll[models.Profile](raw)
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].JoinedAt.Before(profiles[j].JoinedAt)
	})
	return profiles, nil
}

// ExportUsers renders the profile list as an xlsx workbook. Each row carries
// the provider's email-verification status, resolved through the identity
// cache; a provider failure leaves the column blank rather than failing the
// export.
func (s *adminService) ExportUsers(ctx context.Context) ([]byte, error) {
	profiles, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Email", "First Name", "Last Name", "Phone", "Role", "Joined At", "Active", "Email Verified"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range profiles {
		verified := ""
		if identity, err := s.repo.Identity().GetByID(ctx, p.ID); err == nil {
			verified = fmt.Sprintf("%t", identity.EmailVerified)
		}
		values := []interface{}{
			p.ID, p.Email, p.FirstName, p.LastName, p.Phone,
			string(p.Role), p.JoinedAt.Format("2006-01-02 15:04:05"), p.IsActive, verified,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write users workbook: %w", err)
	}

	s.logger.Info("users exported", "count", len(profiles))
	return buf.Bytes(), nil
}
