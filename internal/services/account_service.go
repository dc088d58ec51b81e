package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/validator"
)

type accountService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAccountService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AccountService {
	return &accountService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Signup provisions an identity at the auth provider, then writes the Profile
// record that carries the authorization role. The two writes are not atomic;
// when the profile write fails the just-created identity is deleted so no
// orphaned identity is left behind.
func (s *accountService) Signup(ctx context.Context, req *SignupRequest) (*models.Profile, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, validationErr(errs)
	}

	identity, err := s.repo.Identity().CreateIdentity(ctx, repositories.CreateIdentityRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.FirstName + " " + req.LastName,
		Phone:       req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrIdentityConflict):
			return nil, ErrConflict
		case errors.Is(err, repositories.ErrIdentityRejected):
			return nil, validationErr(err)
		default:
			return nil, upstreamErr("create identity", err)
		}
	}

	profile := models.Profile{
		ID:        identity.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleStudent,
		JoinedAt:  time.Now().UTC(),
		IsActive:  true,
	}

	if err := s.repo.KV().Set(ctx, models.ProfileKey(profile.ID), profile); err != nil {
		// Compensating action: without a profile the identity can never pass
		// a role gate, so remove it rather than stranding it.
		if delErr := s.repo.Identity().DeleteIdentity(ctx, identity.ID); delErr != nil {
			s.logger.Error("signup compensation failed, identity orphaned",
				"identity_id", identity.ID, "error", delErr)
		}
		return nil, storageErr("store profile", err)
	}

	s.logger.Info("user signed up", "user_id", profile.ID, "role", profile.Role)
	return &profile, nil
}

func (s *accountService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.repo.KV().Get(ctx, models.ProfileKey(userID), &profile)
	if err != nil {
		if errors.Is(err, repositories.ErrKeyNotFound) {
			// An authenticated caller without a profile is a forbidden caller,
			// not a missing resource.
			return nil, ErrForbidden
		}
		return nil, storageErr("get profile", err)
	}
	return &profile, nil
}
