package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlas-lingua/portal-service/internal/models"
)

func validSignup() *SignupRequest {
	return &SignupRequest{
		Email:     "student@example.com",
		Password:  "correct-horse-battery",
		FirstName: "Ana",
		LastName:  "Silva",
		Phone:     "+351 900 000 000",
	}
}

func TestSignup(t *testing.T) {
	repo := newMockRepository()
	svc := NewAccountService(repo, testLogger(), testValidator())

	profile, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if profile.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", profile.Role)
	}
	if !profile.IsActive {
		t.Error("new profile should be active")
	}
	if profile.ID == "" {
		t.Fatal("profile id is empty")
	}

	var stored models.Profile
	if err := repo.kv.Get(context.Background(), models.ProfileKey(profile.ID), &stored); err != nil {
		t.Fatalf("profile record missing: %v", err)
	}
	if stored.Email != "student@example.com" || stored.FirstName != "Ana" {
		t.Errorf("stored profile = %+v", stored)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewAccountService(repo, testLogger(), testValidator())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := svc.Signup(ctx, validSignup())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate signup err = %v, want ErrConflict", err)
	}

	if got := repo.kv.keyCount(models.PrefixProfile); got != 1 {
		t.Errorf("profiles after duplicate signup = %d, want 1", got)
	}
}

func TestSignup_CompensatesFailedProfileWrite(t *testing.T) {
	repo := newMockRepository()
	repo.kv.setErrPrefix = models.PrefixProfile
	repo.kv.setErr = errors.New("connection reset")
	svc := NewAccountService(repo, testLogger(), testValidator())

	_, err := svc.Signup(context.Background(), validSignup())
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}

	if len(repo.identity.deleted) != 1 {
		t.Fatalf("deleted identities = %d, want the compensating delete", len(repo.identity.deleted))
	}
	exists, _ := repo.identity.ExistsByEmail(context.Background(), "student@example.com")
	if exists {
		t.Error("identity still exists after compensation")
	}
}

func TestSignup_Validation(t *testing.T) {
	repo := newMockRepository()
	svc := NewAccountService(repo, testLogger(), testValidator())

	tests := []struct {
		name   string
		mutate func(*SignupRequest)
	}{
		{"bad email", func(r *SignupRequest) { r.Email = "nope" }},
		{"short password", func(r *SignupRequest) { r.Password = "short" }},
		{"missing first name", func(r *SignupRequest) { r.FirstName = "" }},
		{"missing last name", func(r *SignupRequest) { r.LastName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(req)
			_, err := svc.Signup(context.Background(), req)
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	repo := newMockRepository()
	svc := NewAccountService(repo, testLogger(), testValidator())
	ctx := context.Background()

	stored := models.Profile{
		ID:       "user-1",
		Email:    "teacher@example.com",
		Role:     models.RoleTeacher,
		JoinedAt: time.Now().UTC(),
		IsActive: true,
	}
	repo.kv.mustPut(models.ProfileKey(stored.ID), stored)

	profile, err := svc.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Role != models.RoleTeacher {
		t.Errorf("role = %q, want teacher", profile.Role)
	}
}

func TestGetProfile_MissingIsForbidden(t *testing.T) {
	repo := newMockRepository()
	svc := NewAccountService(repo, testLogger(), testValidator())

	_, err := svc.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
