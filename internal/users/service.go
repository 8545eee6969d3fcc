package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfscargo/backoffice/internal/auth"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// CreateInput carries a new account.
type CreateInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns active accounts.
func (s *Service) List(ctx context.Context, actor shared.Identity) ([]User, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, StatusActive)
}

// ListTrash returns soft-deleted accounts.
func (s *Service) ListTrash(ctx context.Context, actor shared.Identity) ([]User, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, StatusDeleted)
}

// Create registers an admin or super admin account.
func (s *Service) Create(ctx context.Context, actor shared.Identity, in CreateInput) (int64, error) {
	if !actor.IsSuperAdmin() {
		return 0, httpx.ErrForbidden
	}

	role, err := canonicalRole(in.Role)
	if err != nil {
		return 0, err
	}
	if err := auth.ValidatePasswordStrength(in.Password); err != nil {
		return 0, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, err
	}

	return s.repo.Create(ctx, User{
		Name:   strings.TrimSpace(in.Name),
		Email:  strings.TrimSpace(in.Email),
		Role:   role,
		Status: StatusActive,
	}, hash)
}

// SoftDelete disables an account so it can no longer sign in.
func (s *Service) SoftDelete(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	if actor.UserID == id {
		return fmt.Errorf("%w: you cannot delete your own account", httpx.ErrInvalidInput)
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Status != StatusActive {
		return httpx.ErrNotFound
	}
	return s.repo.SetStatus(ctx, id, StatusDeleted)
}

// Restore re-enables a soft-deleted account.
func (s *Service) Restore(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Status != StatusDeleted {
		return httpx.ErrNotFound
	}
	return s.repo.SetStatus(ctx, id, StatusActive)
}

// PermanentDelete removes the account row, regardless of status.
func (s *Service) PermanentDelete(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	if actor.UserID == id {
		return fmt.Errorf("%w: you cannot delete your own account", httpx.ErrInvalidInput)
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func canonicalRole(role string) (string, error) {
	switch shared.NormalizeRole(role) {
	case shared.NormalizeRole(shared.RoleAdmin):
		return shared.RoleAdmin, nil
	case shared.NormalizeRole(shared.RoleSuperAdmin):
		return shared.RoleSuperAdmin, nil
	default:
		return "", fmt.Errorf("%w: role must be Admin or Super Admin", httpx.ErrInvalidInput)
	}
}
