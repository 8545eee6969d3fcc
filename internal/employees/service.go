package employees

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// CreateInput carries a new employee.
type CreateInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Position string `json:"position" validate:"required"`
}

// EditInput replaces an employee's details.
type EditInput struct {
	ID       int64  `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Position string `json:"position" validate:"required"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the active roster for both back-office roles.
func (s *Service) List(ctx context.Context, actor shared.Identity) ([]Employee, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, StatusActive)
}

// ListTrash returns soft-deleted employees.
func (s *Service) ListTrash(ctx context.Context, actor shared.Identity) ([]Employee, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.List(ctx, StatusDeleted)
}

// Get returns one employee by id.
func (s *Service) Get(ctx context.Context, actor shared.Identity, id int64) (Employee, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return Employee{}, httpx.ErrForbidden
	}
	return s.repo.Get(ctx, id)
}

// Create adds an employee to the roster.
func (s *Service) Create(ctx context.Context, actor shared.Identity, in CreateInput) (int64, error) {
	if !actor.IsSuperAdmin() {
		return 0, httpx.ErrForbidden
	}
	e, err := buildEmployee(in.Name, in.Phone, in.Position)
	if err != nil {
		return 0, err
	}
	e.Status = StatusActive
	return s.repo.Create(ctx, e)
}

// Edit replaces an employee's details.
func (s *Service) Edit(ctx context.Context, actor shared.Identity, in EditInput) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	e, err := buildEmployee(in.Name, in.Phone, in.Position)
	if err != nil {
		return err
	}
	old, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return err
	}
	e.ID = old.ID
	return s.repo.Update(ctx, e)
}

// SoftDelete moves an active employee to the trash.
func (s *Service) SoftDelete(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.Status != StatusActive {
		return httpx.ErrNotFound
	}
	return s.repo.SetStatus(ctx, id, StatusDeleted)
}

// Restore brings a trashed employee back.
func (s *Service) Restore(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.Status != StatusDeleted {
		return httpx.ErrNotFound
	}
	return s.repo.SetStatus(ctx, id, StatusActive)
}

// PermanentDelete removes the employee row, regardless of status.
func (s *Service) PermanentDelete(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func buildEmployee(name, phone, position string) (Employee, error) {
	name = strings.TrimSpace(name)
	position = strings.TrimSpace(position)
	if name == "" || position == "" {
		return Employee{}, fmt.Errorf("%w: name and position are required", httpx.ErrInvalidInput)
	}
	return Employee{Name: name, Phone: strings.TrimSpace(phone), Position: position}, nil
}
