package deliveryfee

import (
	"context"
	"fmt"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// CreateInput carries a new delivery fee.
type CreateInput struct {
	Amount ledger.RawAmount `json:"amount" validate:"required"`
}

// EditInput replaces the amount of an existing entry. The entry date is never
// editable.
type EditInput struct {
	ID     int64            `json:"id" validate:"required"`
	Amount ledger.RawAmount `json:"amount" validate:"required"`
}

type Service struct {
	repo Repository
	cal  *ledger.Calendar
}

func NewService(repo Repository, cal *ledger.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// List returns active entries. Super admins see the full history, admins only
// today's rows.
func (s *Service) List(ctx context.Context, actor shared.Identity) ([]Entry, error) {
	switch {
	case actor.IsSuperAdmin():
		return s.repo.ListActive(ctx)
	case actor.HasAny(shared.RoleAdmin):
		return s.repo.ListActiveOn(ctx, s.cal.Today())
	default:
		return nil, httpx.ErrForbidden
	}
}

// ListTrash returns soft-deleted entries for the recycle bin view.
func (s *Service) ListTrash(ctx context.Context, actor shared.Identity) ([]Entry, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListDeleted(ctx)
}

// Create records a fee dated today in business time.
func (s *Service) Create(ctx context.Context, actor shared.Identity, in CreateInput) (int64, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return 0, httpx.ErrForbidden
	}

	amount, err := ledger.ParseAmount(in.Amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}
	entry := Entry{EntryDate: s.cal.Today(), Amount: amount, Status: StatusActive}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err = tx.Insert(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertPostings(ctx, entry.postings()); err != nil {
			return err
		}
		return tx.InsertDashboardLog(ctx, id)
	})
	return id, err
}

// Edit rewrites the amount under the entry's original date.
func (s *Service) Edit(ctx context.Context, actor shared.Identity, in EditInput) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}

	amount, err := ledger.ParseAmount(in.Amount)
	if err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}

	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.Get(ctx, in.ID)
		if err != nil {
			return err
		}
		updated := old
		updated.Amount = amount

		if err := tx.Update(ctx, updated); err != nil {
			return err
		}
		if err := tx.DeletePostings(ctx, old.postings()); err != nil {
			return err
		}
		if err := tx.InsertPostings(ctx, updated.postings()); err != nil {
			return err
		}
		if err := tx.DeleteDashboardLog(ctx, in.ID); err != nil {
			return err
		}
		return tx.InsertDashboardLog(ctx, in.ID)
	})
}

// SoftDelete moves an active entry to the trash and reverses its posting.
func (s *Service) SoftDelete(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}

	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.Status != StatusActive {
			return httpx.ErrNotFound
		}
		if err := tx.SetStatus(ctx, id, StatusDeleted); err != nil {
			return err
		}
		if err := tx.DeletePostings(ctx, old.postings()); err != nil {
			return err
		}
		return tx.DeleteDashboardLog(ctx, id)
	})
}

// Restore brings a trashed entry back and reapplies its posting.
func (s *Service) Restore(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}

	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.Status != StatusDeleted {
			return httpx.ErrNotFound
		}
		if err := tx.SetStatus(ctx, id, StatusActive); err != nil {
			return err
		}
		if err := tx.InsertPostings(ctx, old.postings()); err != nil {
			return err
		}
		if err := tx.DeleteDashboardLog(ctx, id); err != nil {
			return err
		}
		return tx.InsertDashboardLog(ctx, id)
	})
}

// PermanentDelete removes the row entirely, regardless of status.
func (s *Service) PermanentDelete(ctx context.Context, actor shared.Identity, id int64) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}

	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeletePostings(ctx, old.postings()); err != nil {
			return err
		}
		if err := tx.DeleteDashboardLog(ctx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}
