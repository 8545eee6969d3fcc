package outgoing

import (
	"context"
	"fmt"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// CreateInput carries a new outgoing payment. Amounts arrive as raw strings so
// thousand separators from the branch office forms survive decoding.
type CreateInput struct {
	Amount        ledger.RawAmount `json:"amount" validate:"required"`
	Deduction     ledger.RawAmount `json:"deduction"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
}

// EditInput replaces the amounts and method of an existing entry. The entry
// date is never editable.
type EditInput struct {
	ID            int64            `json:"id" validate:"required"`
	Amount        ledger.RawAmount `json:"amount" validate:"required"`
	Deduction     ledger.RawAmount `json:"deduction"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
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

// Get returns a single entry by id, typically to populate the edit form.
func (s *Service) Get(ctx context.Context, actor shared.Identity, id int64) (Entry, error) {
	if !actor.IsSuperAdmin() {
		return Entry{}, httpx.ErrForbidden
	}
	return s.repo.Get(ctx, id)
}

// ListTrash returns soft-deleted entries for the recycle bin view.
func (s *Service) ListTrash(ctx context.Context, actor shared.Identity) ([]Entry, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListDeleted(ctx)
}

// Create records a payment dated today in business time and applies its
// ledger postings and dashboard log in one transaction.
func (s *Service) Create(ctx context.Context, actor shared.Identity, in CreateInput) (int64, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return 0, httpx.ErrForbidden
	}

	entry, err := s.buildEntry(in.Amount, in.Deduction, in.PaymentMethod)
	if err != nil {
		return 0, err
	}
	entry.EntryDate = s.cal.Today()
	entry.Status = StatusActive

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

// Edit rewrites an entry's amounts under its original date. The old postings
// are reversed and the new ones applied atomically with the row update.
func (s *Service) Edit(ctx context.Context, actor shared.Identity, in EditInput) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}

	entry, err := s.buildEntry(in.Amount, in.Deduction, in.PaymentMethod)
	if err != nil {
		return err
	}
	entry.ID = in.ID

	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.Get(ctx, in.ID)
		if err != nil {
			return err
		}
		entry.EntryDate = old.EntryDate
		entry.Status = old.Status

		if err := tx.Update(ctx, entry); err != nil {
			return err
		}
		if err := tx.DeletePostings(ctx, old.postings()); err != nil {
			return err
		}
		if err := tx.InsertPostings(ctx, entry.postings()); err != nil {
			return err
		}
		if err := tx.DeleteDashboardLog(ctx, in.ID); err != nil {
			return err
		}
		return tx.InsertDashboardLog(ctx, in.ID)
	})
}

// SoftDelete moves an active entry to the trash and reverses its postings.
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

// Restore brings a trashed entry back and reapplies its postings.
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

// PermanentDelete removes the row entirely, regardless of status. Postings are
// reversed by snapshot; for an already trashed entry that reversal matches
// nothing, which is harmless.
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

func (s *Service) buildEntry(amount, deduction ledger.RawAmount, method string) (Entry, error) {
	m, ok := ledger.ParsePaymentMethod(method)
	if !ok {
		return Entry{}, fmt.Errorf("%w: payment method must be cash or transfer", httpx.ErrInvalidInput)
	}
	gross, err := ledger.ParseAmount(amount)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}
	ded, err := ledger.ParseOptionalAmount(deduction)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}
	net := gross - ded
	if net < 0 {
		return Entry{}, fmt.Errorf("%w: deduction exceeds the gross amount", httpx.ErrInvalidInput)
	}
	return Entry{
		GrossAmount:   gross,
		Deduction:     ded,
		NetAmount:     net,
		PaymentMethod: m,
	}, nil
}
