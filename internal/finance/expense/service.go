package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// CreateInput carries a new expense. EmployeeID identifies the recipient of a
// kasbon advance.
type CreateInput struct {
	Description   string           `json:"description"`
	Category      string           `json:"category" validate:"required"`
	Amount        ledger.RawAmount `json:"amount" validate:"required"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
	EmployeeID    *int64           `json:"employee_id"`
}

// EditInput replaces an expense's details under its original date.
type EditInput struct {
	ID            int64            `json:"id" validate:"required"`
	Description   string           `json:"description"`
	Category      string           `json:"category" validate:"required"`
	Amount        ledger.RawAmount `json:"amount" validate:"required"`
	PaymentMethod string           `json:"payment_method" validate:"required"`
	EmployeeID    *int64           `json:"employee_id"`
}

type Service struct {
	repo Repository
	cal  *ledger.Calendar
}

func NewService(repo Repository, cal *ledger.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// List returns active expenses. Super admins see the full history, admins only
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

// Get returns a single expense by id, typically to populate the edit form.
func (s *Service) Get(ctx context.Context, actor shared.Identity, id int64) (Entry, error) {
	if !actor.IsSuperAdmin() {
		return Entry{}, httpx.ErrForbidden
	}
	return s.repo.Get(ctx, id)
}

// ListTrash returns soft-deleted expenses for the recycle bin view.
func (s *Service) ListTrash(ctx context.Context, actor shared.Identity) ([]Entry, error) {
	if !actor.IsSuperAdmin() {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListDeleted(ctx)
}

// Create records an expense dated today in business time.
func (s *Service) Create(ctx context.Context, actor shared.Identity, in CreateInput) (int64, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return 0, httpx.ErrForbidden
	}

	entry, err := buildEntry(in.Description, in.Category, in.Amount, in.PaymentMethod, in.EmployeeID)
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

// Edit rewrites an expense under its original date, including a category
// change, which may alter how many ledger rows it produces.
func (s *Service) Edit(ctx context.Context, actor shared.Identity, in EditInput) error {
	if !actor.IsSuperAdmin() {
		return httpx.ErrForbidden
	}

	entry, err := buildEntry(in.Description, in.Category, in.Amount, in.PaymentMethod, in.EmployeeID)
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

// SoftDelete moves an active expense to the trash and reverses its postings.
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

// Restore brings a trashed expense back and reapplies its postings.
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

func buildEntry(description, category string, amount ledger.RawAmount, method string, employeeID *int64) (Entry, error) {
	cat, ok := ledger.ParseExpenseCategory(category)
	if !ok {
		return Entry{}, fmt.Errorf("%w: unknown expense category", httpx.ErrInvalidInput)
	}
	// Only operational and other expenses need an explanation; kasbon and
	// top-up rows are self-describing and store a dash.
	description = strings.TrimSpace(description)
	if description == "" {
		if cat == ledger.ExpenseOperational || cat == ledger.ExpenseOther {
			return Entry{}, fmt.Errorf("%w: description is required", httpx.ErrInvalidInput)
		}
		description = "-"
	}
	m, ok := ledger.ParsePaymentMethod(method)
	if !ok {
		return Entry{}, fmt.Errorf("%w: payment method must be cash or transfer", httpx.ErrInvalidInput)
	}
	n, err := ledger.ParseAmount(amount)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s", httpx.ErrInvalidInput, err)
	}
	if cat == ledger.ExpenseKasbon && employeeID == nil {
		return Entry{}, fmt.Errorf("%w: a kasbon advance needs an employee", httpx.ErrInvalidInput)
	}
	if cat != ledger.ExpenseKasbon {
		employeeID = nil
	}
	return Entry{Description: description, Category: cat, Amount: n, PaymentMethod: m, EmployeeID: employeeID}, nil
}
