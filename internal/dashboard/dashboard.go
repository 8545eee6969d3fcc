// Package dashboard serves the activity feed of entries booked today across
// every financial kind. Log rows are written and removed by the finance
// modules inside their own transactions, so the feed never shows an entry
// whose postings were rolled back.
package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

// Entry kinds as reported in the feed.
const (
	KindDeliveryFee = "delivery_fee"
	KindDFOD        = "dfod"
	KindOutgoing    = "outgoing"
	KindExpense     = "expense"
)

// Item is one feed line.
type Item struct {
	LogID         int64  `json:"log_id"`
	Kind          string `json:"kind"`
	EntryID       int64  `json:"entry_id"`
	EntryDate     string `json:"entry_date"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Category      string `json:"category,omitempty"`
	Description   string `json:"description,omitempty"`
	EmployeeName  string `json:"employee_name,omitempty"`
}

// Repository reads the feed.
type Repository interface {
	ListOn(ctx context.Context, date string) ([]Item, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) ListOn(ctx context.Context, date string) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, 'delivery_fee', d.id, to_char(d.entry_date, 'YYYY-MM-DD'), d.amount, '', '', '', ''
		FROM dashboard_logs l JOIN delivery_fees d ON l.delivery_fee_id = d.id
		WHERE d.entry_date = $1
		UNION ALL
		SELECT l.id, 'dfod', f.id, to_char(f.entry_date, 'YYYY-MM-DD'), f.amount, f.payment_method, '', '', ''
		FROM dashboard_logs l JOIN dfod_entries f ON l.dfod_id = f.id
		WHERE f.entry_date = $1
		UNION ALL
		SELECT l.id, 'outgoing', o.id, to_char(o.entry_date, 'YYYY-MM-DD'), o.net_amount, o.payment_method, '', '', ''
		FROM dashboard_logs l JOIN outgoing_entries o ON l.outgoing_id = o.id
		WHERE o.entry_date = $1
		UNION ALL
		SELECT l.id, 'expense', e.id, to_char(e.entry_date, 'YYYY-MM-DD'), e.amount, e.payment_method, e.category, e.description, COALESCE(emp.name, '')
		FROM dashboard_logs l
		JOIN expenses e ON l.expense_id = e.id
		LEFT JOIN employees emp ON emp.id = e.employee_id
		WHERE e.entry_date = $1
		ORDER BY 1 DESC`, date)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.LogID, &it.Kind, &it.EntryID, &it.EntryDate, &it.Amount, &it.PaymentMethod, &it.Category, &it.Description, &it.EmployeeName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type Service struct {
	repo Repository
	cal  *ledger.Calendar
}

func NewService(repo Repository, cal *ledger.Calendar) *Service {
	return &Service{repo: repo, cal: cal}
}

// Feed returns today's booked entries for admins and super admins alike.
func (s *Service) Feed(ctx context.Context, actor shared.Identity) ([]Item, error) {
	if !actor.HasAny(shared.RoleAdmin, shared.RoleSuperAdmin) {
		return nil, httpx.ErrForbidden
	}
	return s.repo.ListOn(ctx, s.cal.Today())
}
