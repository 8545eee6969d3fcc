package expense

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/db"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Repository reads expenses and opens transactions for mutations.
type Repository interface {
	ListActive(ctx context.Context) ([]Entry, error)
	ListActiveOn(ctx context.Context, date string) ([]Entry, error)
	ListDeleted(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository is the mutation surface available inside a transaction.
type TxRepository interface {
	Get(ctx context.Context, id int64) (Entry, error)
	Insert(ctx context.Context, e Entry) (int64, error)
	Update(ctx context.Context, e Entry) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	InsertPostings(ctx context.Context, rows []ledger.Posting) error
	DeletePostings(ctx context.Context, rows []ledger.Posting) error
	InsertDashboardLog(ctx context.Context, entryID int64) error
	DeleteDashboardLog(ctx context.Context, entryID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// The employee name rides along so kasbon rows can show who took the advance.
const selectColumns = `e.id, to_char(e.entry_date, 'YYYY-MM-DD'), e.description, e.category, e.amount, e.payment_method, e.employee_id, emp.name, e.status`

const fromExpenses = `FROM expenses e LEFT JOIN employees emp ON emp.id = e.employee_id`

func (r *repository) ListActive(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` `+fromExpenses+` WHERE e.status = $1 ORDER BY e.id DESC`,
		StatusActive)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repository) ListActiveOn(ctx context.Context, date string) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` `+fromExpenses+` WHERE e.status = $1 AND e.entry_date = $2 ORDER BY e.id DESC`,
		StatusActive, date)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repository) ListDeleted(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` `+fromExpenses+` WHERE e.status = $1 ORDER BY e.id DESC`,
		StatusDeleted)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Entry, error) {
	var e Entry
	err := r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` `+fromExpenses+` WHERE e.id = $1`, id).
		Scan(&e.ID, &e.EntryDate, &e.Description, &e.Category, &e.Amount, &e.PaymentMethod, &e.EmployeeID, &e.EmployeeName, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) Get(ctx context.Context, id int64) (Entry, error) {
	var e Entry
	err := r.tx.QueryRow(ctx,
		`SELECT `+selectColumns+` `+fromExpenses+` WHERE e.id = $1`, id).
		Scan(&e.ID, &e.EntryDate, &e.Description, &e.Category, &e.Amount, &e.PaymentMethod, &e.EmployeeID, &e.EmployeeName, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *txRepository) Insert(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx,
		`INSERT INTO expenses (entry_date, description, category, amount, payment_method, employee_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		e.EntryDate, e.Description, e.Category, e.Amount, e.PaymentMethod, e.EmployeeID, e.Status).Scan(&id)
	return id, err
}

func (r *txRepository) Update(ctx context.Context, e Entry) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE expenses SET description = $1, category = $2, amount = $3, payment_method = $4, employee_id = $5 WHERE id = $6`,
		e.Description, e.Category, e.Amount, e.PaymentMethod, e.EmployeeID, e.ID)
	return err
}

func (r *txRepository) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE expenses SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *txRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func (r *txRepository) InsertPostings(ctx context.Context, rows []ledger.Posting) error {
	return ledger.InsertPostings(ctx, r.tx, rows)
}

func (r *txRepository) DeletePostings(ctx context.Context, rows []ledger.Posting) error {
	return ledger.DeletePostings(ctx, r.tx, rows)
}

func (r *txRepository) InsertDashboardLog(ctx context.Context, entryID int64) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO dashboard_logs (expense_id) VALUES ($1)`, entryID)
	return err
}

func (r *txRepository) DeleteDashboardLog(ctx context.Context, entryID int64) error {
	_, err := r.tx.Exec(ctx,
		`DELETE FROM dashboard_logs WHERE expense_id = $1`, entryID)
	return err
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.Description, &e.Category, &e.Amount, &e.PaymentMethod, &e.EmployeeID, &e.EmployeeName, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
