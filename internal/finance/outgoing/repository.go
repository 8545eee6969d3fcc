package outgoing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/platform/db"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Repository reads outgoing entries and opens transactions for mutations.
type Repository interface {
	ListActive(ctx context.Context) ([]Entry, error)
	ListActiveOn(ctx context.Context, date string) ([]Entry, error)
	ListDeleted(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id int64) (Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository is the mutation surface available inside a transaction. Entry
// row changes, ledger postings and dashboard log rows commit or roll back
// together.
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

const selectColumns = `id, to_char(entry_date, 'YYYY-MM-DD'), gross_amount, deduction, net_amount, payment_method, status`

func (r *repository) ListActive(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM outgoing_entries WHERE status = $1 ORDER BY id DESC`,
		StatusActive)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repository) ListActiveOn(ctx context.Context, date string) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM outgoing_entries WHERE status = $1 AND entry_date = $2 ORDER BY id DESC`,
		StatusActive, date)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repository) ListDeleted(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM outgoing_entries WHERE status = $1 ORDER BY id DESC`,
		StatusDeleted)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Entry, error) {
	var e Entry
	err := r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM outgoing_entries WHERE id = $1`, id).
		Scan(&e.ID, &e.EntryDate, &e.GrossAmount, &e.Deduction, &e.NetAmount, &e.PaymentMethod, &e.Status)
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
		`SELECT `+selectColumns+` FROM outgoing_entries WHERE id = $1`, id).
		Scan(&e.ID, &e.EntryDate, &e.GrossAmount, &e.Deduction, &e.NetAmount, &e.PaymentMethod, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *txRepository) Insert(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx,
		`INSERT INTO outgoing_entries (entry_date, gross_amount, deduction, net_amount, payment_method, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.EntryDate, e.GrossAmount, e.Deduction, e.NetAmount, e.PaymentMethod, e.Status).Scan(&id)
	return id, err
}

func (r *txRepository) Update(ctx context.Context, e Entry) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE outgoing_entries SET gross_amount = $1, deduction = $2, net_amount = $3, payment_method = $4 WHERE id = $5`,
		e.GrossAmount, e.Deduction, e.NetAmount, e.PaymentMethod, e.ID)
	return err
}

func (r *txRepository) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE outgoing_entries SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *txRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM outgoing_entries WHERE id = $1`, id)
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
		`INSERT INTO dashboard_logs (outgoing_id) VALUES ($1)`, entryID)
	return err
}

func (r *txRepository) DeleteDashboardLog(ctx context.Context, entryID int64) error {
	_, err := r.tx.Exec(ctx,
		`DELETE FROM dashboard_logs WHERE outgoing_id = $1`, entryID)
	return err
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.GrossAmount, &e.Deduction, &e.NetAmount, &e.PaymentMethod, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
