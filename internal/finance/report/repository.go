package report

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfscargo/backoffice/internal/ledger"
)

// DateSum is one date's total for one transaction type.
type DateSum struct {
	Date string
	Type ledger.TransactionType
	Sum  int64
}

// Repository aggregates ledger rows.
type Repository interface {
	SumsOn(ctx context.Context, date string) (map[ledger.TransactionType]int64, error)
	SumsByDate(ctx context.Context) ([]DateSum, error)
	Totals(ctx context.Context) (map[ledger.TransactionType]int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) SumsOn(ctx context.Context, date string) (map[ledger.TransactionType]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT transaction_type, COALESCE(SUM(amount), 0)
		 FROM ledger_entries WHERE entry_date = $1 GROUP BY transaction_type`, date)
	if err != nil {
		return nil, err
	}
	return scanSums(rows)
}

func (r *repository) SumsByDate(ctx context.Context) ([]DateSum, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(entry_date, 'YYYY-MM-DD'), transaction_type, COALESCE(SUM(amount), 0)
		 FROM ledger_entries GROUP BY 1, transaction_type ORDER BY 1 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []DateSum
	for rows.Next() {
		var s DateSum
		if err := rows.Scan(&s.Date, &s.Type, &s.Sum); err != nil {
			return nil, err
		}
		sums = append(sums, s)
	}
	return sums, rows.Err()
}

func (r *repository) Totals(ctx context.Context) (map[ledger.TransactionType]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT transaction_type, COALESCE(SUM(amount), 0)
		 FROM ledger_entries GROUP BY transaction_type`)
	if err != nil {
		return nil, err
	}
	return scanSums(rows)
}

func scanSums(rows pgx.Rows) (map[ledger.TransactionType]int64, error) {
	defer rows.Close()

	sums := map[ledger.TransactionType]int64{}
	for rows.Next() {
		var typ ledger.TransactionType
		var sum int64
		if err := rows.Scan(&typ, &sum); err != nil {
			return nil, err
		}
		sums[typ] = sum
	}
	return sums, rows.Err()
}
