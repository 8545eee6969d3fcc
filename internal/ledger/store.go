package ledger

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgx.Tx the ledger needs. Postings are always written
// and removed inside the caller's transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// InsertPostings appends ledger rows.
func InsertPostings(ctx context.Context, tx Execer, rows []Posting) error {
	for _, p := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ledger_entries (entry_date, transaction_type, amount) VALUES ($1, $2, $3)`,
			p.Date, p.Type, p.Amount); err != nil {
			return err
		}
	}
	return nil
}

// DeletePostings removes ledger rows by exact (date, type, amount) match.
// There is no foreign key back to the originating entry, so two postings that
// coincide on all three fields are indistinguishable here.
func DeletePostings(ctx context.Context, tx Execer, rows []Posting) error {
	for _, p := range rows {
		if _, err := tx.Exec(ctx,
			`DELETE FROM ledger_entries WHERE entry_date = $1 AND transaction_type = $2 AND amount = $3`,
			p.Date, p.Type, p.Amount); err != nil {
			return err
		}
	}
	return nil
}
