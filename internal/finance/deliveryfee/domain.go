// Package deliveryfee manages delivery fee income, credited in full to the
// JFS settlement balance.
package deliveryfee

import "github.com/jfscargo/backoffice/internal/ledger"

// Entry lifecycle states.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Entry is one delivery fee record.
type Entry struct {
	ID        int64  `json:"id"`
	EntryDate string `json:"entry_date"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

func (e Entry) postings() []ledger.Posting {
	return ledger.DeliveryFeeCreate(e.EntryDate, e.Amount)
}
