// Package dfod manages delivery-fee-on-delivery collections. The collected
// amount lands on the chosen payment method and the same amount is owed back
// out of the JFS settlement balance.
package dfod

import "github.com/jfscargo/backoffice/internal/ledger"

// Entry lifecycle states.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Entry is one DFOD collection record.
type Entry struct {
	ID            int64                `json:"id"`
	EntryDate     string               `json:"entry_date"`
	Amount        int64                `json:"amount"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
	Status        string               `json:"status"`
}

func (e Entry) postings() []ledger.Posting {
	return ledger.DFODCreate(e.EntryDate, e.PaymentMethod, e.Amount)
}
