// Package outgoing manages outgoing shipment payments: income collected on
// cash or transfer with a fixed 60% carve-out against the JFS settlement
// balance.
package outgoing

import "github.com/jfscargo/backoffice/internal/ledger"

// Entry lifecycle states.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Entry is one outgoing payment record.
type Entry struct {
	ID            int64                `json:"id"`
	EntryDate     string               `json:"entry_date"`
	GrossAmount   int64                `json:"gross_amount"`
	Deduction     int64                `json:"deduction"`
	NetAmount     int64                `json:"net_amount"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
	Status        string               `json:"status"`
}

// postings returns the ledger rows this snapshot produced on creation.
// Reversal always negates these exact rows.
func (e Entry) postings() []ledger.Posting {
	return ledger.OutgoingCreate(e.EntryDate, e.PaymentMethod, e.NetAmount)
}
