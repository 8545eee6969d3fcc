// Package expense manages branch expenses. Every expense debits the payment
// method it was paid from; a settlement top-up also credits the JFS balance.
package expense

import "github.com/jfscargo/backoffice/internal/ledger"

// Entry lifecycle states.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Entry is one expense record. EmployeeID links a kasbon advance to the
// employee it was paid to so payroll can deduct it later.
type Entry struct {
	ID            int64                  `json:"id"`
	EntryDate     string                 `json:"entry_date"`
	Description   string                 `json:"description"`
	Category      ledger.ExpenseCategory `json:"category"`
	Amount        int64                  `json:"amount"`
	PaymentMethod ledger.PaymentMethod   `json:"payment_method"`
	EmployeeID    *int64                 `json:"employee_id,omitempty"`
	EmployeeName  *string                `json:"employee_name,omitempty"`
	Status        string                 `json:"status"`
}

func (e Entry) postings() []ledger.Posting {
	return ledger.ExpenseCreate(e.EntryDate, e.Category, e.PaymentMethod, e.Amount)
}
