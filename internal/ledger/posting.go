package ledger

import "strings"

// TransactionType tags a ledger row with the balance it moves.
type TransactionType string

const (
	// TypeCash tracks physical cash on hand.
	TypeCash TransactionType = "Cash"
	// TypeTransfer tracks the bank transfer balance.
	TypeTransfer TransactionType = "Transfer"
	// TypeSettlement tracks the internal JFS settlement balance. It is a
	// bookkeeping bucket, not a real account.
	TypeSettlement TransactionType = "Saldo JFS"
)

// PaymentMethod is the cash/transfer axis recorded on financial entries.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "Cash"
	MethodTransfer PaymentMethod = "Transfer"
)

// ParsePaymentMethod normalizes the free-form values the frontend sends.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash", "kas":
		return MethodCash, true
	case "transfer", "tf", "trans":
		return MethodTransfer, true
	}
	return "", false
}

// TransactionType returns the ledger bucket a payment method moves.
func (m PaymentMethod) TransactionType() TransactionType {
	if m == MethodTransfer {
		return TypeTransfer
	}
	return TypeCash
}

// Posting is one signed ledger row. Rows carry no reference to the entry that
// produced them; reversal matches on the full (date, type, amount) triple.
type Posting struct {
	Date   string          `json:"date"`
	Type   TransactionType `json:"transaction_type"`
	Amount int64           `json:"amount"`
}

// Reverse returns the element-wise negation of a posting set. Applying it to
// the snapshot that produced the original postings yields a net-zero ledger.
func Reverse(rows []Posting) []Posting {
	out := make([]Posting, len(rows))
	for i, p := range rows {
		out[i] = Posting{Date: p.Date, Type: p.Type, Amount: -p.Amount}
	}
	return out
}
