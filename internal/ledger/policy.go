package ledger

import "strings"

// ExpenseCategory is the closed set of expense kinds. The category decides
// both the required fields and the ledger effect of an expense entry.
type ExpenseCategory string

const (
	// ExpenseOperational is a day-to-day running cost.
	ExpenseOperational ExpenseCategory = "Operational"
	// ExpenseKasbon is a cash advance paid out to an employee.
	ExpenseKasbon ExpenseCategory = "Kasbon"
	// ExpenseTopUp converts cash or transfer money into JFS settlement balance.
	ExpenseTopUp ExpenseCategory = "TopUpSettlement"
	// ExpenseOther is any expense outside the categories above.
	ExpenseOther ExpenseCategory = "Other"
)

// ParseExpenseCategory maps request values (including the legacy Indonesian
// labels) onto the closed category set.
func ParseExpenseCategory(raw string) (ExpenseCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "operational", "operasional":
		return ExpenseOperational, true
	case "kasbon":
		return ExpenseKasbon, true
	case "topupsettlement", "top up saldo jfs", "topup":
		return ExpenseTopUp, true
	case "other", "lainnya":
		return ExpenseOther, true
	}
	return "", false
}

// SettlementCutPercent is the share of an outgoing payment's net amount that
// is carved out of the JFS settlement balance.
const SettlementCutPercent = 60

// SettlementCut computes the JFS carve-out for an outgoing payment. Integer
// division truncates toward zero; the cut is never rounded up.
func SettlementCut(net int64) int64 {
	return net * SettlementCutPercent / 100
}

// DeliveryFeeCreate posts a delivery fee: the full amount tops up the JFS
// settlement balance.
func DeliveryFeeCreate(date string, amount int64) []Posting {
	return []Posting{
		{Date: date, Type: TypeSettlement, Amount: amount},
	}
}

// DFODCreate posts a delivery-fee-on-delivery collection: income on the
// cash/transfer side mirrored by an equal reduction of the settlement balance.
func DFODCreate(date string, method PaymentMethod, amount int64) []Posting {
	return []Posting{
		{Date: date, Type: method.TransactionType(), Amount: amount},
		{Date: date, Type: TypeSettlement, Amount: -amount},
	}
}

// OutgoingCreate posts an outgoing shipment payment: the net amount comes in
// as cash/transfer and 60% of it is carved out of the settlement balance.
func OutgoingCreate(date string, method PaymentMethod, net int64) []Posting {
	return []Posting{
		{Date: date, Type: method.TransactionType(), Amount: net},
		{Date: date, Type: TypeSettlement, Amount: -SettlementCut(net)},
	}
}

// ExpenseCreate posts an expense. Every category reduces the cash/transfer
// balance; a settlement top-up additionally credits the JFS balance with the
// same amount.
func ExpenseCreate(date string, category ExpenseCategory, method PaymentMethod, amount int64) []Posting {
	var rows []Posting
	if category == ExpenseTopUp {
		rows = append(rows, Posting{Date: date, Type: TypeSettlement, Amount: amount})
	}
	rows = append(rows, Posting{Date: date, Type: method.TransactionType(), Amount: -amount})
	return rows
}
