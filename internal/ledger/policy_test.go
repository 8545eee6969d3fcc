package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryFeeCreate(t *testing.T) {
	rows := DeliveryFeeCreate("2025-12-10", 25500)
	require.Len(t, rows, 1)
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeSettlement, Amount: 25500}, rows[0])
}

func TestDFODCreateDualEntry(t *testing.T) {
	rows := DFODCreate("2025-12-10", MethodCash, 50000)
	require.Len(t, rows, 2)
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeCash, Amount: 50000}, rows[0])
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeSettlement, Amount: -50000}, rows[1])
}

func TestOutgoingCreateSettlementCut(t *testing.T) {
	// gross=100000, deduction=10000 => net=90000 => JFS cut is exactly 54000.
	rows := OutgoingCreate("2025-12-10", MethodTransfer, 90000)
	require.Len(t, rows, 2)
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeTransfer, Amount: 90000}, rows[0])
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeSettlement, Amount: -54000}, rows[1])
}

func TestSettlementCutTruncates(t *testing.T) {
	assert.Equal(t, int64(54000), SettlementCut(90000))
	assert.Equal(t, int64(600), SettlementCut(1001))  // 600.6 truncates
	assert.Equal(t, int64(2099), SettlementCut(3499)) // 2099.4 truncates
	assert.Equal(t, int64(0), SettlementCut(0))
}

func TestExpenseCreatePerCategory(t *testing.T) {
	for _, cat := range []ExpenseCategory{ExpenseOperational, ExpenseKasbon, ExpenseOther} {
		rows := ExpenseCreate("2025-12-10", cat, MethodCash, 20000)
		require.Len(t, rows, 1, "category %s", cat)
		assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeCash, Amount: -20000}, rows[0])
	}
}

func TestExpenseCreateTopUpDualEntry(t *testing.T) {
	rows := ExpenseCreate("2025-12-10", ExpenseTopUp, MethodTransfer, 100000)
	require.Len(t, rows, 2)
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeSettlement, Amount: 100000}, rows[0])
	assert.Equal(t, Posting{Date: "2025-12-10", Type: TypeTransfer, Amount: -100000}, rows[1])
}

func TestReverseCancelsCreate(t *testing.T) {
	sets := [][]Posting{
		DeliveryFeeCreate("2025-12-10", 25500),
		DFODCreate("2025-12-10", MethodTransfer, 75000),
		OutgoingCreate("2025-12-10", MethodCash, 90000),
		ExpenseCreate("2025-12-10", ExpenseTopUp, MethodCash, 40000),
		ExpenseCreate("2025-12-10", ExpenseKasbon, MethodTransfer, 15000),
	}
	for _, created := range sets {
		reversed := Reverse(created)
		require.Len(t, reversed, len(created))

		sums := map[TransactionType]int64{}
		for _, p := range created {
			sums[p.Type] += p.Amount
		}
		for _, p := range reversed {
			assert.Equal(t, created[0].Date, p.Date)
			sums[p.Type] += p.Amount
		}
		for typ, sum := range sums {
			assert.Zero(t, sum, "bucket %s must cancel out", typ)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	cases := map[string]PaymentMethod{
		"cash":     MethodCash,
		"Kas":      MethodCash,
		" CASH ":   MethodCash,
		"transfer": MethodTransfer,
		"tf":       MethodTransfer,
		"trans":    MethodTransfer,
	}
	for in, want := range cases {
		got, ok := ParsePaymentMethod(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "giro", "credit"} {
		_, ok := ParsePaymentMethod(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseExpenseCategory(t *testing.T) {
	cases := map[string]ExpenseCategory{
		"Operational":      ExpenseOperational,
		"Operasional":      ExpenseOperational,
		"kasbon":           ExpenseKasbon,
		"Top Up Saldo JFS": ExpenseTopUp,
		"TopUpSettlement":  ExpenseTopUp,
		"Other":            ExpenseOther,
		"Lainnya":          ExpenseOther,
	}
	for in, want := range cases {
		got, ok := ParseExpenseCategory(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseExpenseCategory("bonus")
	assert.False(t, ok)
}
