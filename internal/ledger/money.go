// Package ledger implements the posting and reversal rules for the shared
// finance ledger. Every financial entry kind maps onto a small set of signed
// ledger rows; deleting or editing an entry removes exactly the rows its
// creation produced.
package ledger

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// MinAmount is the smallest accepted amount in rupiah.
const MinAmount = 1000

// ErrInvalidAmount is returned for non-numeric input or amounts below MinAmount.
var ErrInvalidAmount = errors.New("amount must be a number of at least 1000")

// RawAmount accepts a monetary value from JSON as either a string with
// thousands separators ("25.500") or a bare number (25500).
type RawAmount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *RawAmount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
		return nil
	}
	*a = RawAmount(b)
	return nil
}

// IsZero reports whether no value was supplied.
func (a RawAmount) IsZero() bool {
	s := strings.TrimSpace(string(a))
	return s == "" || s == "0" || s == "null"
}

// ParseAmount strips "." and "," thousands separators and converts the rest
// to an integer amount. It fails with ErrInvalidAmount for anything that is
// not a whole number of at least MinAmount.
func ParseAmount(raw RawAmount) (int64, error) {
	clean := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(string(raw)))
	if clean == "" {
		return 0, ErrInvalidAmount
	}
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil || n < MinAmount {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

// ParseOptionalAmount behaves like ParseAmount but treats an absent value as
// zero, for fields such as the outgoing deduction.
func ParseOptionalAmount(raw RawAmount) (int64, error) {
	if raw.IsZero() {
		return 0, nil
	}
	return ParseAmount(raw)
}
