package ledger

import "time"

// DateLayout is the civil date format used throughout the ledger.
const DateLayout = "2006-01-02"

// businessZone is the franchise's fixed operating timezone (WITA, UTC+8).
// The civil date of every posting is taken in this zone regardless of where
// the server runs.
var businessZone = time.FixedZone("WITA", 8*60*60)

// Calendar yields "today" as a civil date in the business timezone.
type Calendar struct {
	now func() time.Time
}

// NewCalendar constructs a Calendar backed by the wall clock.
func NewCalendar() *Calendar {
	return &Calendar{now: time.Now}
}

// WithNow overrides the clock, for deterministic tests.
func (c *Calendar) WithNow(now func() time.Time) *Calendar {
	if now != nil {
		c.now = now
	}
	return c
}

// Today returns the current civil date as "YYYY-MM-DD".
func (c *Calendar) Today() string {
	return c.now().In(businessZone).Format(DateLayout)
}

// Now returns the current instant in the business timezone.
func (c *Calendar) Now() time.Time {
	return c.now().In(businessZone)
}

// ParseDate validates a "YYYY-MM-DD" civil date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
