// Package employees manages the branch staff roster.
package employees

// Employee lifecycle states.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Employee is one staff member.
type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Status   string `json:"status"`
}
