// Package users manages the back-office accounts that can sign in.
package users

// Account lifecycle states.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User is one account, without credential material.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
