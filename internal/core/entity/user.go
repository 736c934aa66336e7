package entity

import "stockbook/internal/core/security"

// User is a person who can act on the ledger.
type User struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Role security.Role `json:"role"`

	// PasswordHash is a bcrypt hash used only by sign-in
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Actor returns the security principal for u.
func (u User) Actor() security.Actor {
	return security.Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}
