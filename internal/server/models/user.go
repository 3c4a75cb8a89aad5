// Package models defines server-side data models shared by repositories
// and services.
package models

import "time"

// Role is the enumerated authorization role of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the credential record owned by the identity store.
// PasswordHash holds the bcrypt digest; the plaintext is never persisted.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	Active       bool
}

// Identity is the authenticated-user view handed to collaborators.
// The ID is an opaque ownership key; collaborators must never mutate it.
type Identity struct {
	ID       string
	Username string
	Role     Role
	Active   bool
}

// Identity returns the collaborator-facing subset of the user record.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Active:   u.Active,
	}
}
