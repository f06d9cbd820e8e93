package entity

import "time"

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash and must never reach a client-facing
// representation; handlers map User to explicit response shapes.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
