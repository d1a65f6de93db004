package core

import "time"

// User represents an authenticated shop account. All orders and
// collaborators a user creates are scoped to their ID in storage.
type User struct {
	ID           string // UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
