package domain

import "time"

// User is the domain entity for an account. The password hash never
// leaves this layer.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
