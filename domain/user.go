package domain

import "time"

// User represents a registered account. The password hash never leaves
// the server; it is excluded from every JSON rendering.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
