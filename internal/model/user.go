package model

import "time"

// User represents a row in the `users` table. Each user owns zero or
// more lists; deleting a user removes all of their lists and places.
// The password hash never leaves the server, hence the "-" JSON tag.
type User struct {
	ID           uint64    `json:"id"`       // users.id
	Username     string    `json:"username"` // users.username (unique)
	PasswordHash string    `json:"-"`        // users.password_hash (bcrypt)
	CreatedAt    time.Time `json:"-"`        // users.created_at
	UpdatedAt    time.Time `json:"-"`        // users.updated_at
}

