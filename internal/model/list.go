package model

import "time"

// List is a named collection of cleaning places ("Kitchen", "Living
// Room"). A list belongs to exactly one user and list titles are
// unique per owner, not globally. Deleting a list removes all of its
// places in the same transaction.
type List struct {
	ID        uint64    `json:"id"`      // lists.id
	UserID    uint64    `json:"user_id"` // lists.user_id (owner)
	Title     string    `json:"title"`   // lists.title (unique per owner)
	CreatedAt time.Time `json:"-"`       // lists.created_at
	UpdatedAt time.Time `json:"-"`       // lists.updated_at

	// Places holds the list's children. Always non-nil on API
	// responses so clients see an array even when it is empty.
	Places []Place `json:"places"`
}
