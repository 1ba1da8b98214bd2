// Package queue defines the activity events exchanged over the
// message broker and the publisher/consumer that move them.
package queue

// PlaceCompletedEvent is published whenever a place is marked as
// cleaned. It carries enough detail for the activity log consumer to
// record the completion without querying the database.
type PlaceCompletedEvent struct {
	PlaceID      uint64 `json:"place_id"`
	ListID       uint64 `json:"list_id"`
	UserID       uint64 `json:"user_id"`
	PlaceName    string `json:"place_name"`
	IntervalDays int    `json:"interval_days"`
	CompletedOn  string `json:"completed_on"`  // YYYY-MM-DD
	NextDueDate  string `json:"next_due_date"` // YYYY-MM-DD
}
