package model

import "time"

// Place is a single cleaning spot within a list ("Window", "Sink").
// Place names are unique within their list. NextDueDate holds the
// next day the spot is due for cleaning and IntervalDays the number
// of days between cleanings; completing a place advances the due
// date by the interval.
type Place struct {
	ID           uint64    `json:"id"`            // places.id
	ListID       uint64    `json:"-"`             // places.list_id (parent)
	Name         string    `json:"name"`          // places.name (unique per list)
	NextDueDate  Date      `json:"next_due_date"` // places.next_due_date
	IntervalDays int       `json:"interval_days"` // places.interval_days (>= 1)
	CreatedAt    time.Time `json:"-"`             // places.created_at
	UpdatedAt    time.Time `json:"-"`             // places.updated_at
}
