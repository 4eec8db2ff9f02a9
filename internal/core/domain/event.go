package domain

import "time"

// Event is a calendar entry on a single day.
type Event struct {
	// ID is a unique identifier assigned at creation.
	ID string `json:"id"`

	// Date is the day the event falls on, normalized to midnight UTC.
	Date time.Time `json:"date"`

	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

// EventQuery filters calendar events. Zero values mean no filter: an empty
// query returns every event.
type EventQuery struct {
	// Day restricts to events on exactly this day.
	Day *time.Time

	// From and To restrict to an inclusive range. Either bound may be open.
	From *time.Time
	To   *time.Time
}

// IsEmpty reports whether the query applies no filtering.
func (q EventQuery) IsEmpty() bool {
	return q.Day == nil && q.From == nil && q.To == nil
}
