package model

import "time"

// Event is a public GitHub activity event. Only the type and timestamp are
// retained; that is all the events-based contribution heuristic needs.
type Event struct {
	Type      string
	CreatedAt time.Time
}
