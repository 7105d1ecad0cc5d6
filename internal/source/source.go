// Package source supplies raw activity events from the window/tab shells.
package source

import (
	"time"
)

// Event is one raw window/tab signal as delivered by a browser extension or
// desktop shell.
type Event struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Time       time.Time `json:"-"`
	TypedCount int       `json:"typedCount,omitempty"`
	VisitCount int       `json:"visitCount,omitempty"`
}

// Source delivers raw activity events. A missing real source degrades to
// the synthetic generator rather than crashing the tracker.
type Source interface {
	// Events returns the channel events arrive on. The channel is closed
	// when the source shuts down.
	Events() <-chan Event

	// Close stops the source and releases its resources.
	Close() error
}
