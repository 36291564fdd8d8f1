package ui

import (
	"time"

	"rstr/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for the scan spinner animation
type tickMsg time.Time

// pagerDoneMsg contains the result of an open-in-pager command
type pagerDoneMsg struct {
	path string
	err  error
}
