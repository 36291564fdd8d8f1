package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventMatchFound    EventType = "MatchFound"
	EventScanStarted   EventType = "ScanStarted"
	EventScanProgress  EventType = "ScanProgress"
	EventScanCompleted EventType = "ScanCompleted"
	EventError         EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// MatchFoundEvent is emitted for every line that satisfies the pattern
type MatchFoundEvent struct {
	Match Match
}

func (e MatchFoundEvent) Type() EventType { return EventMatchFound }

// ScanStartedEvent is emitted when the file scan begins
type ScanStartedEvent struct {
	Root    string
	Pattern string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanProgressEvent is emitted periodically while the scan is running
type ScanProgressEvent struct {
	CurrentPath  string
	FilesScanned int
}

func (e ScanProgressEvent) Type() EventType { return EventScanProgress }

// ScanCompletedEvent is emitted when the file scan finishes or is canceled
type ScanCompletedEvent struct {
	FilesScanned int
	MatchesFound int
	Canceled     bool
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// ErrorEvent is emitted when a non-fatal error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
