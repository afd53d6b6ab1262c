package events

import "time"

// Event is what travels over the campaign event stream. Every event is a
// code plus a flat payload so consumers can filter by subject without
// knowing the producing service's types.
type Event interface {
	// EventType returns the event code, e.g. "CAMPAIGN_STATUS_CHANGED".
	EventType() string

	// Payload returns the event data as published.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the concrete event the constructors in this package build,
// and what subscribers reconstruct from the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
