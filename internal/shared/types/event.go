package types

import "time"

// EventType identifies a lifecycle event
type EventType string

const (
	EventShown     EventType = "panel.shown"
	EventHidden    EventType = "panel.hidden"
	EventDestroyed EventType = "panel.destroyed"
	EventReplaced  EventType = "panel.replaced"
	EventData      EventType = "panel.data"
)

// Event describes a panel lifecycle transition for streaming consumers
type Event struct {
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
	Kind      Kind      `json:"kind"`
	Instance  string    `json:"instance,omitempty"`
	State     State     `json:"state,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
