package model

import "time"

type EventType string

const (
	EventCreated   EventType = "customer.created"
	EventUpdated   EventType = "customer.updated"
	EventDeleted   EventType = "customer.deleted"
	EventSuspended EventType = "customer.suspended"
)

func (t EventType) String() string { return string(t) }

// Event is the lifecycle envelope published to Kafka after a committed change.
type Event struct {
	ID         string       `json:"id"` // ULID
	Type       EventType    `json:"type"`
	CustomerID int64        `json:"customer_id"`
	Customer   CustomerJSON `json:"customer"`
	OccurredAt time.Time    `json:"occurred_at"`
}
