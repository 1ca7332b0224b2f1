package models

import "time"

// Event types published to the receipt topic
const (
	EventTypeOrderPlaced = "ORDER_PLACED"
)

// BaseEvent contains common event fields
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent is emitted after a successful checkout. It carries the
// full receipt so downstream consumers do not need read access to the
// snapshot store.
type OrderPlacedEvent struct {
	BaseEvent
	OrderID  string     `json:"order_id"`
	Customer Customer   `json:"customer"`
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
}
