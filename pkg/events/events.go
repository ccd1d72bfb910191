// Package events defines the order lifecycle events emitted after each
// successful write operation.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderCreatedEvent       EventType = "order.created"
	OrderStatusChangedEvent EventType = "order.status_changed"
	OrderCancelledEvent     EventType = "order.cancelled"
	OrderModifiedEvent      EventType = "order.modified"
)

type OrderEvent struct {
	ID            uuid.UUID   `json:"id"`
	OrderID       int64       `json:"order_id"`
	EventType     EventType   `json:"event_type"`
	Payload       interface{} `json:"payload"`
	Timestamp     time.Time   `json:"timestamp"`
	Service       string      `json:"service"`
	CorrelationID uuid.UUID   `json:"correlation_id"`
}

type OrderCreatedPayload struct {
	UserID     int64  `json:"user_id"`
	TotalPrice int64  `json:"total_price"`
	LineCount  int    `json:"line_count"`
	Status     string `json:"status"`
}

type OrderStatusChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type OrderCancelledPayload struct {
	RestoredLines int `json:"restored_lines"`
}

type OrderModifiedPayload struct {
	TotalPrice int64 `json:"total_price"`
	EditCount  int   `json:"edit_count"`
}
