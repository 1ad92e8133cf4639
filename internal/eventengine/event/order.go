package event

import "github.com/google/uuid"

const (
	OrderPlacedEventName EventName = "order.placed"
)

// OrderPlacedEvent is published after an order row has been persisted. The
// shipping email may be empty for orders placed without one.
type OrderPlacedEvent struct {
	OrderID       uuid.UUID
	ShippingEmail string
	FirstName     string
	TotalPrice    float64
	ItemCount     int
}

func (e *OrderPlacedEvent) GetEventName() EventName {
	return OrderPlacedEventName
}
