package event

import "github.com/google/uuid"

const (
	OrderCancelledEventName EventName = "order.cancelled"
)

// OrderCancelledEvent is published once an approved cancellation has released
// the order's reserved stock back to the ledger.
type OrderCancelledEvent struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
}

func (e *OrderCancelledEvent) GetEventName() EventName {
	return OrderCancelledEventName
}
