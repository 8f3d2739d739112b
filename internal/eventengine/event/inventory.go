package event

import "github.com/google/uuid"

const (
	LowStockEventName EventName = "inventory.low_stock"
)

// LowStockEvent is published when a stock record's available quantity drops
// to or below its reorder level.
type LowStockEvent struct {
	ProductID uuid.UUID
	VendorID  uuid.UUID
	Remaining int
	Message   string
}

func (e *LowStockEvent) GetEventName() EventName {
	return LowStockEventName
}
