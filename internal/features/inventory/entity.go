package inventory

import (
	"time"

	"github.com/google/uuid"
)

const defaultReorderLevel = 10

// StockRecord tracks one (product, vendor) stock pool. AvailableQuantity and
// ReservedQuantity are independently non-negative; reserve and release only
// move quantity between the two buckets and never change their sum.
type StockRecord struct {
	ProductID         uuid.UUID `json:"productID"`
	VendorID          uuid.UUID `json:"vendorID"`
	AvailableQuantity int       `json:"availableQuantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	ReorderLevel      int       `json:"reorderLevel"`
	Notifications     []string  `json:"notifications"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
