package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog's view of a sellable item. Orders snapshot Name and
// Price at creation time, so later edits here never touch historical orders.
type Product struct {
	ProductID   uuid.UUID       `json:"productID"`
	VendorID    uuid.UUID       `json:"vendorID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}
