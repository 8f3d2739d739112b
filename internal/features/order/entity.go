package order

import (
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the closed set of order states. The transition table below is the
// single authority on which state changes are legal; callers never re-check
// statuses ad hoc.
type Status string

const (
	StatusProcessing            Status = "Processing"
	StatusCancellationRequested Status = "Cancellation Requested"
	StatusCancelled             Status = "Cancelled"
	StatusShipped               Status = "Shipped"
	StatusPartiallyDelivered    Status = "Partially Delivered"
	StatusDelivered             Status = "Delivered"
)

// transitions maps each state to the states reachable from it. Delivered and
// Cancelled are terminal.
var transitions = map[Status][]Status{
	StatusProcessing:            {StatusCancellationRequested, StatusShipped, StatusCancelled},
	StatusCancellationRequested: {StatusCancelled, StatusProcessing},
	StatusShipped:               {StatusDelivered, StatusPartiallyDelivered},
	StatusPartiallyDelivered:    {StatusDelivered},
	StatusDelivered:             {},
	StatusCancelled:             {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, known := transitions[status]; !known {
		return "", servererrors.ErrInvalidStatus
	}

	return status, nil
}

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "Pending"
	DeliveryStatusDelivered DeliveryStatus = "Delivered"
)

// Item is one line of an order. ProductName and Price are snapshots taken at
// order time; catalog changes afterwards must not alter historical orders.
type Item struct {
	ProductID      uuid.UUID       `json:"productID"`
	ProductName    string          `json:"productName"`
	VendorID       uuid.UUID       `json:"vendorID"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	DeliveryStatus DeliveryStatus  `json:"deliveryStatus"`
}

func (i Item) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	OrderID    uuid.UUID       `json:"orderID"`
	CustomerID uuid.UUID       `json:"customerID"`
	Items      []Item          `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func totalPrice(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice())
	}

	return total
}

// aggregateDeliveryStatus rolls the per-item delivery flags up into the
// order's status: all delivered wins over some delivered. It reports no
// change when nothing has been delivered yet.
func aggregateDeliveryStatus(items []Item) (Status, bool) {
	delivered := 0
	for _, item := range items {
		if item.DeliveryStatus == DeliveryStatusDelivered {
			delivered++
		}
	}

	switch {
	case delivered == len(items):
		return StatusDelivered, true
	case delivered > 0:
		return StatusPartiallyDelivered, true
	}

	return "", false
}

// CancellationAction is the verb a vendor or operator applies to a pending
// cancellation request.
type CancellationAction string

const (
	ActionApprove CancellationAction = "Approve"
	ActionReject  CancellationAction = "Reject"
)

func ParseCancellationAction(s string) (CancellationAction, error) {
	switch CancellationAction(s) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	}

	return "", servererrors.ErrInvalidAction
}
