package order

import (
	"context"
	"fmt"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

// stockLedger is the slice of the inventory service the order feature needs.
type stockLedger interface {
	CheckStock(ctx context.Context, productID, vendorID uuid.UUID, qty int) bool
	Reserve(ctx context.Context, productID, vendorID uuid.UUID, qty int) error
	Release(ctx context.Context, productID, vendorID uuid.UUID, qty int)
	CheckReorderLevel(ctx context.Context, productID, vendorID uuid.UUID)
}

// coordinator sequences stock checks and commits across the items of one
// order. It holds no state of its own; it must leave the ledger consistent
// even when a reservation fails partway through.
type coordinator struct {
	ledger stockLedger
}

// reserveAll reserves stock for every item or for none of them.
//
// Phase one checks every item without side effects so an order with any
// short item reserves nothing at all. Phase two commits the reservations one
// by one; if a reservation loses the race between check and commit, every
// reservation already taken in this batch is released before the error is
// surfaced. Reorder checks run only after the whole batch has committed.
func (c *coordinator) reserveAll(ctx context.Context, items []Item) error {
	for _, item := range items {
		if !c.ledger.CheckStock(ctx, item.ProductID, item.VendorID, item.Quantity) {
			return fmt.Errorf(
				"%w for product %s",
				servererrors.ErrInsufficientStock,
				item.ProductName,
			)
		}
	}

	reserved := make([]Item, 0, len(items))
	for _, item := range items {
		err := c.ledger.Reserve(ctx, item.ProductID, item.VendorID, item.Quantity)
		if err != nil {
			for _, prior := range reserved {
				c.ledger.Release(ctx, prior.ProductID, prior.VendorID, prior.Quantity)
			}

			return fmt.Errorf(
				"%w for product %s",
				servererrors.ErrReservationFailed,
				item.ProductID,
			)
		}

		reserved = append(reserved, item)
	}

	for _, item := range items {
		c.ledger.CheckReorderLevel(ctx, item.ProductID, item.VendorID)
	}

	return nil
}

// releaseAll returns every item's reserved quantity to availability. This is
// the only path that hands reserved stock back; it runs when a cancellation
// request is approved.
func (c *coordinator) releaseAll(ctx context.Context, items []Item) {
	for _, item := range items {
		c.ledger.Release(ctx, item.ProductID, item.VendorID, item.Quantity)
	}
}
