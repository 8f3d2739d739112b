package inventory

import (
	"context"

	"github.com/juniper-commerce/marketplace-backend/internal/eventengine"
	"github.com/juniper-commerce/marketplace-backend/internal/eventengine/event"
	"github.com/google/uuid"
)

type storer interface {
	find(productID, vendorID uuid.UUID) (StockRecord, bool)
	upsert(productID, vendorID uuid.UUID, qty int) StockRecord
	reserve(productID, vendorID uuid.UUID, qty int) error
	release(productID, vendorID uuid.UUID, qty int) bool
	lowStockNote(productID, vendorID uuid.UUID) (note string, remaining int, appended bool)
	byVendor(vendorID uuid.UUID) []StockRecord
	all() []StockRecord
	notificationsByVendor(vendorID uuid.UUID) []string
}

// service is the stock ledger. It has no knowledge of orders; the order
// feature drives it through its exported methods.
type service struct {
	store  storer
	events eventengine.RegisterPublisher
}

func NewService(store storer, events eventengine.RegisterPublisher) *service {
	if events != nil {
		events.RegisterEvents(event.LowStockEventName)
	}

	return &service{
		store:  store,
		events: events,
	}
}

// CheckStock reports whether a record exists with at least qty available.
// No side effects.
func (s *service) CheckStock(ctx context.Context, productID, vendorID uuid.UUID, qty int) bool {
	record, exists := s.store.find(productID, vendorID)

	return exists && record.AvailableQuantity >= qty
}

// SetStock replaces the record's available quantity with qty, creating the
// record lazily on first use, then runs the reorder-level check.
func (s *service) SetStock(ctx context.Context, productID, vendorID uuid.UUID, qty int) {
	s.store.upsert(productID, vendorID, qty)
	s.CheckReorderLevel(ctx, productID, vendorID)
}

// Reserve moves qty from available to reserved. This is the sole admission
// control point preventing oversell: it fails without mutating when
// available stock is short.
func (s *service) Reserve(ctx context.Context, productID, vendorID uuid.UUID, qty int) error {
	return s.store.reserve(productID, vendorID, qty)
}

// Release returns qty from reserved to available. A shortfall signals a
// logic error upstream, so it no-ops rather than corrupt the ledger.
func (s *service) Release(ctx context.Context, productID, vendorID uuid.UUID, qty int) {
	s.store.release(productID, vendorID, qty)
}

// CheckReorderLevel appends a low-stock notification when available quantity
// is at or below the record's reorder level, and publishes a low-stock event
// the first time a given message is generated.
func (s *service) CheckReorderLevel(ctx context.Context, productID, vendorID uuid.UUID) {
	note, remaining, appended := s.store.lowStockNote(productID, vendorID)
	if !appended || s.events == nil {
		return
	}

	_ = s.events.Publish(
		&event.Event{
			Name: event.LowStockEventName,
			Payload: &event.LowStockEvent{
				ProductID: productID,
				VendorID:  vendorID,
				Remaining: remaining,
				Message:   note,
			},
		},
	)
}

// NotificationsFor returns the concatenated notification logs across all of
// the vendor's records, in insertion order.
func (s *service) NotificationsFor(ctx context.Context, vendorID uuid.UUID) []string {
	return s.store.notificationsByVendor(vendorID)
}

func (s *service) StocksByVendor(ctx context.Context, vendorID uuid.UUID) []StockRecord {
	return s.store.byVendor(vendorID)
}

func (s *service) AllStock(ctx context.Context) []StockRecord {
	return s.store.all()
}

// Record returns a copy of one stock record.
func (s *service) Record(ctx context.Context, productID, vendorID uuid.UUID) (StockRecord, bool) {
	return s.store.find(productID, vendorID)
}
