package order

import (
	"context"
	"fmt"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/eventengine"
	"github.com/juniper-commerce/marketplace-backend/internal/eventengine/event"
	"github.com/juniper-commerce/marketplace-backend/internal/features/catalog"
	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

type storer interface {
	createOne(ctx context.Context, order *Order)
	findByID(ctx context.Context, orderID uuid.UUID) (Order, error)
	findAll(ctx context.Context) []Order
	findByCustomer(ctx context.Context, customerID uuid.UUID) []Order
	findByVendor(ctx context.Context, vendorID uuid.UUID) []Order
	findByStatus(ctx context.Context, status Status) []Order
	mutate(ctx context.Context, orderID uuid.UUID, fn func(order *Order) error) (Order, error)
}

type productFetcher interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (catalog.Product, error)
}

// NewItem is the caller's view of an order line before the catalog snapshot
// is taken: what to buy, from whom, how many.
type NewItem struct {
	ProductID uuid.UUID
	VendorID  uuid.UUID
	Quantity  int
}

type service struct {
	store       storer
	catalog     productFetcher
	coordinator *coordinator
	events      eventengine.RegisterPublisher
}

func NewService(
	store storer,
	ledger stockLedger,
	productCatalog productFetcher,
	events eventengine.RegisterPublisher,
) *service {
	if events != nil {
		events.RegisterEvents(event.OrderCancelledEventName)
	}

	return &service{
		store:       store,
		catalog:     productCatalog,
		coordinator: &coordinator{ledger: ledger},
		events:      events,
	}
}

// CreateOrder snapshots name and price for every item from the catalog,
// reserves stock all-or-nothing, and persists the order in Processing status.
// Nothing is persisted when any reservation fails.
func (s *service) CreateOrder(ctx context.Context, customerID uuid.UUID, newItems []NewItem) (Order, error) {
	items, err := s.snapshotItems(ctx, newItems)
	if err != nil {
		return Order{}, err
	}

	if err := s.coordinator.reserveAll(ctx, items); err != nil {
		return Order{}, err
	}

	now := time.Now().UTC()
	order := &Order{
		OrderID:    uuid.New(),
		CustomerID: customerID,
		Items:      items,
		TotalPrice: totalPrice(items),
		Status:     StatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.store.createOne(ctx, order)

	return *order, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (Order, error) {
	return s.store.findByID(ctx, orderID)
}

func (s *service) AllOrders(ctx context.Context) []Order {
	return s.store.findAll(ctx)
}

func (s *service) OrdersByCustomer(ctx context.Context, customerID uuid.UUID) []Order {
	return s.store.findByCustomer(ctx, customerID)
}

func (s *service) OrdersByVendor(ctx context.Context, vendorID uuid.UUID) []Order {
	return s.store.findByVendor(ctx, vendorID)
}

// ItemsByVendor returns the vendor's own lines across all orders.
func (s *service) ItemsByVendor(ctx context.Context, vendorID uuid.UUID) []Item {
	items := make([]Item, 0)
	for _, order := range s.store.findByVendor(ctx, vendorID) {
		for _, item := range order.Items {
			if item.VendorID == vendorID {
				items = append(items, item)
			}
		}
	}

	return items
}

func (s *service) CancellationRequests(ctx context.Context) []Order {
	return s.store.findByStatus(ctx, StatusCancellationRequested)
}

// UpdateItems replaces the order's items, re-snapshotting name and price.
// Allowed only while the order is still Processing. Stock reservations are
// not adjusted here; the original reservation stands for the order.
func (s *service) UpdateItems(ctx context.Context, orderID uuid.UUID, newItems []NewItem) (Order, error) {
	items, err := s.snapshotItems(ctx, newItems)
	if err != nil {
		return Order{}, err
	}

	return s.store.mutate(ctx, orderID, func(order *Order) error {
		if order.Status != StatusProcessing {
			return fmt.Errorf(
				"%w: order can only be updated while in '%s' status",
				servererrors.ErrInvalidState,
				StatusProcessing,
			)
		}

		order.Items = items

		return nil
	})
}

// UpdateStatus moves an order along the fulfillment path. Only Shipped and
// Delivered can be requested here: Shipped from Processing, Delivered from
// Shipped. Cancellation goes through its own workflow.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) (Order, error) {
	return s.store.mutate(ctx, orderID, func(order *Order) error {
		switch newStatus {
		case StatusShipped:
			if order.Status != StatusProcessing {
				return servererrors.ErrInvalidTransition
			}
		case StatusDelivered:
			if order.Status != StatusShipped {
				return servererrors.ErrInvalidTransition
			}
		default:
			return servererrors.ErrInvalidTransition
		}

		order.Status = newStatus

		return nil
	})
}

// CancelOrder cancels immediately, without the request/approve round trip.
// The transition table rejects it once the order has shipped or any item has
// been delivered.
func (s *service) CancelOrder(ctx context.Context, orderID uuid.UUID) (Order, error) {
	return s.store.mutate(ctx, orderID, func(order *Order) error {
		if !order.Status.CanTransitionTo(StatusCancelled) {
			return fmt.Errorf(
				"%w: cannot cancel an order that has already been shipped or delivered",
				servererrors.ErrInvalidState,
			)
		}

		order.Status = StatusCancelled

		return nil
	})
}

// RequestCancellation is phase one of the two-phase cancellation: the order
// moves to Cancellation Requested but its stock stays reserved, because the
// request may still be rejected.
func (s *service) RequestCancellation(ctx context.Context, orderID uuid.UUID) (Order, error) {
	return s.store.mutate(ctx, orderID, func(order *Order) error {
		if order.Status != StatusProcessing {
			return fmt.Errorf(
				"%w: only '%s' orders can be cancelled",
				servererrors.ErrInvalidState,
				StatusProcessing,
			)
		}

		order.Status = StatusCancellationRequested

		return nil
	})
}

// ProcessCancellation resolves a pending cancellation request. Approve
// cancels the order and releases every item's reserved stock — the only path
// that returns reserved stock to availability. Reject puts the order back to
// Processing with its reservation intact.
func (s *service) ProcessCancellation(ctx context.Context, orderID uuid.UUID, action CancellationAction) (Order, error) {
	if action != ActionApprove && action != ActionReject {
		return Order{}, servererrors.ErrInvalidAction
	}

	order, err := s.store.mutate(ctx, orderID, func(order *Order) error {
		if order.Status != StatusCancellationRequested {
			return servererrors.ErrNoActiveRequest
		}

		if action == ActionApprove {
			order.Status = StatusCancelled
		} else {
			order.Status = StatusProcessing
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	if action == ActionApprove {
		s.coordinator.releaseAll(ctx, order.Items)

		if s.events != nil {
			_ = s.events.Publish(
				&event.Event{
					Name: event.OrderCancelledEventName,
					Payload: &event.OrderCancelledEvent{
						OrderID:    order.OrderID,
						CustomerID: order.CustomerID,
					},
				},
			)
		}
	}

	return order, nil
}

// MarkItemDelivered flags the (vendor, product) line as delivered and
// recomputes the order's aggregate status. The recompute runs after every
// mark, not only the last one, so intermediate reads are accurate.
func (s *service) MarkItemDelivered(ctx context.Context, orderID, vendorID, productID uuid.UUID) (Order, error) {
	return s.store.mutate(ctx, orderID, func(order *Order) error {
		marked := false
		for i := range order.Items {
			if order.Items[i].ProductID == productID && order.Items[i].VendorID == vendorID {
				order.Items[i].DeliveryStatus = DeliveryStatusDelivered
				marked = true
				break
			}
		}

		if !marked {
			return servererrors.ErrItemNotFound
		}

		if status, changed := aggregateDeliveryStatus(order.Items); changed {
			order.Status = status
		}

		return nil
	})
}

func (s *service) snapshotItems(ctx context.Context, newItems []NewItem) ([]Item, error) {
	if len(newItems) == 0 {
		return nil, servererrors.ErrEmptyOrder
	}

	items := make([]Item, 0, len(newItems))
	for _, newItem := range newItems {
		if newItem.Quantity <= 0 {
			return nil, servererrors.ErrInvalidQuantity
		}

		product, err := s.catalog.GetProduct(ctx, newItem.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, Item{
			ProductID:      newItem.ProductID,
			ProductName:    product.Name,
			VendorID:       newItem.VendorID,
			Quantity:       newItem.Quantity,
			Price:          product.Price,
			DeliveryStatus: DeliveryStatusPending,
		})
	}

	return items, nil
}
