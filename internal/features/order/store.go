package order

import (
	"context"
	"sync"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

// store is the in-memory order collection. Orders are persisted and returned
// by value so callers can never mutate a stored order behind the lock's back.
type store struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order
	ids    []uuid.UUID // creation order
}

func NewStore() *store {
	return &store{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (s *store) createOne(ctx context.Context, order *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyOrder(order)
	s.orders[order.OrderID] = &stored
	s.ids = append(s.ids, order.OrderID)
}

func (s *store) findByID(ctx context.Context, orderID uuid.UUID) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[orderID]
	if !exists {
		return Order{}, servererrors.ErrOrderNotFound
	}

	return copyOrder(order), nil
}

func (s *store) findAll(ctx context.Context) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]Order, 0, len(s.ids))
	for _, id := range s.ids {
		orders = append(orders, copyOrder(s.orders[id]))
	}

	return orders
}

func (s *store) findByCustomer(ctx context.Context, customerID uuid.UUID) []Order {
	return s.filter(func(order *Order) bool {
		return order.CustomerID == customerID
	})
}

func (s *store) findByVendor(ctx context.Context, vendorID uuid.UUID) []Order {
	return s.filter(func(order *Order) bool {
		for _, item := range order.Items {
			if item.VendorID == vendorID {
				return true
			}
		}

		return false
	})
}

func (s *store) findByStatus(ctx context.Context, status Status) []Order {
	return s.filter(func(order *Order) bool {
		return order.Status == status
	})
}

func (s *store) filter(keep func(order *Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]Order, 0)
	for _, id := range s.ids {
		if keep(s.orders[id]) {
			orders = append(orders, copyOrder(s.orders[id]))
		}
	}

	return orders
}

// mutate applies fn to the order under the write lock. When fn succeeds the
// derived fields are refreshed in the same critical section: TotalPrice is
// recomputed from the items (never hand-edited) and UpdatedAt is bumped.
func (s *store) mutate(ctx context.Context, orderID uuid.UUID, fn func(order *Order) error) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[orderID]
	if !exists {
		return Order{}, servererrors.ErrOrderNotFound
	}

	if err := fn(order); err != nil {
		return Order{}, err
	}

	order.TotalPrice = totalPrice(order.Items)
	order.UpdatedAt = time.Now().UTC()

	return copyOrder(order), nil
}

func copyOrder(order *Order) Order {
	copied := *order
	copied.Items = append([]Item(nil), order.Items...)

	return copied
}
