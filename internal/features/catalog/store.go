package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

type store struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
	ids      []uuid.UUID // creation order
}

func NewStore() *store {
	return &store{
		products: make(map[uuid.UUID]*Product),
	}
}

func (s *store) createOne(ctx context.Context, product *Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *product
	s.products[product.ProductID] = &copied
	s.ids = append(s.ids, product.ProductID)
}

func (s *store) findByID(ctx context.Context, productID uuid.UUID) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[productID]
	if !exists {
		return Product{}, servererrors.ErrProductNotFound
	}

	return *product, nil
}

func (s *store) findByName(ctx context.Context, name string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.ids {
		if strings.EqualFold(s.products[id].Name, name) {
			return *s.products[id], true
		}
	}

	return Product{}, false
}

func (s *store) mutate(ctx context.Context, productID uuid.UUID, fn func(product *Product) error) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, exists := s.products[productID]
	if !exists {
		return Product{}, servererrors.ErrProductNotFound
	}

	if err := fn(product); err != nil {
		return Product{}, err
	}

	return *product, nil
}

func (s *store) findAll(ctx context.Context) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]Product, 0, len(s.ids))
	for _, id := range s.ids {
		products = append(products, *s.products[id])
	}

	return products
}
