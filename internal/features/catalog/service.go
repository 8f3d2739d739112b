package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type storer interface {
	createOne(ctx context.Context, product *Product)
	findByID(ctx context.Context, productID uuid.UUID) (Product, error)
	findByName(ctx context.Context, name string) (Product, bool)
	findAll(ctx context.Context) []Product
	mutate(ctx context.Context, productID uuid.UUID, fn func(product *Product) error) (Product, error)
}

// stockSetter is the slice of the inventory service the catalog needs:
// creating a product seeds its (product, vendor) stock pool.
type stockSetter interface {
	SetStock(ctx context.Context, productID, vendorID uuid.UUID, qty int)
}

type service struct {
	store  storer
	ledger stockSetter
}

func NewService(store storer, ledger stockSetter) *service {
	return &service{
		store:  store,
		ledger: ledger,
	}
}

func (s *service) CreateProduct(ctx context.Context, newProduct *CreateProductRequest) (Product, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)

	if _, exists := s.store.findByName(ctx, newProduct.Name); exists {
		return Product{}, servererrors.ErrProductAlreadyExists
	}

	vendorID, err := uuid.Parse(newProduct.VendorID)
	if err != nil {
		return Product{}, servererrors.ErrValidationFailed
	}

	product := &Product{
		ProductID:   uuid.New(),
		VendorID:    vendorID,
		Name:        newProduct.Name,
		Description: newProduct.Description,
		Price:       decimal.NewFromFloat(newProduct.Price),
		Category:    newProduct.Category,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	s.store.createOne(ctx, product)
	s.ledger.SetStock(ctx, product.ProductID, product.VendorID, newProduct.Quantity)

	return *product, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, update *UpdateProductRequest) (Product, error) {
	if update.Name != nil {
		*update.Name = strings.TrimSpace(*update.Name)
		if other, exists := s.store.findByName(ctx, *update.Name); exists && other.ProductID != productID {
			return Product{}, servererrors.ErrProductAlreadyExists
		}
	}

	return s.store.mutate(ctx, productID, func(product *Product) error {
		if update.Name != nil {
			product.Name = *update.Name
		}
		if update.Description != nil {
			product.Description = strings.TrimSpace(*update.Description)
		}
		if update.Price != nil {
			product.Price = decimal.NewFromFloat(*update.Price)
		}
		if update.Category != nil {
			product.Category = *update.Category
		}
		if update.IsActive != nil {
			product.IsActive = *update.IsActive
		}
		return nil
	})
}

// GetProduct resolves a product for order snapshotting and notifications.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (Product, error) {
	return s.store.findByID(ctx, productID)
}

func (s *service) AllProducts(ctx context.Context) []Product {
	return s.store.findAll(ctx)
}
