package account

import (
	"context"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

type storer interface {
	createOne(ctx context.Context, account *Account) error
	findByID(ctx context.Context, accountID uuid.UUID) (Account, error)
	mutate(ctx context.Context, accountID uuid.UUID, fn func(account *Account) error) (Account, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) CreateAccount(ctx context.Context, newAccount *CreateAccountRequest) (Account, error) {
	role, err := ParseRole(newAccount.Role)
	if err != nil {
		return Account{}, err
	}

	account := &Account{
		AccountID: uuid.New(),
		Name:      newAccount.Name,
		Email:     newAccount.Email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if role == RoleVendor {
		account.VendorProfile = &VendorProfile{
			Ratings: make([]CustomerRating, 0),
		}
	}

	if err := s.store.createOne(ctx, account); err != nil {
		return Account{}, err
	}

	return *account, nil
}

func (s *service) GetAccount(ctx context.Context, accountID uuid.UUID) (Account, error) {
	return s.store.findByID(ctx, accountID)
}

// AddVendorRating appends a customer rating to a vendor's profile and
// recomputes the average.
func (s *service) AddVendorRating(ctx context.Context, vendorID, customerID uuid.UUID, rating int, comment string) (Account, error) {
	if rating < 1 || rating > 5 {
		return Account{}, servererrors.ErrInvalidRating
	}

	return s.store.mutate(ctx, vendorID, func(account *Account) error {
		if account.Role != RoleVendor || account.VendorProfile == nil {
			return servererrors.ErrNotVendor
		}

		account.VendorProfile.Ratings = append(
			account.VendorProfile.Ratings,
			CustomerRating{
				CustomerID: customerID,
				Rating:     rating,
				Comment:    comment,
				CreatedAt:  time.Now().UTC(),
			},
		)

		total := 0
		for _, r := range account.VendorProfile.Ratings {
			total += r.Rating
		}
		account.VendorProfile.AverageRating = float64(total) / float64(len(account.VendorProfile.Ratings))

		return nil
	})
}

func (s *service) VendorRatings(ctx context.Context, vendorID uuid.UUID) ([]CustomerRating, error) {
	account, err := s.store.findByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if account.Role != RoleVendor || account.VendorProfile == nil {
		return nil, servererrors.ErrNotVendor
	}

	return account.VendorProfile.Ratings, nil
}
