package account

import (
	"context"
	"strings"
	"sync"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

type store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
}

func NewStore() *store {
	return &store{
		accounts: make(map[uuid.UUID]*Account),
	}
}

func (s *store) createOne(ctx context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return servererrors.ErrAccountAlreadyExists
		}
	}

	copied := copyAccount(account)
	s.accounts[account.AccountID] = &copied

	return nil
}

func (s *store) findByID(ctx context.Context, accountID uuid.UUID) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[accountID]
	if !exists {
		return Account{}, servererrors.ErrAccountNotFound
	}

	return copyAccount(account), nil
}

// mutate applies fn to the account under the write lock.
func (s *store) mutate(ctx context.Context, accountID uuid.UUID, fn func(account *Account) error) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[accountID]
	if !exists {
		return Account{}, servererrors.ErrAccountNotFound
	}

	if err := fn(account); err != nil {
		return Account{}, err
	}

	return copyAccount(account), nil
}

func copyAccount(account *Account) Account {
	copied := *account
	if account.VendorProfile != nil {
		profile := *account.VendorProfile
		profile.Ratings = append([]CustomerRating(nil), account.VendorProfile.Ratings...)
		copied.VendorProfile = &profile
	}

	return copied
}
