package account

import (
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleVendor:
		return RoleVendor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}

	return "", servererrors.ErrInvalidRole
}

// Account is a role-tagged identity. VendorProfile is populated only when
// Role is vendor, replacing the subclassing a polymorphic store would need.
type Account struct {
	AccountID     uuid.UUID      `json:"accountID"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          Role           `json:"role"`
	VendorProfile *VendorProfile `json:"vendorProfile,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type VendorProfile struct {
	Ratings       []CustomerRating `json:"ratings"`
	AverageRating float64          `json:"averageRating"`
}

type CustomerRating struct {
	CustomerID uuid.UUID `json:"customerID"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}
