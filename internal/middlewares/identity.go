package middlewares

import (
	"context"
	"net/http"

	"github.com/juniper-commerce/marketplace-backend/internal/handlerutils"
	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/google/uuid"
)

// Identity is established upstream by the gateway; this layer only carries
// the already-authenticated ids into the request context. Credentials are
// never validated here.
const (
	customerIDHeader = "X-Customer-ID"
	vendorIDHeader   = "X-Vendor-ID"
)

type customerContextKey struct{}
type vendorContextKey struct{}

var (
	customerKey = customerContextKey{}
	vendorKey   = vendorContextKey{}
)

// RequireCustomer extracts the authenticated customer id from the request
// headers into the request context, rejecting requests without one.
func (mw *middleware) RequireCustomer(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		customerID, err := uuid.Parse(r.Header.Get(customerIDHeader))
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoCustomerIdentity.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			customerKey,
			customerID,
		)

		return h(w, r.WithContext(ctx))
	}
}

// RequireVendor extracts the authenticated vendor id from the request headers
// into the request context, rejecting requests without one.
func (mw *middleware) RequireVendor(h handlerutils.APIHandler) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		vendorID, err := uuid.Parse(r.Header.Get(vendorIDHeader))
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoVendorIdentity.Error(),
				nil,
			)
		}

		ctx := context.WithValue(
			r.Context(),
			vendorKey,
			vendorID,
		)

		return h(w, r.WithContext(ctx))
	}
}

func CustomerIDFromContext(ctx context.Context) uuid.UUID {
	customerID, ok := ctx.Value(customerKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return customerID
}

func VendorIDFromContext(ctx context.Context) uuid.UUID {
	vendorID, ok := ctx.Value(vendorKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}

	return vendorID
}
