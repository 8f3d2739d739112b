package servererrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for the request layer.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLQueryParams        = errors.New("invalid url query params")
	ErrNoCustomerIdentity    = errors.New("customer identity not found in request")
	ErrNoVendorIdentity      = errors.New("vendor identity not found in request")
)

// Sentinel errors for the order and inventory domain.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrStockRecordNotFound = errors.New("stock record not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrReservationFailed   = errors.New("unable to reserve stock")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be greater than zero")
	ErrInvalidState        = errors.New("order status does not allow this operation")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrInvalidAction       = errors.New("invalid action, must be 'Approve' or 'Reject'")
	ErrNoActiveRequest     = errors.New("no cancellation request found for this order")
	ErrItemNotFound        = errors.New("order item not found for this vendor and product")
)

// Sentinel errors for the catalog and account features.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrNotVendor            = errors.New("account is not a vendor")
	ErrInvalidRole          = errors.New("invalid account role")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
)

type ServerError struct {
	StatusCode int
	message    string
	Errors     any
}

// New creates a *ServerError with an explicit http status code. errs carries
// field-level details for the response body and may be nil.
func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.message
}

// HTTPStatus maps a domain error to its http status code. The mapping lives
// here so handlers don't re-check the same sentinel errors ad hoc at each
// call site.
func HTTPStatus(err error) int {
	var serverError *ServerError
	if errors.As(err, &serverError) {
		return serverError.StatusCode
	}

	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrStockRecordNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrReservationFailed):
		return http.StatusBadRequest

	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrNoActiveRequest),
		errors.Is(err, ErrProductAlreadyExists),
		errors.Is(err, ErrAccountAlreadyExists),
		errors.Is(err, ErrNotVendor):
		return http.StatusConflict

	case errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrValidationFailed):
		return http.StatusUnprocessableEntity

	case errors.Is(err, ErrInvalidRequestPayload),
		errors.Is(err, ErrURLQueryParams):
		return http.StatusBadRequest

	case errors.Is(err, ErrNoCustomerIdentity),
		errors.Is(err, ErrNoVendorIdentity):
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}
