package account

import (
	"context"
	"net/http"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/handlerutils"
	"github.com/juniper-commerce/marketplace-backend/internal/middlewares"
	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/juniper-commerce/marketplace-backend/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	CreateAccount(ctx context.Context, newAccount *CreateAccountRequest) (Account, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (Account, error)
	AddVendorRating(ctx context.Context, vendorID, customerID uuid.UUID, rating int, comment string) (Account, error)
	VendorRatings(ctx context.Context, vendorID uuid.UUID) ([]CustomerRating, error)
}

type middleware interface {
	RequireCustomer(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(accountService servicer, middleware middleware) *handler {
	return &handler{
		service:    accountService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/accounts",
		handlerutils.MakeHandler(
			h.createAccountHandler,
		),
	)

	router.Get(
		"/accounts/{accountID}",
		handlerutils.MakeHandler(
			h.getAccountHandler,
		),
	)

	router.Get(
		"/vendors/{vendorID}/ratings",
		handlerutils.MakeHandler(
			h.vendorRatingsHandler,
		),
	)

	router.Post(
		"/vendors/{vendorID}/ratings",
		handlerutils.MakeHandler(
			h.middleware.RequireCustomer(
				h.addVendorRatingHandler,
			),
		),
	)
}

func (h *handler) createAccountHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateAccountRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if fieldErrors := validate.StructFields(payload); fieldErrors != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrors,
		)
	}

	account, err := h.service.CreateAccount(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"account created",
		account,
	)
}

func (h *handler) getAccountHandler(w http.ResponseWriter, r *http.Request) error {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid account id",
			nil,
		)
	}

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"account found",
		account,
	)
}

func (h *handler) addVendorRatingHandler(w http.ResponseWriter, r *http.Request) error {
	vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid vendor id",
			nil,
		)
	}

	var payload *AddVendorRatingRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if fieldErrors := validate.StructFields(payload); fieldErrors != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrors,
		)
	}

	customerID := middlewares.CustomerIDFromContext(r.Context())

	account, err := h.service.AddVendorRating(
		r.Context(),
		vendorID,
		customerID,
		payload.Rating,
		payload.Comment,
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"vendor rating added",
		account,
	)
}

func (h *handler) vendorRatingsHandler(w http.ResponseWriter, r *http.Request) error {
	vendorID, err := uuid.Parse(chi.URLParam(r, "vendorID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid vendor id",
			nil,
		)
	}

	ratings, err := h.service.VendorRatings(r.Context(), vendorID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"vendor ratings retrieved",
		ratings,
	)
}
