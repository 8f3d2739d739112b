package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/handlerutils"
	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/juniper-commerce/marketplace-backend/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	CreateProduct(ctx context.Context, newProduct *CreateProductRequest) (Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, update *UpdateProductRequest) (Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (Product, error)
	AllProducts(ctx context.Context) []Product
}

type handler struct {
	service servicer
}

func NewHandler(catalogService servicer) *handler {
	return &handler{
		service: catalogService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.allProductsHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	router.Post(
		"/products",
		handlerutils.MakeHandler(
			h.createProductHandler,
		),
	)

	router.Put(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.updateProductHandler,
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
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

	product, err := h.service.CreateProduct(ctx, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	var payload *UpdateProductRequest
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

	product, err := h.service.UpdateProduct(ctx, productID, payload)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		product,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) allProductsHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		h.service.AllProducts(r.Context()),
	)
}
