package inventory

import (
	"context"
	"net/http"
	"strconv"

	"github.com/juniper-commerce/marketplace-backend/internal/handlerutils"
	"github.com/juniper-commerce/marketplace-backend/internal/middlewares"
	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	CheckStock(ctx context.Context, productID, vendorID uuid.UUID, qty int) bool
	SetStock(ctx context.Context, productID, vendorID uuid.UUID, qty int)
	Reserve(ctx context.Context, productID, vendorID uuid.UUID, qty int) error
	Release(ctx context.Context, productID, vendorID uuid.UUID, qty int)
	CheckReorderLevel(ctx context.Context, productID, vendorID uuid.UUID)
	NotificationsFor(ctx context.Context, vendorID uuid.UUID) []string
	StocksByVendor(ctx context.Context, vendorID uuid.UUID) []StockRecord
	AllStock(ctx context.Context) []StockRecord
}

type middleware interface {
	RequireVendor(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(inventoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    inventoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/inventory",
		handlerutils.MakeHandler(
			h.allStockHandler,
		),
	)

	router.Get(
		"/inventory/check/{productID}/{vendorID}/{qty}",
		handlerutils.MakeHandler(
			h.checkStockHandler,
		),
	)

	router.Put(
		"/inventory/{productID}/{vendorID}/{qty}",
		handlerutils.MakeHandler(
			h.setStockHandler,
		),
	)

	router.Post(
		"/inventory/reserve/{productID}/{vendorID}/{qty}",
		handlerutils.MakeHandler(
			h.reserveStockHandler,
		),
	)

	router.Post(
		"/inventory/release/{productID}/{vendorID}/{qty}",
		handlerutils.MakeHandler(
			h.releaseStockHandler,
		),
	)

	// vendor-identity routes
	router.Get(
		"/inventory/notifications",
		handlerutils.MakeHandler(
			h.middleware.RequireVendor(
				h.vendorNotificationsHandler,
			),
		),
	)

	router.Get(
		"/inventory/vendor/stocks",
		handlerutils.MakeHandler(
			h.middleware.RequireVendor(
				h.vendorStocksHandler,
			),
		),
	)
}

func (h *handler) checkStockHandler(w http.ResponseWriter, r *http.Request) error {
	productID, vendorID, qty, err := stockParams(r)
	if err != nil {
		return err
	}

	if !h.service.CheckStock(r.Context(), productID, vendorID, qty) {
		return servererrors.ErrInsufficientStock
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock available",
		true,
	)
}

func (h *handler) setStockHandler(w http.ResponseWriter, r *http.Request) error {
	productID, vendorID, qty, err := stockParams(r)
	if err != nil {
		return err
	}

	h.service.SetStock(r.Context(), productID, vendorID, qty)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock updated",
		nil,
	)
}

func (h *handler) reserveStockHandler(w http.ResponseWriter, r *http.Request) error {
	productID, vendorID, qty, err := stockParams(r)
	if err != nil {
		return err
	}

	if err := h.service.Reserve(r.Context(), productID, vendorID, qty); err != nil {
		return err
	}

	h.service.CheckReorderLevel(r.Context(), productID, vendorID)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock reserved",
		nil,
	)
}

func (h *handler) releaseStockHandler(w http.ResponseWriter, r *http.Request) error {
	productID, vendorID, qty, err := stockParams(r)
	if err != nil {
		return err
	}

	h.service.Release(r.Context(), productID, vendorID, qty)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock released",
		nil,
	)
}

func (h *handler) vendorNotificationsHandler(w http.ResponseWriter, r *http.Request) error {
	vendorID := middlewares.VendorIDFromContext(r.Context())

	notifications := h.service.NotificationsFor(r.Context(), vendorID)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"notifications retrieved",
		notifications,
	)
}

func (h *handler) vendorStocksHandler(w http.ResponseWriter, r *http.Request) error {
	vendorID := middlewares.VendorIDFromContext(r.Context())

	stocks := h.service.StocksByVendor(r.Context(), vendorID)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"stock records retrieved",
		stocks,
	)
}

func (h *handler) allStockHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all stock records retrieved",
		h.service.AllStock(r.Context()),
	)
}

func stockParams(r *http.Request) (productID, vendorID uuid.UUID, qty int, err error) {
	productID, err = uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, 0, servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	vendorID, err = uuid.Parse(chi.URLParam(r, "vendorID"))
	if err != nil {
		return uuid.Nil, uuid.Nil, 0, servererrors.New(
			http.StatusBadRequest,
			"invalid vendor id",
			nil,
		)
	}

	qty, err = strconv.Atoi(chi.URLParam(r, "qty"))
	if err != nil || qty <= 0 {
		return uuid.Nil, uuid.Nil, 0, servererrors.ErrInvalidQuantity
	}

	return productID, vendorID, qty, nil
}
