package order

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
	CreateOrder(ctx context.Context, customerID uuid.UUID, newItems []NewItem) (Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (Order, error)
	AllOrders(ctx context.Context) []Order
	OrdersByCustomer(ctx context.Context, customerID uuid.UUID) []Order
	OrdersByVendor(ctx context.Context, vendorID uuid.UUID) []Order
	ItemsByVendor(ctx context.Context, vendorID uuid.UUID) []Item
	CancellationRequests(ctx context.Context) []Order
	UpdateItems(ctx context.Context, orderID uuid.UUID, newItems []NewItem) (Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) (Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (Order, error)
	RequestCancellation(ctx context.Context, orderID uuid.UUID) (Order, error)
	ProcessCancellation(ctx context.Context, orderID uuid.UUID, action CancellationAction) (Order, error)
	MarkItemDelivered(ctx context.Context, orderID, vendorID, productID uuid.UUID) (Order, error)
}

type middleware interface {
	RequireCustomer(h handlerutils.APIHandler) handlerutils.APIHandler
	RequireVendor(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/orders",
		handlerutils.MakeHandler(
			h.allOrdersHandler,
		),
	)

	router.Get(
		"/orders/cancellation-requests",
		handlerutils.MakeHandler(
			h.cancellationRequestsHandler,
		),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.getOrderHandler,
		),
	)

	router.Put(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.updateOrderHandler,
		),
	)

	router.Delete(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.cancelOrderHandler,
		),
	)

	router.Put(
		"/orders/{orderID}/status",
		handlerutils.MakeHandler(
			h.updateOrderStatusHandler,
		),
	)

	router.Post(
		"/orders/{orderID}/cancel-request",
		handlerutils.MakeHandler(
			h.requestCancellationHandler,
		),
	)

	router.Put(
		"/orders/{orderID}/cancel-process",
		handlerutils.MakeHandler(
			h.processCancellationHandler,
		),
	)

	// customer-identity routes
	router.Post(
		"/orders",
		handlerutils.MakeHandler(
			h.middleware.RequireCustomer(
				h.createOrderHandler,
			),
		),
	)

	router.Get(
		"/orders/history",
		handlerutils.MakeHandler(
			h.middleware.RequireCustomer(
				h.orderHistoryHandler,
			),
		),
	)

	// vendor-identity routes
	router.Get(
		"/orders/vendor/orders",
		handlerutils.MakeHandler(
			h.middleware.RequireVendor(
				h.vendorOrdersHandler,
			),
		),
	)

	router.Get(
		"/orders/vendor/items",
		handlerutils.MakeHandler(
			h.middleware.RequireVendor(
				h.vendorItemsHandler,
			),
		),
	)

	router.Put(
		"/orders/{orderID}/vendor/deliver/{productID}",
		handlerutils.MakeHandler(
			h.middleware.RequireVendor(
				h.markItemDeliveredHandler,
			),
		),
	)
}

func (h *handler) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateOrderRequest
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

	newItems, err := toNewItems(payload.Items)
	if err != nil {
		return err
	}

	customerID := middlewares.CustomerIDFromContext(ctx)

	order, err := h.service.CreateOrder(ctx, customerID, newItems)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order created",
		order,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order retrieved",
		order,
	)
}

func (h *handler) allOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"orders retrieved",
		h.service.AllOrders(r.Context()),
	)
}

func (h *handler) orderHistoryHandler(w http.ResponseWriter, r *http.Request) error {
	customerID := middlewares.CustomerIDFromContext(r.Context())

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"orders retrieved",
		h.service.OrdersByCustomer(r.Context(), customerID),
	)
}

func (h *handler) vendorOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	vendorID := middlewares.VendorIDFromContext(r.Context())

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"orders retrieved",
		h.service.OrdersByVendor(r.Context(), vendorID),
	)
}

func (h *handler) vendorItemsHandler(w http.ResponseWriter, r *http.Request) error {
	vendorID := middlewares.VendorIDFromContext(r.Context())

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order items retrieved",
		h.service.ItemsByVendor(r.Context(), vendorID),
	)
}

func (h *handler) cancellationRequestsHandler(w http.ResponseWriter, r *http.Request) error {
	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cancellation requests retrieved",
		h.service.CancellationRequests(r.Context()),
	)
}

func (h *handler) updateOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	var payload *UpdateOrderRequest
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

	newItems, err := toNewItems(payload.Items)
	if err != nil {
		return err
	}

	order, err := h.service.UpdateItems(r.Context(), orderID, newItems)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order updated",
		order,
	)
}

func (h *handler) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	var payload *UpdateOrderStatusRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	newStatus, err := ParseStatus(payload.Status)
	if err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, newStatus)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order status updated",
		order,
	)
}

func (h *handler) cancelOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	order, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order cancelled",
		order,
	)
}

func (h *handler) requestCancellationHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	order, err := h.service.RequestCancellation(r.Context(), orderID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cancellation requested",
		order,
	)
}

func (h *handler) processCancellationHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	var payload *ProcessCancellationRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	action, err := ParseCancellationAction(payload.Action)
	if err != nil {
		return err
	}

	order, err := h.service.ProcessCancellation(r.Context(), orderID, action)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cancellation processed",
		order,
	)
}

func (h *handler) markItemDeliveredHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := orderIDParam(r)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	vendorID := middlewares.VendorIDFromContext(r.Context())

	order, err := h.service.MarkItemDelivered(r.Context(), orderID, vendorID, productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order item marked as delivered",
		order,
	)
}

func orderIDParam(r *http.Request) (uuid.UUID, error) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return uuid.Nil, servererrors.New(
			http.StatusBadRequest,
			"invalid order id",
			nil,
		)
	}

	return orderID, nil
}

func toNewItems(itemRequests []OrderItemRequest) ([]NewItem, error) {
	newItems := make([]NewItem, 0, len(itemRequests))
	for _, itemRequest := range itemRequests {
		productID, err := uuid.Parse(itemRequest.ProductID)
		if err != nil {
			return nil, servererrors.New(
				http.StatusUnprocessableEntity,
				"invalid product id in order items",
				nil,
			)
		}

		vendorID, err := uuid.Parse(itemRequest.VendorID)
		if err != nil {
			return nil, servererrors.New(
				http.StatusUnprocessableEntity,
				"invalid vendor id in order items",
				nil,
			)
		}

		newItems = append(newItems, NewItem{
			ProductID: productID,
			VendorID:  vendorID,
			Quantity:  itemRequest.Quantity,
		})
	}

	return newItems, nil
}
