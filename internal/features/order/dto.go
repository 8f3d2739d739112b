package order

// Requests

type OrderItemRequest struct {
	ProductID string `json:"productID" validate:"required,uuid"`
	VendorID  string `json:"vendorID" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ProcessCancellationRequest struct {
	Action string `json:"action" validate:"required"`
}
