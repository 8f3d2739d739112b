package catalog

// Requests

type CreateProductRequest struct {
	VendorID    string  `json:"vendorID" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=60,noAllRepeatingChars"`
	Description string  `json:"description" validate:"required,min=15,max=350,noAllRepeatingChars"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=60,noAllRepeatingChars"`
	Description *string  `json:"description" validate:"omitempty,min=15,max=350,noAllRepeatingChars"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}
