package account

// Requests

type CreateAccountRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=60"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=customer vendor admin"`
}

type AddVendorRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=350"`
}
