package transport

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ConfirmEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type PropertyRequest struct {
	ID        string  `json:"id"`
	Address   string  `json:"address" validate:"required"`
	Rent      float64 `json:"rent" validate:"required,gt=0"`
	Bedrooms  int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms float64 `json:"bathrooms" validate:"gte=0"`
	Status    string  `json:"status" validate:"omitempty,oneof=occupied vacant"`
	TenantID  *string `json:"tenant_id"`
}

type TenantRequest struct {
	ID         string  `json:"id"`
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required"`
	MoveInDate string  `json:"move_in_date" validate:"required"`
	PropertyID *string `json:"property_id"`
}

type AssignRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
}

type PaymentRequest struct {
	TenantID   string  `json:"tenant_id" validate:"required"`
	PropertyID string  `json:"property_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required"`
}
