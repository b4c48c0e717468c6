package dto

// RegisterSupervisorRequest registers a supervisor account. Password is
// optional: phone-first deployments authenticate through the reset-code
// flow instead.
type RegisterSupervisorRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// LoginRequest accepts a phone number (with +country prefix) or an email
// address as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type ResetRequestRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

type ResetVerifyRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
