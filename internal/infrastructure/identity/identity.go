package identity

import (
	"context"
	"errors"
)

var ErrAccountNotFound = errors.New("identity account not found")

// Account is the provider-side view of a user.
type Account struct {
	UID         string
	Phone       string
	Email       string
	DisplayName string
}

// CreateParams carries the attributes for a new provider account. Empty
// fields are omitted from the provider call.
type CreateParams struct {
	Phone       string
	Email       string
	Password    string
	DisplayName string
}

// Client is the identity-provider contract. Verification failures carry
// the provider's diagnostic message; implementations must never echo the
// credential itself.
type Client interface {
	// VerifyToken validates a bearer credential and returns the
	// provider-assigned uid.
	VerifyToken(ctx context.Context, token string) (string, error)
	// Account fetches the provider profile for a uid.
	Account(ctx context.Context, uid string) (*Account, error)
	AccountByPhone(ctx context.Context, phone string) (*Account, error)
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	CreateAccount(ctx context.Context, params CreateParams) (*Account, error)
	UpdatePassword(ctx context.Context, uid, password string) error
	// DeleteAccount revokes the provider account for a uid.
	DeleteAccount(ctx context.Context, uid string) error
	// CustomToken mints a short-lived assertion for a uid that can be
	// exchanged for a bearer credential.
	CustomToken(ctx context.Context, uid string) (string, error)
}

// TokenExchanger swaps a server-minted assertion for a caller-facing
// bearer credential at the provider's token endpoint.
type TokenExchanger interface {
	Exchange(ctx context.Context, customToken string) (string, error)
}
