package domain

import "context"

type NewAccount struct {
	Email         string
	Password      string
	DisplayName   string
	EmailVerified bool
}

// IdentityProvider is the account store behind authentication.
// SetDisabled and DeleteAccount return ErrNotFound for an unknown uid.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, a NewAccount) (uid string, err error)
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	DeleteAccount(ctx context.Context, uid string) error
}

// TokenVerifier resolves a caller's bearer token to a uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (uid string, err error)
}
