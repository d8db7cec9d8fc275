// Package identity holds the identity provider drivers: Firebase Auth and a
// self-hosted account table.
package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"paroquia-backend/internal/domain"
)

type Firebase struct {
	client *auth.Client
}

func NewFirebase(client *auth.Client) *Firebase { return &Firebase{client: client} }

func (f *Firebase) CreateAccount(ctx context.Context, a domain.NewAccount) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(a.Email).
		Password(a.Password).
		DisplayName(a.DisplayName).
		EmailVerified(a.EmailVerified)
	u, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("firebase create user: %w", err)
	}
	return u.UID, nil
}

func (f *Firebase) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := f.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Disabled(disabled))
	return mapAuthErr(err)
}

func (f *Firebase) DeleteAccount(ctx context.Context, uid string) error {
	return mapAuthErr(f.client.DeleteUser(ctx, uid))
}

func (f *Firebase) VerifyToken(ctx context.Context, token string) (string, error) {
	t, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return t.UID, nil
}

func mapAuthErr(err error) error {
	switch {
	case err == nil:
		return nil
	case auth.IsUserNotFound(err):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	default:
		return err
	}
}
