package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UserRecord is the directory entry mirrored from the identity provider.
// ID is the identity provider's uid.
type UserRecord struct {
	ID                string    `json:"id"`
	Nome              string    `json:"nome"`
	Email             string    `json:"email"`
	Role              Role      `json:"role"`
	Ativo             bool      `json:"ativo"`
	FCMToken          string    `json:"fcmToken,omitempty"`
	Categorias        []string  `json:"categorias,omitempty"`
	IDGrupoMusical    *string   `json:"idGrupoMusical"`
	IDGrupoCoordenado *string   `json:"idGrupoCoordenado"`
	CriadoEm          time.Time `json:"criadoEm"`
}

func (u UserRecord) IsAdmin() bool { return u.Role == RoleAdmin }

// DirectoryStore is the `usuarios` collection.
type DirectoryStore interface {
	// Get returns ErrNotFound when no record exists.
	Get(ctx context.Context, uid string) (*UserRecord, error)
	List(ctx context.Context) ([]UserRecord, error)
	Create(ctx context.Context, u *UserRecord) error
	// SetActive returns ErrNotFound when no record exists.
	SetActive(ctx context.Context, uid string, active bool) error
	// Delete succeeds when the record is already gone.
	Delete(ctx context.Context, uid string) error
}
