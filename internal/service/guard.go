package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

const msgAdminOnly = "Ação permitida apenas para administradores."

// AdminGuard authorizes request operations against the caller's directory role.
type AdminGuard struct {
	dir domain.DirectoryStore
	log *zap.Logger
}

func NewAdminGuard(dir domain.DirectoryStore, l *zap.Logger) *AdminGuard {
	return &AdminGuard{dir: dir, log: l}
}

// Check fails with unauthenticated for an empty caller and permission-denied
// when the caller has no record or is not an admin.
func (g *AdminGuard) Check(ctx context.Context, callerUID string) error {
	if callerUID == "" {
		return domain.Unauthenticated("Você precisa estar logado para realizar esta ação.")
	}
	u, err := g.dir.Get(ctx, callerUID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.PermissionDenied(msgAdminOnly)
	case err != nil:
		g.log.Error("read caller record", zap.String("uid", callerUID), zap.Error(err))
		return domain.Internal("Erro ao verificar permissões.", err)
	}
	if !u.IsAdmin() {
		return domain.PermissionDenied(msgAdminOnly)
	}
	return nil
}
