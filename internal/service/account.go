package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

const msgTargetRequired = "O UID do usuário alvo é necessário."

// AccountService administers identities and their mirrored directory records.
type AccountService struct {
	guard  *AdminGuard
	ids    domain.IdentityProvider
	dir    domain.DirectoryStore
	roster domain.RosterStore
	log    *zap.Logger
	now    func() time.Time
}

func NewAccountService(guard *AdminGuard, ids domain.IdentityProvider, dir domain.DirectoryStore,
	roster domain.RosterStore, l *zap.Logger) *AccountService {
	return &AccountService{guard: guard, ids: ids, dir: dir, roster: roster, log: l, now: time.Now}
}

func (s *AccountService) Enable(ctx context.Context, caller, target string) error {
	if err := s.authorize(ctx, caller, target); err != nil {
		return err
	}
	_, err := RunSteps(ctx, s.log,
		Step{Name: "identity.enable", Run: func(ctx context.Context) error {
			return s.ids.SetDisabled(ctx, target, false)
		}},
		Step{Name: "directory.activate", Run: func(ctx context.Context) error {
			return s.dir.SetActive(ctx, target, true)
		}},
	)
	if err != nil {
		s.log.Error("enable user", zap.String("target", target), zap.Error(err))
		return domain.Internal("Ocorreu um erro ao ativar o usuário.", err)
	}
	s.log.Info("user enabled", zap.String("target", target), zap.String("by", caller))
	return nil
}

// Disable treats an identity that no longer exists as already disabled.
func (s *AccountService) Disable(ctx context.Context, caller, target string) error {
	if err := s.authorize(ctx, caller, target); err != nil {
		return err
	}
	_, err := RunSteps(ctx, s.log,
		Step{Name: "identity.disable", Tolerate: notFound, Run: func(ctx context.Context) error {
			return s.ids.SetDisabled(ctx, target, true)
		}},
		Step{Name: "directory.deactivate", Run: func(ctx context.Context) error {
			return s.dir.SetActive(ctx, target, false)
		}},
	)
	if err != nil {
		s.log.Error("disable user", zap.String("target", target), zap.Error(err))
		return domain.Internal("Ocorreu um erro ao desativar o usuário.", err)
	}
	s.log.Info("user disabled", zap.String("target", target), zap.String("by", caller))
	return nil
}

// Delete unassigns target from every missa at or after now, then removes the
// identity and the directory record. Past missas keep their assignments.
func (s *AccountService) Delete(ctx context.Context, caller, target string) error {
	if err := s.authorize(ctx, caller, target); err != nil {
		return err
	}

	s.log.Info("cleaning roster assignments", zap.String("target", target))
	missas, err := s.roster.ListFrom(ctx, s.now())
	if err != nil {
		s.log.Error("list future missas", zap.String("target", target), zap.Error(err))
		return domain.Internal("Ocorreu um erro ao deletar o usuário.", err)
	}

	var steps []Step
	for _, m := range missas {
		slots := m.SlotsHeldBy(target)
		if len(slots) == 0 {
			continue
		}
		s.log.Info("scheduling slot cleanup", zap.String("missa", m.ID), zap.Strings("slots", slots))
		id := m.ID
		steps = append(steps, Step{Name: "roster.clear:" + id, Run: func(ctx context.Context) error {
			return s.roster.ClearSlots(ctx, id, target, slots)
		}})
	}
	steps = append(steps,
		Step{Name: "identity.delete", Tolerate: notFound, Run: func(ctx context.Context) error {
			return s.ids.DeleteAccount(ctx, target)
		}},
		Step{Name: "directory.delete", Run: func(ctx context.Context) error {
			return s.dir.Delete(ctx, target)
		}},
	)

	if _, err := RunSteps(ctx, s.log, steps...); err != nil {
		s.log.Error("delete user", zap.String("target", target), zap.Error(err))
		return domain.Internal("Ocorreu um erro ao deletar o usuário.", err)
	}
	s.log.Info("user deleted", zap.String("target", target), zap.Int("missas_cleaned", len(steps)-2))
	return nil
}

type CreateUserInput struct {
	Email             string
	Password          string
	Name              string
	Categories        []string
	IDGrupoMusical    string
	IDGrupoCoordenado string
}

// Create registers a new identity and then its directory record with role user.
// A failure between the two leaves the identity without a record.
func (s *AccountService) Create(ctx context.Context, caller string, in CreateUserInput) (string, error) {
	if err := s.guard.Check(ctx, caller); err != nil {
		return "", err
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return "", domain.InvalidArgument("Email, senha e nome são obrigatórios.")
	}

	uid, err := s.ids.CreateAccount(ctx, domain.NewAccount{
		Email:         in.Email,
		Password:      in.Password,
		DisplayName:   in.Name,
		EmailVerified: false,
	})
	if err != nil {
		s.log.Error("create identity", zap.String("email", in.Email), zap.Error(err))
		return "", domain.Internal("Ocorreu um erro ao criar o usuário.", err)
	}

	rec := &domain.UserRecord{
		ID:                uid,
		Nome:              in.Name,
		Email:             in.Email,
		Role:              domain.RoleUser,
		Categorias:        in.Categories,
		Ativo:             true,
		IDGrupoMusical:    optional(in.IDGrupoMusical),
		IDGrupoCoordenado: optional(in.IDGrupoCoordenado),
	}
	if err := s.dir.Create(ctx, rec); err != nil {
		s.log.Error("create directory record; identity left without record",
			zap.String("uid", uid), zap.String("email", in.Email), zap.Error(err))
		return "", domain.Internal("Ocorreu um erro ao criar o usuário.", err)
	}
	s.log.Info("user created", zap.String("uid", uid), zap.String("by", caller))
	return uid, nil
}

func (s *AccountService) authorize(ctx context.Context, caller, target string) error {
	if err := s.guard.Check(ctx, caller); err != nil {
		return err
	}
	if strings.TrimSpace(target) == "" {
		return domain.InvalidArgument(msgTargetRequired)
	}
	return nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
