package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/notify"
)

// Broadcaster sends a notification to the whole non-admin user base.
type Broadcaster struct {
	guard  *AdminGuard
	dir    domain.DirectoryStore
	engine *notify.Engine
	log    *zap.Logger
}

func NewBroadcaster(guard *AdminGuard, dir domain.DirectoryStore, engine *notify.Engine, l *zap.Logger) *Broadcaster {
	return &Broadcaster{guard: guard, dir: dir, engine: engine, log: l}
}

func (b *Broadcaster) broadcast(ctx context.Context, m notify.Message) (notify.Result, error) {
	users, err := b.dir.List(ctx)
	if err != nil {
		return notify.Result{}, fmt.Errorf("list users: %w", err)
	}
	return b.engine.Broadcast(ctx, users, notify.Compose(m))
}

// NotifyMonthlyAgenda announces that the missas of a month are available.
func (b *Broadcaster) NotifyMonthlyAgenda(ctx context.Context, caller, month string, year int) (string, error) {
	if err := b.guard.Check(ctx, caller); err != nil {
		return "", err
	}
	month = strings.TrimSpace(month)
	if month == "" || year <= 0 {
		return "", domain.InvalidArgument("Mês e Ano são obrigatórios.")
	}

	b.log.Info("monthly agenda notification", zap.String("mes", month), zap.Int("ano", year))
	res, err := b.broadcast(ctx, notify.MonthlyAgenda{Month: month, Year: year})
	if err != nil {
		b.log.Error("notify monthly agenda", zap.Error(err))
		return "", domain.Internal("Erro ao processar envio.", err)
	}
	if res.Attempted == 0 {
		return "Nenhum usuário para notificar.", nil
	}
	return fmt.Sprintf("Notificação enviada para %d usuários.", res.Attempted), nil
}

// OnEventoCreated is the reactive entry point for a new public evento.
// Failures are logged and swallowed so the trigger is never retried.
func (b *Broadcaster) OnEventoCreated(ctx context.Context, ev domain.EventoCreated) {
	m := notify.NewEvent{Title: ev.Titulo, Location: ev.Local, EventID: ev.ID}
	b.log.Info("new evento, sending notifications", zap.String("evento", ev.ID), zap.String("titulo", ev.Titulo))
	res, err := b.broadcast(ctx, m)
	if err != nil {
		b.log.Error("evento notifications failed", zap.String("evento", ev.ID), zap.Error(err))
		return
	}
	b.log.Info("evento notifications done",
		zap.String("evento", ev.ID),
		zap.Int("notified", res.Notified),
		zap.Int("pushed", res.Attempted),
	)
}
