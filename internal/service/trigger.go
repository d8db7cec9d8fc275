package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

// Claimer records that a key has been handled. Claim returns false when the
// key was already claimed within ttl.
type Claimer interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// EventoTrigger runs the evento fan-out at most once per evento id while the
// claim is retained. With no claimer, every delivery is processed.
type EventoTrigger struct {
	b      *Broadcaster
	claims Claimer
	ttl    time.Duration
	log    *zap.Logger
}

func NewEventoTrigger(b *Broadcaster, claims Claimer, ttl time.Duration, l *zap.Logger) *EventoTrigger {
	return &EventoTrigger{b: b, claims: claims, ttl: ttl, log: l}
}

func (t *EventoTrigger) Handle(ctx context.Context, ev domain.EventoCreated) {
	if t.claims != nil && ev.ID != "" {
		ok, err := t.claims.Claim(ctx, "evento.created:"+ev.ID, t.ttl)
		switch {
		case err != nil:
			t.log.Warn("dedupe unavailable, processing anyway", zap.String("evento", ev.ID), zap.Error(err))
		case !ok:
			t.log.Info("duplicate evento.created ignored", zap.String("evento", ev.ID))
			return
		}
	}
	t.b.OnEventoCreated(ctx, ev)
}
