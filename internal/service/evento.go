package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

type EventoService struct {
	guard  *AdminGuard
	store  domain.EventoStore
	events domain.EventoPublisher
	log    *zap.Logger
}

func NewEventoService(guard *AdminGuard, store domain.EventoStore, events domain.EventoPublisher, l *zap.Logger) *EventoService {
	return &EventoService{guard: guard, store: store, events: events, log: l}
}

type CreateEventoInput struct {
	Titulo   string
	Local    string
	DataHora *time.Time
}

// Create stores a public evento and raises its creation trigger. A failed
// publish is logged; the evento stays created.
func (s *EventoService) Create(ctx context.Context, caller string, in CreateEventoInput) (*domain.Evento, error) {
	if err := s.guard.Check(ctx, caller); err != nil {
		return nil, err
	}
	ev := &domain.Evento{
		Titulo:   strings.TrimSpace(in.Titulo),
		Local:    strings.TrimSpace(in.Local),
		DataHora: in.DataHora,
	}
	if ev.Titulo == "" {
		return nil, domain.InvalidArgument("O título do evento é obrigatório.")
	}
	if err := s.store.Create(ctx, ev); err != nil {
		s.log.Error("create evento", zap.Error(err))
		return nil, domain.Internal("Ocorreu um erro ao criar o evento.", err)
	}
	msg := domain.EventoCreated{ID: ev.ID, Titulo: ev.Titulo, Local: ev.Local}
	if err := s.events.PublishEventoCreated(ctx, msg); err != nil {
		s.log.Error("publish evento.created", zap.String("evento", ev.ID), zap.Error(err))
	}
	return ev, nil
}
