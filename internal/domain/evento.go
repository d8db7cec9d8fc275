package domain

import (
	"context"
	"time"
)

// Evento is a public parish event.
type Evento struct {
	ID       string     `json:"id"`
	Titulo   string     `json:"titulo"`
	Local    string     `json:"local"`
	DataHora *time.Time `json:"dataHora,omitempty"`
	CriadoEm time.Time  `json:"criadoEm"`
}

type EventoStore interface {
	Create(ctx context.Context, e *Evento) error
}

// EventoCreated is raised once per inserted evento.
type EventoCreated struct {
	ID     string `json:"id"`
	Titulo string `json:"titulo"`
	Local  string `json:"local"`
}

type EventoPublisher interface {
	PublishEventoCreated(ctx context.Context, ev EventoCreated) error
}
