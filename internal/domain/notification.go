package domain

import (
	"context"
	"time"
)

type NotificationKind string

const (
	KindEvento      NotificationKind = "evento"
	KindMissa       NotificationKind = "missa"
	KindAvisoAgenda NotificationKind = "aviso_agenda"
)

// Notification is one entry of a user's `notificacoes` sub-collection.
// Data is assigned by the store on write.
type Notification struct {
	ID         string           `json:"id"`
	UserID     string           `json:"-"`
	Titulo     string           `json:"titulo"`
	Corpo      string           `json:"corpo"`
	Data       time.Time        `json:"data"`
	Lida       bool             `json:"lida"`
	Tipo       NotificationKind `json:"tipo"`
	DocumentID *string          `json:"documentId"`
}

type NotificationStore interface {
	Add(ctx context.Context, n *Notification) error
}

const clickAction = "FLUTTER_NOTIFICATION_CLICK"

// PushPayload is built per send and never stored.
type PushPayload struct {
	Title    string
	Body     string
	Screen   string
	EntityID string
}

// Data is the key/value map delivered alongside the notification.
func (p PushPayload) Data() map[string]string {
	d := map[string]string{
		"click_action": clickAction,
		"screen":       p.Screen,
	}
	if p.EntityID != "" {
		d["id"] = p.EntityID
	}
	return d
}

// PushGateway delivers push messages; delivery receipts are not tracked.
type PushGateway interface {
	Send(ctx context.Context, token string, p PushPayload) error
	// SendMulticast returns the number of tokens the gateway accepted.
	SendMulticast(ctx context.Context, tokens []string, p PushPayload) (int, error)
}
