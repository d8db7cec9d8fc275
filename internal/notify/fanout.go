package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"paroquia-backend/internal/domain"
)

// Result counts one fan-out. Attempted is the number of push tokens handed to
// the gateway, Delivered the number it accepted.
type Result struct {
	Notified  int `json:"notified"`
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
}

type Engine struct {
	notes domain.NotificationStore
	push  domain.PushGateway
	log   *zap.Logger
	limit int
}

// NewEngine builds a fan-out engine. limit bounds concurrent record writes;
// values <= 0 mean unbounded.
func NewEngine(notes domain.NotificationStore, push domain.PushGateway, l *zap.Logger, limit int) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	return &Engine{notes: notes, push: push, log: l, limit: limit}
}

// Broadcast writes c.Record for every non-admin user, then sends one multicast
// push to those holding a token. A failed write aborts before any push; writes
// already issued for other users stay in place.
func (e *Engine) Broadcast(ctx context.Context, users []domain.UserRecord, c Composed) (Result, error) {
	recipients := make([]domain.UserRecord, 0, len(users))
	for _, u := range users {
		if u.IsAdmin() {
			continue
		}
		recipients = append(recipients, u)
	}

	// 1) records
	var g errgroup.Group
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for _, u := range recipients {
		n := c.Record
		n.UserID = u.ID
		g.Go(func() error {
			if err := e.notes.Add(ctx, &n); err != nil {
				return fmt.Errorf("save notification for %s: %w", n.UserID, err)
			}
			notificationsPersisted.WithLabelValues(string(n.Tipo)).Inc()
			return nil
		})
	}
	e.log.Info("saving notification records", zap.Int("count", len(recipients)), zap.String("tipo", string(c.Record.Tipo)))
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	res := Result{Notified: len(recipients)}

	// 2) push
	if c.Push == nil {
		return res, nil
	}
	tokens := make([]string, 0, len(recipients))
	for _, u := range recipients {
		if u.FCMToken != "" {
			tokens = append(tokens, u.FCMToken)
		}
	}
	if len(tokens) == 0 {
		e.log.Info("no eligible push recipients", zap.String("tipo", string(c.Record.Tipo)))
		return res, nil
	}
	res.Attempted = len(tokens)
	ok, err := e.push.SendMulticast(ctx, tokens, *c.Push)
	if err != nil {
		pushTokens.WithLabelValues("multicast", "error").Add(float64(len(tokens)))
		return res, fmt.Errorf("multicast push: %w", err)
	}
	res.Delivered = ok
	pushTokens.WithLabelValues("multicast", "ok").Add(float64(ok))
	pushTokens.WithLabelValues("multicast", "rejected").Add(float64(len(tokens) - ok))
	e.log.Info("push multicast sent", zap.Int("tokens", len(tokens)), zap.Int("accepted", ok))
	return res, nil
}

// NotifyOne writes c.Record for uid and, if the user has a token, sends one
// push. Admins are not filtered here. It reports whether a push was sent.
func (e *Engine) NotifyOne(ctx context.Context, uid string, c Composed, tokens *TokenMemo) (bool, error) {
	token, err := tokens.Token(ctx, uid)
	if err != nil {
		return false, fmt.Errorf("resolve token: %w", err)
	}

	n := c.Record
	n.UserID = uid
	if err := e.notes.Add(ctx, &n); err != nil {
		return false, fmt.Errorf("save notification: %w", err)
	}
	notificationsPersisted.WithLabelValues(string(n.Tipo)).Inc()

	if token == "" || c.Push == nil {
		return false, nil
	}
	if err := e.push.Send(ctx, token, *c.Push); err != nil {
		pushTokens.WithLabelValues("single", "error").Inc()
		return false, fmt.Errorf("send push: %w", err)
	}
	pushTokens.WithLabelValues("single", "ok").Inc()
	return true, nil
}
