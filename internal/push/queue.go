package push

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

// Job is one push request on the relay queue.
type Job struct {
	Tokens    []string `json:"tokens"`
	Multicast bool     `json:"multicast"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Screen    string   `json:"screen"`
	EntityID  string   `json:"entityId,omitempty"`
}

func (j Job) payload() domain.PushPayload {
	return domain.PushPayload{Title: j.Title, Body: j.Body, Screen: j.Screen, EntityID: j.EntityID}
}

func newJob(tokens []string, multicast bool, p domain.PushPayload) Job {
	return Job{Tokens: tokens, Multicast: multicast, Title: p.Title, Body: p.Body, Screen: p.Screen, EntityID: p.EntityID}
}

type JSONPublisher interface {
	PublishJSON(ctx context.Context, queue string, v any) error
}

// Queued hands pushes to the relay queue. SendMulticast reports every token
// as accepted once the job is enqueued.
type Queued struct {
	pub   JSONPublisher
	queue string
}

func NewQueued(pub JSONPublisher, queue string) *Queued { return &Queued{pub: pub, queue: queue} }

func (q *Queued) Send(ctx context.Context, token string, p domain.PushPayload) error {
	return q.pub.PublishJSON(ctx, q.queue, newJob([]string{token}, false, p))
}

func (q *Queued) SendMulticast(ctx context.Context, tokens []string, p domain.PushPayload) (int, error) {
	if err := q.pub.PublishJSON(ctx, q.queue, newJob(tokens, true, p)); err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// Relay delivers queued jobs through target. A failed single send is logged
// and acknowledged; there is no retry.
func Relay(target domain.PushGateway, l *zap.Logger) func(ctx context.Context, j Job) error {
	return func(ctx context.Context, j Job) error {
		if len(j.Tokens) == 0 {
			return fmt.Errorf("push job without tokens")
		}
		if !j.Multicast {
			if err := target.Send(ctx, j.Tokens[0], j.payload()); err != nil {
				l.Warn("relay send failed", zap.Error(err))
			}
			return nil
		}
		ok, err := target.SendMulticast(ctx, j.Tokens, j.payload())
		if err != nil {
			l.Warn("relay multicast failed", zap.Int("tokens", len(j.Tokens)), zap.Error(err))
			return nil
		}
		l.Info("relay multicast", zap.Int("tokens", len(j.Tokens)), zap.Int("accepted", ok))
		return nil
	}
}
