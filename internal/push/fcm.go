// Package push holds the domain.PushGateway drivers.
package push

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

// maxMulticastTokens is the FCM limit per multicast request.
const maxMulticastTokens = 500

// FCM sends through Firebase Cloud Messaging.
type FCM struct {
	client *messaging.Client
	log    *zap.Logger
}

func NewFCM(client *messaging.Client, l *zap.Logger) *FCM { return &FCM{client: client, log: l} }

func (f *FCM) Send(ctx context.Context, token string, p domain.PushPayload) error {
	id, err := f.client.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Data:         p.Data(),
	})
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	f.log.Debug("fcm sent", zap.String("message_id", id))
	return nil
}

// SendMulticast splits tokens into chunks of the FCM limit. Per-token
// failures are counted, not returned; the error reports a failed request.
func (f *FCM) SendMulticast(ctx context.Context, tokens []string, p domain.PushPayload) (int, error) {
	ok := 0
	for _, chunk := range chunks(tokens, maxMulticastTokens) {
		br, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       chunk,
			Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
			Data:         p.Data(),
		})
		if err != nil {
			return ok, fmt.Errorf("fcm multicast: %w", err)
		}
		ok += br.SuccessCount
		if br.FailureCount > 0 {
			f.log.Warn("fcm multicast partial failure",
				zap.Int("failed", br.FailureCount), zap.Int("sent", br.SuccessCount))
		}
	}
	return ok, nil
}

func chunks(s []string, n int) [][]string {
	var out [][]string
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	if len(s) > 0 {
		out = append(out, s)
	}
	return out
}
