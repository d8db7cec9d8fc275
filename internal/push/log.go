package push

import (
	"context"

	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

// Log only writes pushes to the logger. Used in local development.
type Log struct{ l *zap.Logger }

func NewLog(l *zap.Logger) *Log { return &Log{l: l.Named("push")} }

func (g *Log) Send(_ context.Context, token string, p domain.PushPayload) error {
	g.l.Info("push", zap.String("token", mask(token)), zap.String("title", p.Title), zap.Any("data", p.Data()))
	return nil
}

func (g *Log) SendMulticast(_ context.Context, tokens []string, p domain.PushPayload) (int, error) {
	g.l.Info("push multicast", zap.Int("tokens", len(tokens)), zap.String("title", p.Title), zap.Any("data", p.Data()))
	return len(tokens), nil
}

func mask(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
