package notify

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"paroquia-backend/internal/domain"
)

// TokenMemo caches push tokens by uid for a single job run. Create one per
// run; it must not outlive the invocation that built it.
type TokenMemo struct {
	users domain.DirectoryStore

	mu     sync.Mutex
	tokens map[string]string
	sf     singleflight.Group
}

func NewTokenMemo(users domain.DirectoryStore) *TokenMemo {
	return &TokenMemo{users: users, tokens: make(map[string]string)}
}

// Token returns uid's push token, "" when the user has none or no record.
// Concurrent lookups of the same uid share one directory read.
func (m *TokenMemo) Token(ctx context.Context, uid string) (string, error) {
	m.mu.Lock()
	t, ok := m.tokens[uid]
	m.mu.Unlock()
	if ok {
		return t, nil
	}

	v, err, _ := m.sf.Do(uid, func() (any, error) {
		m.mu.Lock()
		t, ok := m.tokens[uid]
		m.mu.Unlock()
		if ok {
			return t, nil
		}
		u, err := m.users.Get(ctx, uid)
		token := ""
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return "", err
		default:
			token = u.FCMToken
		}
		m.mu.Lock()
		m.tokens[uid] = token
		m.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len is the number of distinct users resolved so far.
func (m *TokenMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}
