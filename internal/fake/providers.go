package fake

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"paroquia-backend/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity keeps accounts by uid and maps bearer tokens to uids.
type Identity struct {
	mu       sync.Mutex
	disabled map[string]bool
	tokens   map[string]string

	CreateErr  error
	DisableErr error
	DeleteErr  error

	Created []domain.NewAccount
	Calls   int
}

func NewIdentity(uids ...string) *Identity {
	id := &Identity{disabled: make(map[string]bool), tokens: make(map[string]string)}
	for _, uid := range uids {
		id.disabled[uid] = false
	}
	return id
}

// IssueToken registers token as a valid credential for uid.
func (p *Identity) IssueToken(token, uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = uid
}

func (p *Identity) VerifyToken(_ context.Context, token string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	uid, ok := p.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return uid, nil
}

func (p *Identity) CreateAccount(_ context.Context, a domain.NewAccount) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls++
	if p.CreateErr != nil {
		return "", p.CreateErr
	}
	uid := uuid.NewString()
	p.disabled[uid] = false
	p.Created = append(p.Created, a)
	return uid, nil
}

func (p *Identity) SetDisabled(_ context.Context, uid string, disabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls++
	if p.DisableErr != nil {
		return p.DisableErr
	}
	if _, ok := p.disabled[uid]; !ok {
		return domain.ErrNotFound
	}
	p.disabled[uid] = disabled
	return nil
}

func (p *Identity) DeleteAccount(_ context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls++
	if p.DeleteErr != nil {
		return p.DeleteErr
	}
	if _, ok := p.disabled[uid]; !ok {
		return domain.ErrNotFound
	}
	delete(p.disabled, uid)
	return nil
}

// Disabled reports (disabled, exists) for uid.
func (p *Identity) Disabled(uid string) (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.disabled[uid]
	return d, ok
}

type SentPush struct {
	Token   string
	Payload domain.PushPayload
}

type Multicast struct {
	Tokens  []string
	Payload domain.PushPayload
}

// Push records every send. SendErr and MulticastErr fail the matching call.
type Push struct {
	mu         sync.Mutex
	Sent       []SentPush
	Multicasts []Multicast

	SendErr      func(token string) error
	MulticastErr error
}

func (p *Push) Send(_ context.Context, token string, payload domain.PushPayload) error {
	if p.SendErr != nil {
		if err := p.SendErr(token); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, SentPush{Token: token, Payload: payload})
	return nil
}

func (p *Push) SendMulticast(_ context.Context, tokens []string, payload domain.PushPayload) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.MulticastErr != nil {
		return 0, p.MulticastErr
	}
	p.Multicasts = append(p.Multicasts, Multicast{Tokens: append([]string(nil), tokens...), Payload: payload})
	return len(tokens), nil
}

func (p *Push) Snapshot() ([]SentPush, []Multicast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SentPush(nil), p.Sent...), append([]Multicast(nil), p.Multicasts...)
}

type Publisher struct {
	mu         sync.Mutex
	Events     []domain.EventoCreated
	PublishErr error
}

func (p *Publisher) PublishEventoCreated(_ context.Context, ev domain.EventoCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.PublishErr != nil {
		return p.PublishErr
	}
	p.Events = append(p.Events, ev)
	return nil
}
