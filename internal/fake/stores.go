// Package fake holds in-memory implementations of the domain ports, used by
// tests across packages. Every type is safe for concurrent use.
package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"paroquia-backend/internal/domain"
)

type Directory struct {
	mu    sync.Mutex
	users map[string]domain.UserRecord

	GetErr       error
	ListErr      error
	CreateErr    error
	SetActiveErr error
	DeleteErr    error

	Gets    map[string]int
	Writes  int
	Deleted []string
}

func NewDirectory(users ...domain.UserRecord) *Directory {
	d := &Directory{users: make(map[string]domain.UserRecord), Gets: make(map[string]int)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *Directory) Get(_ context.Context, uid string) (*domain.UserRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Gets[uid]++
	if d.GetErr != nil {
		return nil, d.GetErr
	}
	u, ok := d.users[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (d *Directory) List(_ context.Context) ([]domain.UserRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ListErr != nil {
		return nil, d.ListErr
	}
	out := make([]domain.UserRecord, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Directory) Create(_ context.Context, u *domain.UserRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.CreateErr != nil {
		return d.CreateErr
	}
	if u.CriadoEm.IsZero() {
		u.CriadoEm = time.Now()
	}
	d.users[u.ID] = *u
	d.Writes++
	return nil
}

func (d *Directory) SetActive(_ context.Context, uid string, active bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SetActiveErr != nil {
		return d.SetActiveErr
	}
	u, ok := d.users[uid]
	if !ok {
		return domain.ErrNotFound
	}
	u.Ativo = active
	d.users[uid] = u
	d.Writes++
	return nil
}

func (d *Directory) Delete(_ context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.DeleteErr != nil {
		return d.DeleteErr
	}
	delete(d.users, uid)
	d.Deleted = append(d.Deleted, uid)
	d.Writes++
	return nil
}

// User returns a copy of the stored record.
func (d *Directory) User(uid string) (domain.UserRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[uid]
	return u, ok
}

type Roster struct {
	mu     sync.Mutex
	missas map[string]domain.Missa

	ListErr  error
	ClearErr error

	Patches map[string][]string
}

func NewRoster(missas ...domain.Missa) *Roster {
	r := &Roster{missas: make(map[string]domain.Missa), Patches: make(map[string][]string)}
	for _, m := range missas {
		r.missas[m.ID] = m
	}
	return r
}

func (r *Roster) ListBetween(_ context.Context, from, to time.Time) ([]domain.Missa, error) {
	return r.list(func(m domain.Missa) bool {
		return !m.DataHora.Before(from) && m.DataHora.Before(to)
	})
}

func (r *Roster) ListFrom(_ context.Context, from time.Time) ([]domain.Missa, error) {
	return r.list(func(m domain.Missa) bool { return !m.DataHora.Before(from) })
}

func (r *Roster) list(keep func(domain.Missa) bool) ([]domain.Missa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []domain.Missa
	for _, m := range r.missas {
		if keep(m) {
			out = append(out, cloneMissa(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataHora.Before(out[j].DataHora) })
	return out, nil
}

func (r *Roster) ClearSlots(_ context.Context, missaID, uid string, slots []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ClearErr != nil {
		return r.ClearErr
	}
	m, ok := r.missas[missaID]
	if !ok {
		return domain.ErrNotFound
	}
	m = cloneMissa(m)
	for _, s := range slots {
		if v := m.Escala[s]; v != nil && *v == uid {
			m.Escala[s] = nil
		}
	}
	r.missas[missaID] = m
	r.Patches[missaID] = append([]string(nil), slots...)
	return nil
}

func (r *Roster) Missa(id string) domain.Missa {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneMissa(r.missas[id])
}

func cloneMissa(m domain.Missa) domain.Missa {
	if m.Escala == nil {
		return m
	}
	esc := make(domain.Escala, len(m.Escala))
	for k, v := range m.Escala {
		if v != nil {
			s := *v
			esc[k] = &s
		} else {
			esc[k] = nil
		}
	}
	m.Escala = esc
	return m
}

type Notifications struct {
	mu      sync.Mutex
	records []domain.Notification

	// AddErr, when set, decides the outcome of each write.
	AddErr func(n *domain.Notification) error
}

func NewNotifications() *Notifications { return &Notifications{} }

func (s *Notifications) Add(_ context.Context, n *domain.Notification) error {
	if s.AddErr != nil {
		if err := s.AddErr(n); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = uuid.NewString()
	n.Data = time.Now()
	n.Lida = false
	s.records = append(s.records, *n)
	return nil
}

func (s *Notifications) All() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.records...)
}

func (s *Notifications) ForUser(uid string) []domain.Notification {
	var out []domain.Notification
	for _, n := range s.All() {
		if n.UserID == uid {
			out = append(out, n)
		}
	}
	return out
}

type Eventos struct {
	mu        sync.Mutex
	Items     []domain.Evento
	CreateErr error
}

func (s *Eventos) Create(_ context.Context, e *domain.Evento) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CriadoEm = time.Now()
	s.Items = append(s.Items, *e)
	return nil
}
