package domain

import (
	"context"
	"sort"
	"time"
)

// Liturgical slot keys of a missa's escala.
const (
	SlotComentarista    = "comentarista"
	SlotPreces          = "preces"
	SlotMinistro1       = "ministro1"
	SlotMinistro2       = "ministro2"
	SlotMinistro3       = "ministro3"
	SlotPrimeiraLeitura = "primeiraLeitura"
	SlotSegundaLeitura  = "segundaLeitura"
	SlotSalmo           = "salmo"
)

// Escala maps a slot key to the assigned uid; nil means unassigned.
type Escala map[string]*string

// Missa is a scheduled roster event.
type Missa struct {
	ID       string    `json:"id"`
	DataHora time.Time `json:"dataHora"`
	Escala   Escala    `json:"escala"`
}

type Assignment struct {
	Slot   string
	UserID string
}

// Assignments lists the non-empty slots ordered by slot key.
func (m Missa) Assignments() []Assignment {
	out := make([]Assignment, 0, len(m.Escala))
	for slot, uid := range m.Escala {
		if uid == nil || *uid == "" {
			continue
		}
		out = append(out, Assignment{Slot: slot, UserID: *uid})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}

// SlotsHeldBy returns the slot keys assigned to uid, ordered.
func (m Missa) SlotsHeldBy(uid string) []string {
	var slots []string
	for slot, v := range m.Escala {
		if v != nil && *v == uid {
			slots = append(slots, slot)
		}
	}
	sort.Strings(slots)
	return slots
}

// RosterStore is the `missas` collection.
type RosterStore interface {
	// ListBetween returns missas with from <= dataHora < to.
	ListBetween(ctx context.Context, from, to time.Time) ([]Missa, error)
	// ListFrom returns missas with dataHora >= from.
	ListFrom(ctx context.Context, from time.Time) ([]Missa, error)
	// ClearSlots sets the given slots of one missa to nil in a single write,
	// skipping any slot that no longer holds uid,
	// leaving the other slots as they are at write time.
	ClearSlots(ctx context.Context, missaID, uid string, slots []string) error
}
