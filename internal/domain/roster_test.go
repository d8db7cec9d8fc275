package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sp(s string) *string { return &s }

func TestMissa_Assignments(t *testing.T) {
	t.Parallel()
	m := Missa{Escala: Escala{
		SlotSalmo:        sp("u2"),
		SlotComentarista: sp("u1"),
		SlotPreces:       nil,
		SlotMinistro1:    sp(""),
	}}

	assert.Equal(t, []Assignment{
		{Slot: SlotComentarista, UserID: "u1"},
		{Slot: SlotSalmo, UserID: "u2"},
	}, m.Assignments())
	assert.Empty(t, Missa{}.Assignments())
}

func TestMissa_SlotsHeldBy(t *testing.T) {
	t.Parallel()
	m := Missa{Escala: Escala{
		SlotMinistro2:    sp("u1"),
		SlotComentarista: sp("u1"),
		SlotSalmo:        sp("u2"),
	}}

	assert.Equal(t, []string{SlotComentarista, SlotMinistro2}, m.SlotsHeldBy("u1"))
	assert.Nil(t, m.SlotsHeldBy("u9"))
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("ctx: %w", PermissionDenied("no"))

	assert.Equal(t, KindPermissionDenied, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	cause := errors.New("db")
	assert.ErrorIs(t, Internal("falhou", cause), cause)
}
