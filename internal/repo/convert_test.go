package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/missa"
)

func TestEscalaFromJSON(t *testing.T) {
	t.Parallel()
	esc := escalaFromJSON(datatypes.JSONMap{
		"comentarista": "u1",
		"salmo":        nil,
		"preces":       "",
		"ministro1":    float64(3),
	})

	require.Len(t, esc, 4)
	require.NotNil(t, esc["comentarista"])
	assert.Equal(t, "u1", *esc["comentarista"])
	assert.Nil(t, esc["salmo"])
	assert.Nil(t, esc["preces"])
	assert.Nil(t, esc["ministro1"])

	assert.Nil(t, escalaFromJSON(nil))
}

func TestToMissa(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)
	m := toMissa(missa.MissaModel{ID: "m1", DataHora: at, Escala: datatypes.JSONMap{"salmo": "u2"}})

	assert.Equal(t, "m1", m.ID)
	assert.True(t, at.Equal(m.DataHora))
	assert.Equal(t, []domain.Assignment{{Slot: "salmo", UserID: "u2"}}, m.Assignments())
}

func TestUserRecordConversion(t *testing.T) {
	t.Parallel()
	grupo := "g1"
	in := domain.UserRecord{
		ID:             "u1",
		Nome:           "Ana",
		Email:          "ana@paroquia.org",
		Ativo:          true,
		Categorias:     []string{"leitor", "ministro"},
		IDGrupoMusical: &grupo,
	}

	m, err := fromUserRecord(in)
	require.NoError(t, err)
	assert.Equal(t, "user", m.Role)
	assert.JSONEq(t, `["leitor","ministro"]`, string(m.Categorias))

	out, err := toUserRecord(m)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, out.Role)
	assert.Equal(t, in.Categorias, out.Categorias)
	assert.Equal(t, "g1", *out.IDGrupoMusical)
	assert.Nil(t, out.IDGrupoCoordenado)
}

func TestFromUserRecord_EmptyCategorias(t *testing.T) {
	t.Parallel()
	m, err := fromUserRecord(domain.UserRecord{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(m.Categorias))
	assert.Equal(t, "admin", m.Role)
}
