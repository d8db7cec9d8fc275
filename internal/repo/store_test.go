package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"paroquia-backend/internal/dbtest"
	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/missa"
	"paroquia-backend/internal/feature/notificacao"
	"paroquia-backend/internal/feature/user"
	"paroquia-backend/internal/repo"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func ids(ms []domain.Missa) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestRosterRepo_ListBetweenIsHalfOpen(t *testing.T) {
	t.Parallel()
	db := dbtest.Open(t)
	for id, at := range map[string]time.Time{
		"before":   now.Add(-time.Minute),
		"at-start": now,
		"inside":   now.Add(47*time.Hour + 59*time.Minute),
		"at-end":   now.Add(48 * time.Hour),
		"after":    now.Add(72 * time.Hour),
	} {
		require.NoError(t, db.Create(&missa.MissaModel{ID: id, DataHora: at}).Error)
	}
	r := repo.NewRosterRepo(db)

	got, err := r.ListBetween(context.Background(), now, now.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"at-start", "inside"}, ids(got))

	got, err = r.ListFrom(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"at-start", "inside", "at-end", "after"}, ids(got))
}

func TestRosterRepo_ClearSlots(t *testing.T) {
	t.Parallel()
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&missa.MissaModel{
		ID:       "m1",
		DataHora: now.Add(time.Hour),
		Escala: datatypes.JSONMap{
			domain.SlotComentarista: "u1",
			domain.SlotMinistro1:    "u1",
			domain.SlotSalmo:        "u2",
			domain.SlotPreces:       nil,
		},
	}).Error)
	r := repo.NewRosterRepo(db)
	ctx := context.Background()

	// ministro1 is handed to u3 after the caller scanned the missa
	require.NoError(t, db.Model(&missa.MissaModel{}).Where("id = ?", "m1").
		Update("escala", datatypes.JSONMap{
			domain.SlotComentarista: "u1",
			domain.SlotMinistro1:    "u3",
			domain.SlotSalmo:        "u2",
			domain.SlotPreces:       nil,
		}).Error)

	require.NoError(t, r.ClearSlots(ctx, "m1", "u1", []string{domain.SlotComentarista, domain.SlotMinistro1}))

	got, err := r.ListFrom(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	esc := got[0].Escala
	assert.Contains(t, esc, domain.SlotComentarista)
	assert.Nil(t, esc[domain.SlotComentarista])
	require.NotNil(t, esc[domain.SlotMinistro1])
	assert.Equal(t, "u3", *esc[domain.SlotMinistro1])
	require.NotNil(t, esc[domain.SlotSalmo])
	assert.Equal(t, "u2", *esc[domain.SlotSalmo])

	assert.ErrorIs(t, r.ClearSlots(ctx, "missing", "u1", []string{domain.SlotSalmo}), domain.ErrNotFound)
	assert.NoError(t, r.ClearSlots(ctx, "missing", "u1", nil))
}

func TestDirectoryRepo(t *testing.T) {
	t.Parallel()
	db := dbtest.Open(t)
	r := repo.NewDirectoryRepo(db)
	ctx := context.Background()
	grupo := "g1"

	rec := &domain.UserRecord{
		ID: "u1", Nome: "Ana", Email: "ana@paroquia.org", Role: domain.RoleUser, Ativo: true,
		FCMToken: "tok", Categorias: []string{"leitor"}, IDGrupoMusical: &grupo,
	}
	require.NoError(t, r.Create(ctx, rec))
	assert.False(t, rec.CriadoEm.IsZero())

	got, err := r.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nome)
	assert.Equal(t, []string{"leitor"}, got.Categorias)
	require.NotNil(t, got.IDGrupoMusical)
	assert.Equal(t, "g1", *got.IDGrupoMusical)
	assert.Nil(t, got.IDGrupoCoordenado)

	t.Run("set active", func(t *testing.T) {
		require.NoError(t, r.SetActive(ctx, "u1", false))
		got, err := r.Get(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, got.Ativo)
		// unchanged value is still a hit
		require.NoError(t, r.SetActive(ctx, "u1", false))
		assert.ErrorIs(t, r.SetActive(ctx, "ghost", true), domain.ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := r.Get(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, r.Delete(ctx, "ghost"))
	})

	t.Run("corrupt categorias", func(t *testing.T) {
		require.NoError(t, r.Create(ctx, &domain.UserRecord{ID: "u2", Nome: "Bia"}))
		require.NoError(t, db.Model(&user.UserModel{}).Where("id = ?", "u2").
			Update("categorias", datatypes.JSON(`{"not":"a list"}`)).Error)
		_, err := r.Get(ctx, "u2")
		assert.ErrorContains(t, err, "categorias")
		_, err = r.List(ctx)
		assert.Error(t, err)
		require.NoError(t, r.Delete(ctx, "u2"))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, "u1"))
		_, err := r.Get(ctx, "u1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		all, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestNotificationRepo_Add(t *testing.T) {
	t.Parallel()
	db := dbtest.Open(t)
	r := repo.NewNotificationRepo(db)
	doc := "m1"

	n := &domain.Notification{UserID: "u1", Titulo: "Lembrete", Corpo: "corpo", Tipo: domain.KindMissa, DocumentID: &doc, Lida: true}
	require.NoError(t, r.Add(context.Background(), n))
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Lida)
	assert.False(t, n.Data.IsZero())

	var row notificacao.NotificacaoModel
	require.NoError(t, db.First(&row, "id = ?", n.ID).Error)
	assert.Equal(t, "u1", row.UsuarioID)
	assert.Equal(t, "missa", row.Tipo)
	require.NotNil(t, row.DocumentID)
	assert.Equal(t, "m1", *row.DocumentID)
	assert.False(t, row.Lida)
}

func TestEventoRepo_Create(t *testing.T) {
	t.Parallel()
	r := repo.NewEventoRepo(dbtest.Open(t))
	ev := &domain.Evento{Titulo: "Quermesse", Local: "Salão"}
	require.NoError(t, r.Create(context.Background(), ev))
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.CriadoEm.IsZero())
}
