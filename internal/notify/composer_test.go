package notify

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paroquia-backend/internal/domain"
)

func TestCompose_NewEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   NewEvent
		body string
	}{
		{
			name: "title and location",
			in:   NewEvent{Title: "Quermesse", Location: "Salão Paroquial", EventID: "e1"},
			body: "Quermesse \nLocal: Salão Paroquial. Toque para ver os detalhes!",
		},
		{
			name: "defaults",
			in:   NewEvent{EventID: "e2"},
			body: "Novo Evento \nLocal: Confira no app. Toque para ver os detalhes!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Compose(tt.in)
			require.NotNil(t, c.Push)
			assert.Equal(t, "🎉 Novo Evento na Paróquia!", c.Push.Title)
			assert.Equal(t, tt.body, c.Push.Body)
			assert.Equal(t, map[string]string{"click_action": "FLUTTER_NOTIFICATION_CLICK", "screen": "/all-events"}, c.Push.Data())

			assert.Equal(t, domain.KindEvento, c.Record.Tipo)
			assert.Equal(t, c.Push.Title, c.Record.Titulo)
			assert.Equal(t, tt.body, c.Record.Corpo)
			assert.False(t, c.Record.Lida)
			require.NotNil(t, c.Record.DocumentID)
			assert.Equal(t, tt.in.EventID, *c.Record.DocumentID)
		})
	}
}

func TestCompose_RosterReminder(t *testing.T) {
	t.Parallel()
	c := Compose(RosterReminder{SlotKey: domain.SlotSegundaLeitura, When: "05/04, 19:00", MissaID: "m9"})

	require.NotNil(t, c.Push)
	assert.Equal(t, "🔔 Lembrete de Escala", c.Push.Title)
	assert.Equal(t, "Você está escalado(a) para: 2ª Leitura na missa do dia 05/04, 19:00.", c.Push.Body)
	assert.Equal(t, map[string]string{
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
		"screen":       "/missa/m9",
		"id":           "m9",
	}, c.Push.Data())
	assert.Equal(t, domain.KindMissa, c.Record.Tipo)
	require.NotNil(t, c.Record.DocumentID)
	assert.Equal(t, "m9", *c.Record.DocumentID)
}

func TestCompose_MonthlyAgenda(t *testing.T) {
	t.Parallel()
	c := Compose(MonthlyAgenda{Month: "Junho", Year: 2025})

	assert.Equal(t, "📅 Agenda de Junho Disponível!", c.Push.Title)
	assert.Equal(t, "As missas para o mês de Junho de 2025 já foram cadastradas. Toque para conferir os horários.", c.Push.Body)
	assert.Equal(t, "/todas-missas", c.Push.Data()["screen"])
	assert.Equal(t, domain.KindAvisoAgenda, c.Record.Tipo)
	assert.Nil(t, c.Record.DocumentID)
}

func TestSlotLabel(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"comentarista":    "Comentarista",
		"preces":          "Preces",
		"ministro1":       "Ministro 1",
		"ministro2":       "Ministro 2",
		"ministro3":       "Ministro 3",
		"primeiraLeitura": "1ª Leitura",
		"segundaLeitura":  "2ª Leitura",
		"salmo":           "Salmo",
		"organista":       "organista",
	}
	for key, want := range cases {
		assert.Equal(t, want, SlotLabel(key), key)
	}
}

func TestFormatWhen(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	at := time.Date(2025, 1, 2, 1, 5, 0, 0, time.UTC)
	assert.Equal(t, "01/01, 22:05", FormatWhen(at, loc))
	assert.Equal(t, "02/01, 01:05", FormatWhen(at, nil))
}
