// Package notify builds parish notifications and fans them out to users.
package notify

import (
	"fmt"
	"time"

	"paroquia-backend/internal/domain"
)

const (
	defaultEventTitle    = "Novo Evento"
	defaultEventLocation = "Confira no app"

	screenAllEvents = "/all-events"
	screenAllMissas = "/todas-missas"
	screenMissa     = "/missa/"
)

// Message is one of NewEvent, RosterReminder or MonthlyAgenda.
type Message interface {
	compose() Composed
}

// Composed is the push payload plus the record template written per user.
// Record.UserID is filled by the fan-out.
type Composed struct {
	Push   *domain.PushPayload
	Record domain.Notification
}

// Compose is pure: no I/O and no clock.
func Compose(m Message) Composed { return m.compose() }

// NewEvent announces a public evento.
type NewEvent struct {
	Title    string
	Location string
	EventID  string
}

func (m NewEvent) compose() Composed {
	titulo := m.Title
	if titulo == "" {
		titulo = defaultEventTitle
	}
	local := m.Location
	if local == "" {
		local = defaultEventLocation
	}
	title := "🎉 Novo Evento na Paróquia!"
	body := fmt.Sprintf("%s \nLocal: %s. Toque para ver os detalhes!", titulo, local)
	return Composed{
		Push:   &domain.PushPayload{Title: title, Body: body, Screen: screenAllEvents},
		Record: record(title, body, domain.KindEvento, m.EventID),
	}
}

// RosterReminder tells one assignee about an upcoming missa.
// When is already formatted for display, see FormatWhen.
type RosterReminder struct {
	SlotKey string
	When    string
	MissaID string
}

func (m RosterReminder) compose() Composed {
	title := "🔔 Lembrete de Escala"
	body := fmt.Sprintf("Você está escalado(a) para: %s na missa do dia %s.", SlotLabel(m.SlotKey), m.When)
	return Composed{
		Push:   &domain.PushPayload{Title: title, Body: body, Screen: screenMissa + m.MissaID, EntityID: m.MissaID},
		Record: record(title, body, domain.KindMissa, m.MissaID),
	}
}

// MonthlyAgenda is a broadcast and references no document.
type MonthlyAgenda struct {
	Month string
	Year  int
}

func (m MonthlyAgenda) compose() Composed {
	title := fmt.Sprintf("📅 Agenda de %s Disponível!", m.Month)
	body := fmt.Sprintf("As missas para o mês de %s de %d já foram cadastradas. Toque para conferir os horários.",
		m.Month, m.Year)
	return Composed{
		Push:   &domain.PushPayload{Title: title, Body: body, Screen: screenAllMissas},
		Record: record(title, body, domain.KindAvisoAgenda, ""),
	}
}

func record(title, body string, kind domain.NotificationKind, docID string) domain.Notification {
	n := domain.Notification{Titulo: title, Corpo: body, Tipo: kind, Lida: false}
	if docID != "" {
		id := docID
		n.DocumentID = &id
	}
	return n
}

var slotLabels = map[string]string{
	domain.SlotComentarista:    "Comentarista",
	domain.SlotPreces:          "Preces",
	domain.SlotMinistro1:       "Ministro 1",
	domain.SlotMinistro2:       "Ministro 2",
	domain.SlotMinistro3:       "Ministro 3",
	domain.SlotPrimeiraLeitura: "1ª Leitura",
	domain.SlotSegundaLeitura:  "2ª Leitura",
	domain.SlotSalmo:           "Salmo",
}

// SlotLabel returns the display label of a slot key; unknown keys pass through.
func SlotLabel(key string) string {
	if l, ok := slotLabels[key]; ok {
		return l
	}
	return key
}

// FormatWhen renders t as "dd/MM, HH:mm" in loc (pt-BR short form).
func FormatWhen(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01, 15:04")
}
