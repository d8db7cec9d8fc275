package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"paroquia-backend/internal/service"
	"paroquia-backend/internal/transport/http/ez"
)

type NotifyHandler struct {
	agenda  *service.Broadcaster
	eventos *service.EventoService
	guard   *service.AdminGuard
}

func NewNotifyHandler(agenda *service.Broadcaster, eventos *service.EventoService, guard *service.AdminGuard) *NotifyHandler {
	return &NotifyHandler{agenda: agenda, eventos: eventos, guard: guard}
}

type agendaIn struct {
	NomeMes string `json:"nomeMes"`
	Ano     int    `json:"ano"`
}

type eventoIn struct {
	Titulo   string     `json:"titulo"`
	Local    string     `json:"local"`
	DataHora *time.Time `json:"dataHora"`
}

type eventoOut struct {
	ID string `json:"id"`
}

func (h *NotifyHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[agendaIn, successOut]{
		Method: http.MethodPost, Path: "/notifyMonthlyAgenda", Binder: ez.BindJSON, Auth: true, Guard: adminOnly(h.guard),
		BindMsg: "Mês e Ano são obrigatórios.",
		Handler: func(c *gin.Context, in *agendaIn) (successOut, error) {
			msg, err := h.agenda.NotifyMonthlyAgenda(c.Request.Context(), ez.CallerUID(c), in.NomeMes, in.Ano)
			if err != nil {
				return successOut{}, err
			}
			return successOut{Success: true, Message: msg}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[eventoIn, eventoOut]{
		Method: http.MethodPost, Path: "/eventos", Binder: ez.BindJSON, Auth: true, Guard: adminOnly(h.guard),
		Handler: func(c *gin.Context, in *eventoIn) (eventoOut, error) {
			ev, err := h.eventos.Create(c.Request.Context(), ez.CallerUID(c), service.CreateEventoInput{
				Titulo:   in.Titulo,
				Local:    in.Local,
				DataHora: in.DataHora,
			})
			if err != nil {
				return eventoOut{}, err
			}
			return eventoOut{ID: ev.ID}, nil
		},
	})
}
