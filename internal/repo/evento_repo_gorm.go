package repo

import (
	"context"

	"gorm.io/gorm"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/evento"
	"paroquia-backend/pkg/utils"
)

type EventoRepo struct{ db *gorm.DB }

func NewEventoRepo(db *gorm.DB) *EventoRepo { return &EventoRepo{db: db} }

func (r *EventoRepo) Create(ctx context.Context, e *domain.Evento) error {
	if e.ID == "" {
		e.ID = utils.NewID()
	}
	row := evento.EventoModel{ID: e.ID, Titulo: e.Titulo, Local: e.Local, DataHora: e.DataHora}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	e.CriadoEm = row.CriadoEm
	return nil
}
