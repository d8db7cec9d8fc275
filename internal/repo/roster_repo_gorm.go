package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/missa"
)

// RosterRepo is the gorm-backed domain.RosterStore.
type RosterRepo struct{ db *gorm.DB }

func NewRosterRepo(db *gorm.DB) *RosterRepo { return &RosterRepo{db: db} }

func (r *RosterRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Missa, error) {
	return r.find(r.db.WithContext(ctx).Where("data_hora >= ? AND data_hora < ?", from.UTC(), to.UTC()))
}

func (r *RosterRepo) ListFrom(ctx context.Context, from time.Time) ([]domain.Missa, error) {
	return r.find(r.db.WithContext(ctx).Where("data_hora >= ?", from.UTC()))
}

func (r *RosterRepo) find(q *gorm.DB) ([]domain.Missa, error) {
	var rows []missa.MissaModel
	if err := q.Order("data_hora").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Missa, 0, len(rows))
	for _, m := range rows {
		out = append(out, toMissa(m))
	}
	return out, nil
}

// ClearSlots reloads the escala under a row lock and nulls the given slots
// that still hold uid. Other slots, and slots reassigned since the caller
// read the missa, are left as they are.
func (r *RosterRepo) ClearSlots(ctx context.Context, missaID, uid string, slots []string) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m missa.MissaModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", missaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		esc := m.Escala
		if esc == nil {
			return nil
		}
		changed := false
		for _, s := range slots {
			if v, ok := esc[s].(string); ok && v == uid {
				esc[s] = nil
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return tx.Model(&missa.MissaModel{}).Where("id = ?", missaID).Update("escala", esc).Error
	})
}

func toMissa(m missa.MissaModel) domain.Missa {
	return domain.Missa{ID: m.ID, DataHora: m.DataHora, Escala: escalaFromJSON(m.Escala)}
}

// escalaFromJSON keeps string values as assignments; null and any other JSON
// type read as unassigned.
func escalaFromJSON(j datatypes.JSONMap) domain.Escala {
	if j == nil {
		return nil
	}
	esc := make(domain.Escala, len(j))
	for k, v := range j {
		if s, ok := v.(string); ok && s != "" {
			esc[k] = &s
		} else {
			esc[k] = nil
		}
	}
	return esc
}
