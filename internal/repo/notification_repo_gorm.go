package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/notificacao"
	"paroquia-backend/pkg/utils"
)

type NotificationRepo struct{ db *gorm.DB }

func NewNotificationRepo(db *gorm.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// Add assigns the id and the server timestamp, always unread.
func (r *NotificationRepo) Add(ctx context.Context, n *domain.Notification) error {
	row := notificacao.NotificacaoModel{
		ID:         utils.NewID(),
		UsuarioID:  n.UserID,
		Titulo:     n.Titulo,
		Corpo:      n.Corpo,
		Data:       time.Now().UTC(),
		Lida:       false,
		Tipo:       string(n.Tipo),
		DocumentID: n.DocumentID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	n.ID = row.ID
	n.Data = row.Data
	n.Lida = false
	return nil
}
