package notificacao

import "time"

type NotificacaoModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	UsuarioID  string    `gorm:"column:usuario_id;type:varchar(128);not null;index:idx_notif_user_data,priority:1"`
	Titulo     string    `gorm:"size:255;not null"`
	Corpo      string    `gorm:"type:text;not null"`
	Data       time.Time `gorm:"column:data;autoCreateTime;index:idx_notif_user_data,priority:2"`
	Lida       bool      `gorm:"not null;default:false"`
	Tipo       string    `gorm:"size:32;not null"`
	DocumentID *string   `gorm:"column:document_id;size:64"`
}

func (NotificacaoModel) TableName() string { return "notificacoes" }
