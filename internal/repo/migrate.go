package repo

import (
	"gorm.io/gorm"

	"paroquia-backend/internal/feature/account"
	"paroquia-backend/internal/feature/evento"
	"paroquia-backend/internal/feature/missa"
	"paroquia-backend/internal/feature/notificacao"
	"paroquia-backend/internal/feature/user"
)

// AutoMigrate creates or updates every table the backend owns. The accounts
// table is only used by the local identity driver.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.UserModel{},
		&missa.MissaModel{},
		&notificacao.NotificacaoModel{},
		&evento.EventoModel{},
		&account.AccountModel{},
	)
}
