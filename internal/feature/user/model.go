package user

import (
	"time"

	"gorm.io/datatypes"
)

// UserModel is a directory entry; ID is the identity provider uid.
type UserModel struct {
	ID                string         `gorm:"primaryKey;type:varchar(128)"`
	Nome              string         `gorm:"size:128;not null"`
	Email             string         `gorm:"size:255;index"`
	Role              string         `gorm:"size:16;not null;default:user;index"`
	Ativo             bool           `gorm:"not null"`
	FCMToken          string         `gorm:"column:fcm_token;size:512"`
	Categorias        datatypes.JSON `gorm:"type:json"`
	IDGrupoMusical    *string        `gorm:"column:id_grupo_musical;size:128"`
	IDGrupoCoordenado *string        `gorm:"column:id_grupo_coordenado;size:128"`

	CriadoEm  time.Time `gorm:"column:criado_em;autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "usuarios" }
