package missa

import (
	"time"

	"gorm.io/datatypes"
)

// MissaModel stores the escala as a JSON object of slot key to uid or null.
type MissaModel struct {
	ID       string            `gorm:"primaryKey;type:varchar(64)"`
	DataHora time.Time         `gorm:"column:data_hora;not null;index"`
	Escala   datatypes.JSONMap `gorm:"type:json"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MissaModel) TableName() string { return "missas" }
