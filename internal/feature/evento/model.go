package evento

import "time"

type EventoModel struct {
	ID       string     `gorm:"primaryKey;type:varchar(36)"`
	Titulo   string     `gorm:"size:255;not null"`
	Local    string     `gorm:"size:255"`
	DataHora *time.Time `gorm:"column:data_hora;index"`
	CriadoEm time.Time  `gorm:"column:criado_em;autoCreateTime"`
}

func (EventoModel) TableName() string { return "eventos" }
