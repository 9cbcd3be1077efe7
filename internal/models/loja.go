package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loja representa uma loja vinculada a uma regional
type Loja struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Nome        string         `json:"nome" gorm:"type:varchar(255);not null"`
	CodigoERP   string         `json:"codigo_erp" gorm:"type:varchar(50);index"`
	CodigoIfood string         `json:"codigo_ifood" gorm:"type:varchar(50);index"`
	RegiaoID    *string        `json:"regiao_id" gorm:"type:uuid;index"` // Nulo apenas durante criação em casos de borda
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Regiao *Regiao `json:"regiao,omitempty" gorm:"foreignKey:RegiaoID;references:ID"`
}

// TableName indica o nome da tabela
func (Loja) TableName() string {
	return "lojas"
}

// BeforeCreate gera o UUID
func (l *Loja) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
