package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Regiao representa uma regional que agrupa lojas
type Regiao struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	Nome      string         `json:"nome" gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Lojas []Loja `json:"lojas,omitempty" gorm:"foreignKey:RegiaoID;references:ID"`
}

// TableName indica o nome da tabela
func (Regiao) TableName() string {
	return "regioes"
}

// BeforeCreate gera o UUID
func (r *Regiao) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
