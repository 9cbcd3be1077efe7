package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Papel representa o perfil de acesso do usuário
type Papel string

const (
	PapelLoja        Papel = "store"
	PapelRegional    Papel = "regional"
	PapelCorporativo Papel = "corporate"
)

// Usuario representa um usuário do painel de conciliação
// IDs são sempre UUID em string, inclusive para usuários migrados do sistema legado
type Usuario struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	Nome      string         `json:"nome" gorm:"type:varchar(255);not null"`
	Email     string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Papel     Papel          `json:"papel" gorm:"type:varchar(20);not null;index"`
	RegiaoID  *string        `json:"regiao_id" gorm:"type:uuid;index"`
	LojaID    *string        `json:"loja_id" gorm:"type:uuid;index"`
	SenhaHash string         `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Regiao *Regiao `json:"regiao,omitempty" gorm:"foreignKey:RegiaoID;references:ID"`
	Loja   *Loja   `json:"loja,omitempty" gorm:"foreignKey:LojaID;references:ID"`
}

// TableName indica o nome da tabela
func (Usuario) TableName() string {
	return "usuarios"
}

// BeforeCreate gera o UUID
func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// ValidarVinculos verifica as invariantes de vínculo por papel:
// corporativo não tem regional nem loja; regional tem regional e não tem loja;
// loja tem regional e loja
func (u *Usuario) ValidarVinculos() error {
	temRegiao := u.RegiaoID != nil && *u.RegiaoID != ""
	temLoja := u.LojaID != nil && *u.LojaID != ""

	switch u.Papel {
	case PapelCorporativo:
		if temRegiao || temLoja {
			return fmt.Errorf("usuário corporativo não pode ter vínculo com regional ou loja")
		}
	case PapelRegional:
		if !temRegiao {
			return fmt.Errorf("usuário regional precisa de uma regional")
		}
		if temLoja {
			return fmt.Errorf("usuário regional não pode ter vínculo com loja")
		}
	case PapelLoja:
		if !temRegiao || !temLoja {
			return fmt.Errorf("usuário de loja precisa de regional e loja")
		}
	default:
		return fmt.Errorf("papel inválido: %s", u.Papel)
	}
	return nil
}
