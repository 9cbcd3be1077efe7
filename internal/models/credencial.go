package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusCredencial representa o estado derivado da credencial iFood
type StatusCredencial string

const (
	CredencialNaoConfigurada StatusCredencial = "nao_configurada"
	CredencialSemToken       StatusCredencial = "sem_token"
	CredencialAtiva          StatusCredencial = "ativa"
)

// Credencial guarda as credenciais de integração iFood de uma loja (uma por loja)
type Credencial struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	LojaID       string         `json:"loja_id" gorm:"type:uuid;uniqueIndex;not null"`
	ClientID     string         `json:"client_id" gorm:"type:varchar(255)"`
	ClientSecret string         `json:"-" gorm:"type:varchar(255)"`
	Token        string         `json:"-" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Loja *Loja `json:"loja,omitempty" gorm:"foreignKey:LojaID;references:ID"`
}

// TableName indica o nome da tabela
func (Credencial) TableName() string {
	return "credenciais"
}

// BeforeCreate gera o UUID
func (c *Credencial) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Status deriva o estado da credencial:
// sem client_id/secret -> não configurada; com ambos mas sem token -> sem token; com token -> ativa
func (c *Credencial) Status() StatusCredencial {
	if c.ClientID == "" || c.ClientSecret == "" {
		return CredencialNaoConfigurada
	}
	if c.Token == "" {
		return CredencialSemToken
	}
	return CredencialAtiva
}

// MascararSegredo mascara um segredo para exibição:
// até 8 caracteres vira exatamente 8 bullets; acima disso mantém os 4 primeiros
// e os 4 últimos com 8 bullets no meio
func MascararSegredo(segredo string) string {
	const bullets = "••••••••"
	if segredo == "" {
		return ""
	}
	if len(segredo) <= 8 {
		return bullets
	}
	return segredo[:4] + bullets + segredo[len(segredo)-4:]
}

// ToMap monta a representação de listagem com segredos mascarados
func (c *Credencial) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":            c.ID,
		"loja_id":       c.LojaID,
		"client_id":     c.ClientID,
		"client_secret": MascararSegredo(c.ClientSecret),
		"token":         MascararSegredo(strings.TrimSpace(c.Token)),
		"status":        string(c.Status()),
		"updated_at":    c.UpdatedAt.Format(time.RFC3339),
	}
}
