package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusLote representa o status de um lote de sincronização
type StatusLote string

const (
	LoteSucesso     StatusLote = "sucesso"
	LoteErro        StatusLote = "erro"
	LoteProcessando StatusLote = "processando"
	LoteCancelado   StatusLote = "cancelado"
)

// LoteSincronizacao registra uma tentativa de sincronização (regional, loja, data de execução)
type LoteSincronizacao struct {
	ID                  string         `json:"id" gorm:"type:uuid;primaryKey"`
	RegiaoID            *string        `json:"regiao_id" gorm:"type:uuid;index"`
	LojaID              *string        `json:"loja_id" gorm:"type:uuid;index"`
	DataExecucao        time.Time      `json:"data_execucao" gorm:"index;not null"`
	Status              StatusLote     `json:"status" gorm:"type:varchar(20);not null;default:'processando'"`
	PedidosProcessados  int            `json:"pedidos_processados" gorm:"default:0"`
	Erros               int            `json:"erros" gorm:"default:0"`
	DuracaoSegundos     float64        `json:"duracao_segundos" gorm:"default:0"`
	Mensagem            string         `json:"mensagem,omitempty" gorm:"type:text"`
	CreatedAt           time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Regiao *Regiao `json:"regiao,omitempty" gorm:"foreignKey:RegiaoID;references:ID"`
	Loja   *Loja   `json:"loja,omitempty" gorm:"foreignKey:LojaID;references:ID"`
}

// TableName indica o nome da tabela
func (LoteSincronizacao) TableName() string {
	return "lotes_sincronizacao"
}

// BeforeCreate gera o UUID
func (l *LoteSincronizacao) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// Terminal indica se o status é terminal (sucesso, erro, cancelado)
func (s StatusLote) Terminal() bool {
	return s == LoteSucesso || s == LoteErro || s == LoteCancelado
}

// PodeTransicionarPara valida a transição de status (State Machine)
// Estados terminais absorvem: nenhuma transição sai deles
func (l *LoteSincronizacao) PodeTransicionarPara(novo StatusLote) bool {
	if l.Status.Terminal() {
		return false
	}

	transicoesPermitidas := map[StatusLote][]StatusLote{
		LoteProcessando: {LoteSucesso, LoteErro, LoteCancelado},
	}

	if permitidas, ok := transicoesPermitidas[l.Status]; ok {
		for _, s := range permitidas {
			if s == novo {
				return true
			}
		}
	}
	return false
}
