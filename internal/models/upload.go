package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusUpload representa o status de um upload de planilha
type StatusUpload string

const (
	UploadSucesso     StatusUpload = "sucesso"
	UploadErro        StatusUpload = "erro"
	UploadProcessando StatusUpload = "processando"
	UploadCancelado   StatusUpload = "cancelado"
)

// Upload registra uma importação de planilha de vendas e seu resumo derivado
type Upload struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	NomeArquivo   string         `json:"nome_arquivo" gorm:"type:varchar(255);not null"`
	UsuarioID     *string        `json:"usuario_id" gorm:"type:uuid;index"`
	Status        StatusUpload   `json:"status" gorm:"type:varchar(20);not null;default:'processando'"`
	TotalLinhas   int            `json:"total_linhas" gorm:"default:0"`
	LinhasValidas int            `json:"linhas_validas" gorm:"default:0"`
	LinhasErro    int            `json:"linhas_erro" gorm:"default:0"`
	LinhasAviso   int            `json:"linhas_aviso" gorm:"default:0"`
	Mensagem      string         `json:"mensagem,omitempty" gorm:"type:text"`

	// Resumo derivado das linhas válidas
	QtdPedidos    int        `json:"qtd_pedidos" gorm:"default:0"`
	QtdLojas      int        `json:"qtd_lojas" gorm:"default:0"`
	ValorTotal    float64    `json:"valor_total" gorm:"default:0"`
	PeriodoInicio *time.Time `json:"periodo_inicio,omitempty"`
	PeriodoFim    *time.Time `json:"periodo_fim,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Usuario *Usuario `json:"usuario,omitempty" gorm:"foreignKey:UsuarioID;references:ID"`
}

// TableName indica o nome da tabela
func (Upload) TableName() string {
	return "uploads"
}

// BeforeCreate gera o UUID
func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Terminal indica se o status é terminal
func (s StatusUpload) Terminal() bool {
	return s == UploadSucesso || s == UploadErro || s == UploadCancelado
}
