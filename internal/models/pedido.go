package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusConciliacao representa o resultado do confronto ERP x iFood de um pedido
type StatusConciliacao string

const (
	PedidoConciliado StatusConciliacao = "conciliado"
	PedidoDivergente StatusConciliacao = "divergente"
	PedidoSemPar     StatusConciliacao = "sem_par"
)

// Tolerância de centavos no confronto de valores ERP x iFood
const toleranciaConciliacao = 0.01

// Pedido representa um pedido na base de conciliação, com os valores
// registrados no ERP e na integração iFood
type Pedido struct {
	ID          string            `json:"id" gorm:"type:uuid;primaryKey"`
	LojaID      *string           `json:"loja_id" gorm:"type:uuid;index"`
	UploadID    *string           `json:"upload_id" gorm:"type:uuid;index"`
	NumeroERP   string            `json:"numero_erp" gorm:"type:varchar(50);index"`
	NumeroIfood string            `json:"numero_ifood" gorm:"type:varchar(50);index"`
	ValorERP    float64           `json:"valor_erp" gorm:"default:0"`
	ValorIfood  float64           `json:"valor_ifood" gorm:"default:0"`
	DataPedido  time.Time         `json:"data_pedido" gorm:"index;not null"`
	Status      StatusConciliacao `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt    `json:"deleted_at,omitempty" gorm:"index"`

	// Relações
	Loja   *Loja   `json:"loja,omitempty" gorm:"foreignKey:LojaID;references:ID"`
	Upload *Upload `json:"upload,omitempty" gorm:"foreignKey:UploadID;references:ID"`
}

// TableName indica o nome da tabela
func (Pedido) TableName() string {
	return "pedidos"
}

// BeforeCreate gera o UUID e deriva o status de conciliação
func (p *Pedido) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = p.Conciliar()
	}
	return nil
}

// Conciliar confronta os valores ERP x iFood:
// pedido presente em um só lado -> sem par; valores iguais (tolerância de
// centavo) -> conciliado; caso contrário -> divergente
func (p *Pedido) Conciliar() StatusConciliacao {
	if p.NumeroERP == "" || p.NumeroIfood == "" {
		return PedidoSemPar
	}
	if math.Abs(p.ValorERP-p.ValorIfood) <= toleranciaConciliacao {
		return PedidoConciliado
	}
	return PedidoDivergente
}
