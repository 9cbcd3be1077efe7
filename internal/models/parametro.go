package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoriaParametro separa parâmetros de setup (somente leitura) dos customizados
type CategoriaParametro string

const (
	ParametroSetup  CategoriaParametro = "setup"
	ParametroCustom CategoriaParametro = "custom"
)

// TipoParametro define o tipo do valor do parâmetro
type TipoParametro string

const (
	TipoTexto    TipoParametro = "texto"
	TipoNumero   TipoParametro = "numero"
	TipoBooleano TipoParametro = "booleano"
	TipoOpcao    TipoParametro = "opcao"
)

// Parametro representa um item de configuração chave-valor da conciliação
type Parametro struct {
	ID        string             `json:"id" gorm:"type:uuid;primaryKey"`
	Chave     string             `json:"chave" gorm:"type:varchar(100);uniqueIndex;not null"`
	Valor     string             `json:"valor" gorm:"type:text"`
	Descricao string             `json:"descricao,omitempty" gorm:"type:text"`
	Categoria CategoriaParametro `json:"categoria" gorm:"type:varchar(20);not null;default:'custom'"`
	Tipo      TipoParametro      `json:"tipo" gorm:"type:varchar(20);not null;default:'texto'"`
	Opcoes    string             `json:"opcoes,omitempty" gorm:"type:text"` // Opções separadas por vírgula para tipo 'opcao'
	CreatedAt time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt     `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName indica o nome da tabela
func (Parametro) TableName() string {
	return "parametros"
}

// BeforeCreate gera o UUID
func (p *Parametro) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// ValidarValor verifica se o valor é compatível com o tipo declarado
func (p *Parametro) ValidarValor(valor string) error {
	switch p.Tipo {
	case TipoNumero:
		if _, err := strconv.ParseFloat(valor, 64); err != nil {
			return fmt.Errorf("valor '%s' não é numérico", valor)
		}
	case TipoBooleano:
		if valor != "true" && valor != "false" {
			return fmt.Errorf("valor '%s' não é booleano (use true/false)", valor)
		}
	case TipoOpcao:
		for _, op := range p.ListarOpcoes() {
			if op == valor {
				return nil
			}
		}
		return fmt.Errorf("valor '%s' não está entre as opções permitidas", valor)
	}
	return nil
}

// ListarOpcoes devolve as opções permitidas para tipo 'opcao'
func (p *Parametro) ListarOpcoes() []string {
	if p.Opcoes == "" {
		return nil
	}
	var opcoes []string
	for _, op := range strings.Split(p.Opcoes, ",") {
		if op = strings.TrimSpace(op); op != "" {
			opcoes = append(opcoes, op)
		}
	}
	return opcoes
}
