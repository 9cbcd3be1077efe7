package services

import (
	"fmt"

	"conciliacao/server/internal/models"

	"gorm.io/gorm"
)

// ParametroService gerencia os parâmetros de conciliação.
// Parâmetros da categoria 'setup' são somente leitura.
type ParametroService struct {
	db *gorm.DB
}

// NewParametroService cria uma nova instância de ParametroService
func NewParametroService(db *gorm.DB) *ParametroService {
	return &ParametroService{db: db}
}

// GetParametros devolve os parâmetros, opcionalmente por categoria
func (s *ParametroService) GetParametros(categoria string) ([]models.Parametro, error) {
	var parametros []models.Parametro
	query := s.db.Order("chave")
	if categoria != "" {
		query = query.Where("categoria = ?", categoria)
	}
	if err := query.Find(&parametros).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar parâmetros: %w", err)
	}
	return parametros, nil
}

// GetParametroPorChave devolve um parâmetro pela chave
func (s *ParametroService) GetParametroPorChave(chave string) (*models.Parametro, error) {
	var parametro models.Parametro
	if err := s.db.First(&parametro, "chave = ?", chave).Error; err != nil {
		return nil, fmt.Errorf("parâmetro '%s' não encontrado: %w", chave, err)
	}
	return &parametro, nil
}

// CreateParametro cria um parâmetro customizado
func (s *ParametroService) CreateParametro(parametro *models.Parametro) error {
	if parametro.Chave == "" {
		return fmt.Errorf("chave do parâmetro é obrigatória")
	}
	if parametro.Categoria == "" {
		parametro.Categoria = models.ParametroCustom
	}
	if parametro.Tipo == "" {
		parametro.Tipo = models.TipoTexto
	}
	if err := parametro.ValidarValor(parametro.Valor); err != nil {
		return err
	}

	var existente models.Parametro
	if err := s.db.Where("chave = ?", parametro.Chave).First(&existente).Error; err == nil {
		return fmt.Errorf("já existe um parâmetro com a chave '%s'", parametro.Chave)
	}

	if err := s.db.Create(parametro).Error; err != nil {
		return fmt.Errorf("erro ao criar parâmetro: %w", err)
	}
	return nil
}

// UpdateParametro altera o valor de um parâmetro customizado.
// Parâmetros de setup são bloqueados com ErrSomenteLeitura.
func (s *ParametroService) UpdateParametro(id string, novoValor string) (*models.Parametro, error) {
	var parametro models.Parametro
	if err := s.db.First(&parametro, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("parâmetro com ID %s não encontrado: %w", id, err)
	}

	if parametro.Categoria == models.ParametroSetup {
		return nil, fmt.Errorf("parâmetro '%s' é de setup: %w", parametro.Chave, ErrSomenteLeitura)
	}

	if err := parametro.ValidarValor(novoValor); err != nil {
		return nil, err
	}

	if err := s.db.Model(&parametro).Update("valor", novoValor).Error; err != nil {
		return nil, fmt.Errorf("erro ao atualizar parâmetro: %w", err)
	}
	return &parametro, nil
}

// DeleteParametro exclui um parâmetro customizado
func (s *ParametroService) DeleteParametro(id string) error {
	var parametro models.Parametro
	if err := s.db.First(&parametro, "id = ?", id).Error; err != nil {
		return fmt.Errorf("parâmetro com ID %s não encontrado: %w", id, err)
	}
	if parametro.Categoria == models.ParametroSetup {
		return fmt.Errorf("parâmetro '%s' é de setup: %w", parametro.Chave, ErrSomenteLeitura)
	}
	if err := s.db.Delete(&parametro).Error; err != nil {
		return fmt.Errorf("erro ao excluir parâmetro: %w", err)
	}
	return nil
}
