package services

import (
	"fmt"
	"strings"

	"conciliacao/server/internal/models"

	"gorm.io/gorm"
)

// RegiaoService gerencia a lógica das regionais
type RegiaoService struct {
	db *gorm.DB
}

// NewRegiaoService cria uma nova instância de RegiaoService
func NewRegiaoService(db *gorm.DB) *RegiaoService {
	return &RegiaoService{db: db}
}

// GetRegioes devolve todas as regionais com suas lojas
func (s *RegiaoService) GetRegioes() ([]models.Regiao, error) {
	var regioes []models.Regiao
	if err := s.db.Preload("Lojas").Order("nome").Find(&regioes).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar regionais: %w", err)
	}
	return regioes, nil
}

// GetRegiaoByID devolve uma regional pelo ID
func (s *RegiaoService) GetRegiaoByID(id string) (*models.Regiao, error) {
	var regiao models.Regiao
	if err := s.db.Preload("Lojas").First(&regiao, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("regional com ID %s não encontrada: %w", id, err)
	}
	return &regiao, nil
}

// CreateRegiao cria uma nova regional
func (s *RegiaoService) CreateRegiao(regiao *models.Regiao) error {
	if err := validarNomeRegiao(regiao.Nome); err != nil {
		return err
	}

	var existente models.Regiao
	if err := s.db.Where("nome = ?", regiao.Nome).First(&existente).Error; err == nil {
		return fmt.Errorf("já existe uma regional com o nome '%s'", regiao.Nome)
	}

	if err := s.db.Create(regiao).Error; err != nil {
		return fmt.Errorf("erro ao criar regional: %w", err)
	}
	return nil
}

// UpdateRegiao atualiza uma regional existente
func (s *RegiaoService) UpdateRegiao(id string, atualizada *models.Regiao) error {
	var regiao models.Regiao
	if err := s.db.First(&regiao, "id = ?", id).Error; err != nil {
		return fmt.Errorf("regional com ID %s não encontrada: %w", id, err)
	}

	if err := validarNomeRegiao(atualizada.Nome); err != nil {
		return err
	}

	var existente models.Regiao
	if err := s.db.Where("nome = ? AND id <> ?", atualizada.Nome, id).First(&existente).Error; err == nil {
		return fmt.Errorf("já existe uma regional com o nome '%s'", atualizada.Nome)
	}

	if err := s.db.Model(&regiao).Update("nome", atualizada.Nome).Error; err != nil {
		return fmt.Errorf("erro ao atualizar regional: %w", err)
	}
	return nil
}

// DeleteRegiao exclui uma regional; bloqueia quando ainda há lojas vinculadas
func (s *RegiaoService) DeleteRegiao(id string) error {
	var regiao models.Regiao
	if err := s.db.First(&regiao, "id = ?", id).Error; err != nil {
		return fmt.Errorf("regional com ID %s não encontrada: %w", id, err)
	}

	var lojas int64
	if err := s.db.Model(&models.Loja{}).Where("regiao_id = ?", id).Count(&lojas).Error; err != nil {
		return fmt.Errorf("erro ao verificar lojas da regional: %w", err)
	}
	if lojas > 0 {
		return fmt.Errorf("regional '%s' tem %d loja(s) vinculada(s): %w", regiao.Nome, lojas, ErrIntegridadeReferencial)
	}

	if err := s.db.Delete(&regiao).Error; err != nil {
		return fmt.Errorf("erro ao excluir regional: %w", err)
	}
	return nil
}

func validarNomeRegiao(nome string) error {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return fmt.Errorf("nome da regional é obrigatório")
	}
	if len([]rune(nome)) > 100 {
		return fmt.Errorf("nome da regional deve ter no máximo 100 caracteres")
	}
	return nil
}
