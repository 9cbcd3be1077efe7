package services

import (
	"fmt"
	"strings"

	"conciliacao/server/internal/models"

	"gorm.io/gorm"
)

// LojaService gerencia a lógica das lojas
type LojaService struct {
	db *gorm.DB
}

// NewLojaService cria uma nova instância de LojaService
func NewLojaService(db *gorm.DB) *LojaService {
	return &LojaService{db: db}
}

// GetLojas devolve as lojas, opcionalmente filtradas por regional
func (s *LojaService) GetLojas(regiaoID *string) ([]models.Loja, error) {
	var lojas []models.Loja
	query := s.db.Preload("Regiao")

	if regiaoID != nil && *regiaoID != "" {
		query = query.Where("regiao_id = ?", *regiaoID)
	}

	if err := query.Order("nome").Find(&lojas).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar lojas: %w", err)
	}
	return lojas, nil
}

// GetLojaByID devolve uma loja pelo ID
func (s *LojaService) GetLojaByID(id string) (*models.Loja, error) {
	var loja models.Loja
	if err := s.db.Preload("Regiao").First(&loja, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("loja com ID %s não encontrada: %w", id, err)
	}
	return &loja, nil
}

// CreateLoja cria uma nova loja
func (s *LojaService) CreateLoja(loja *models.Loja) error {
	if strings.TrimSpace(loja.Nome) == "" {
		return fmt.Errorf("nome da loja é obrigatório")
	}

	// regiao_id pode ficar nulo apenas no caso de borda da criação;
	// quando informado, a regional precisa existir
	if loja.RegiaoID != nil && *loja.RegiaoID != "" {
		var regiao models.Regiao
		if err := s.db.First(&regiao, "id = ?", *loja.RegiaoID).Error; err != nil {
			return fmt.Errorf("regional com ID %s não encontrada: %w", *loja.RegiaoID, err)
		}
	}

	if err := s.db.Create(loja).Error; err != nil {
		return fmt.Errorf("erro ao criar loja: %w", err)
	}
	return nil
}

// UpdateLoja atualiza uma loja existente
func (s *LojaService) UpdateLoja(id string, atualizada *models.Loja) error {
	var loja models.Loja
	if err := s.db.First(&loja, "id = ?", id).Error; err != nil {
		return fmt.Errorf("loja com ID %s não encontrada: %w", id, err)
	}

	if atualizada.RegiaoID != nil && *atualizada.RegiaoID != "" {
		var regiao models.Regiao
		if err := s.db.First(&regiao, "id = ?", *atualizada.RegiaoID).Error; err != nil {
			return fmt.Errorf("regional com ID %s não encontrada: %w", *atualizada.RegiaoID, err)
		}
	}

	if err := s.db.Model(&loja).Updates(atualizada).Error; err != nil {
		return fmt.Errorf("erro ao atualizar loja: %w", err)
	}
	return nil
}

// DeleteLoja exclui uma loja; bloqueia quando há usuários ou pedidos vinculados
func (s *LojaService) DeleteLoja(id string) error {
	var loja models.Loja
	if err := s.db.First(&loja, "id = ?", id).Error; err != nil {
		return fmt.Errorf("loja com ID %s não encontrada: %w", id, err)
	}

	var usuarios int64
	if err := s.db.Model(&models.Usuario{}).Where("loja_id = ?", id).Count(&usuarios).Error; err != nil {
		return fmt.Errorf("erro ao verificar usuários da loja: %w", err)
	}
	if usuarios > 0 {
		return fmt.Errorf("loja '%s' tem %d usuário(s) vinculado(s): %w", loja.Nome, usuarios, ErrIntegridadeReferencial)
	}

	var pedidos int64
	if err := s.db.Model(&models.Pedido{}).Where("loja_id = ?", id).Count(&pedidos).Error; err != nil {
		return fmt.Errorf("erro ao verificar pedidos da loja: %w", err)
	}
	if pedidos > 0 {
		return fmt.Errorf("loja '%s' tem %d pedido(s) na base: %w", loja.Nome, pedidos, ErrIntegridadeReferencial)
	}

	// A credencial da loja cai junto (exclusão lógica)
	if err := s.db.Where("loja_id = ?", id).Delete(&models.Credencial{}).Error; err != nil {
		return fmt.Errorf("erro ao excluir credencial da loja: %w", err)
	}

	if err := s.db.Delete(&loja).Error; err != nil {
		return fmt.Errorf("erro ao excluir loja: %w", err)
	}
	return nil
}
