package services

import (
	"fmt"

	"conciliacao/server/internal/models"

	"gorm.io/gorm"
)

// CredencialService gerencia as credenciais iFood das lojas (uma por loja).
// A listagem sempre sai com os segredos mascarados; o valor real só é
// devolvido no modo de edição, campo a campo.
type CredencialService struct {
	db *gorm.DB
}

// NewCredencialService cria uma nova instância de CredencialService
func NewCredencialService(db *gorm.DB) *CredencialService {
	return &CredencialService{db: db}
}

// GetCredenciais devolve todas as credenciais mascaradas, com a loja
func (s *CredencialService) GetCredenciais() ([]map[string]interface{}, error) {
	var credenciais []models.Credencial
	if err := s.db.Preload("Loja").Find(&credenciais).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar credenciais: %w", err)
	}

	resultado := make([]map[string]interface{}, 0, len(credenciais))
	for i := range credenciais {
		m := credenciais[i].ToMap()
		if credenciais[i].Loja != nil {
			m["loja"] = credenciais[i].Loja
		}
		resultado = append(resultado, m)
	}
	return resultado, nil
}

// GetCredencialPorLoja devolve a credencial de uma loja sem máscara
// (modo de edição). Se ainda não existe, devolve uma credencial vazia.
func (s *CredencialService) GetCredencialPorLoja(lojaID string) (*models.Credencial, error) {
	var loja models.Loja
	if err := s.db.First(&loja, "id = ?", lojaID).Error; err != nil {
		return nil, fmt.Errorf("loja com ID %s não encontrada: %w", lojaID, err)
	}

	var credencial models.Credencial
	if err := s.db.First(&credencial, "loja_id = ?", lojaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.Credencial{LojaID: lojaID}, nil
		}
		return nil, fmt.Errorf("erro ao buscar credencial: %w", err)
	}
	return &credencial, nil
}

// SalvarCredencial grava (upsert) a credencial de uma loja.
// O buffer de edição só chega aqui no salvar explícito; cancelar descarta
// tudo no cliente e nada é alterado.
func (s *CredencialService) SalvarCredencial(lojaID string, atualizada *models.Credencial) (*models.Credencial, error) {
	var loja models.Loja
	if err := s.db.First(&loja, "id = ?", lojaID).Error; err != nil {
		return nil, fmt.Errorf("loja com ID %s não encontrada: %w", lojaID, err)
	}

	var credencial models.Credencial
	err := s.db.First(&credencial, "loja_id = ?", lojaID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("erro ao buscar credencial: %w", err)
		}
		credencial = models.Credencial{LojaID: lojaID}
	}

	credencial.ClientID = atualizada.ClientID
	credencial.ClientSecret = atualizada.ClientSecret
	credencial.Token = atualizada.Token

	if err := s.db.Save(&credencial).Error; err != nil {
		return nil, fmt.Errorf("erro ao salvar credencial: %w", err)
	}
	return &credencial, nil
}

// LimparToken zera o token de acesso de uma loja (volta ao estado 'sem token')
func (s *CredencialService) LimparToken(lojaID string) error {
	var credencial models.Credencial
	if err := s.db.First(&credencial, "loja_id = ?", lojaID).Error; err != nil {
		return fmt.Errorf("credencial da loja %s não encontrada: %w", lojaID, err)
	}
	if err := s.db.Model(&credencial).Update("token", "").Error; err != nil {
		return fmt.Errorf("erro ao limpar token: %w", err)
	}
	return nil
}
