package services

import (
	"fmt"

	"conciliacao/server/internal/models"

	"gorm.io/gorm"
)

// PedidoService gerencia a base de pedidos da conciliação
type PedidoService struct {
	db *gorm.DB
}

// NewPedidoService cria uma nova instância de PedidoService
func NewPedidoService(db *gorm.DB) *PedidoService {
	return &PedidoService{db: db}
}

// GetPedidos devolve a base de pedidos com a loja carregada.
// Filtragem, ordenação e paginação ficam no pipeline de listagem do
// controller; aqui só há o recorte por regional/loja do usuário logado.
func (s *PedidoService) GetPedidos(regiaoID, lojaID *string) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	query := s.db.Preload("Loja")

	if lojaID != nil && *lojaID != "" {
		query = query.Where("loja_id = ?", *lojaID)
	} else if regiaoID != nil && *regiaoID != "" {
		query = query.Where("loja_id IN (?)",
			s.db.Model(&models.Loja{}).Select("id").Where("regiao_id = ?", *regiaoID))
	}

	if err := query.Order("data_pedido desc").Find(&pedidos).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	return pedidos, nil
}

// GetPedidoByID devolve um pedido pelo ID
func (s *PedidoService) GetPedidoByID(id string) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := s.db.Preload("Loja").First(&pedido, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("pedido com ID %s não encontrado: %w", id, err)
	}
	return &pedido, nil
}

// ResumoConciliacao agrega a base por status de conciliação
type ResumoConciliacao struct {
	Total      int64   `json:"total"`
	Conciliados int64  `json:"conciliados"`
	Divergentes int64  `json:"divergentes"`
	SemPar     int64   `json:"sem_par"`
	ValorERP   float64 `json:"valor_erp"`
	ValorIfood float64 `json:"valor_ifood"`
}

// GetResumo agrega os totais da base para o dashboard
func (s *PedidoService) GetResumo(regiaoID, lojaID *string) (*ResumoConciliacao, error) {
	pedidos, err := s.GetPedidos(regiaoID, lojaID)
	if err != nil {
		return nil, err
	}

	resumo := &ResumoConciliacao{}
	for i := range pedidos {
		resumo.Total++
		resumo.ValorERP += pedidos[i].ValorERP
		resumo.ValorIfood += pedidos[i].ValorIfood
		switch pedidos[i].Status {
		case models.PedidoConciliado:
			resumo.Conciliados++
		case models.PedidoDivergente:
			resumo.Divergentes++
		case models.PedidoSemPar:
			resumo.SemPar++
		}
	}
	return resumo, nil
}
