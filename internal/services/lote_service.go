package services

import (
	"fmt"
	"time"

	"conciliacao/server/internal/models"

	"gorm.io/gorm"
)

// LoteService gerencia os lotes de sincronização alimentados pelos jobs
// externos de integração iFood
type LoteService struct {
	db *gorm.DB
}

// NewLoteService cria uma nova instância de LoteService
func NewLoteService(db *gorm.DB) *LoteService {
	return &LoteService{db: db}
}

// ResultadoLote é o evento consumido do tópico de sincronização
type ResultadoLote struct {
	LoteID             string  `json:"lote_id"`
	RegiaoID           *string `json:"regiao_id"`
	LojaID             *string `json:"loja_id"`
	DataExecucao       string  `json:"data_execucao"` // RFC3339
	Status             string  `json:"status"`
	PedidosProcessados int     `json:"pedidos_processados"`
	Erros              int     `json:"erros"`
	DuracaoSegundos    float64 `json:"duracao_segundos"`
	Mensagem           string  `json:"mensagem"`
}

// GetLotes devolve todos os lotes com regional e loja
func (s *LoteService) GetLotes() ([]models.LoteSincronizacao, error) {
	var lotes []models.LoteSincronizacao
	if err := s.db.Preload("Regiao").Preload("Loja").Order("data_execucao desc").Find(&lotes).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar lotes: %w", err)
	}
	return lotes, nil
}

// GetLoteByID devolve um lote pelo ID
func (s *LoteService) GetLoteByID(id string) (*models.LoteSincronizacao, error) {
	var lote models.LoteSincronizacao
	if err := s.db.Preload("Regiao").Preload("Loja").First(&lote, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("lote com ID %s não encontrado: %w", id, err)
	}
	return &lote, nil
}

// RegistrarResultado grava (ou atualiza) um lote a partir do evento do job
// de sincronização. Eventos com lote_id conhecido atualizam o lote em
// andamento respeitando a máquina de estados.
func (s *LoteService) RegistrarResultado(evento *ResultadoLote) (*models.LoteSincronizacao, error) {
	status := models.StatusLote(evento.Status)
	switch status {
	case models.LoteSucesso, models.LoteErro, models.LoteProcessando, models.LoteCancelado:
	default:
		return nil, fmt.Errorf("status de lote inválido: '%s'", evento.Status)
	}

	dataExecucao := time.Now().UTC()
	if evento.DataExecucao != "" {
		t, err := time.Parse(time.RFC3339, evento.DataExecucao)
		if err != nil {
			return nil, fmt.Errorf("data_execucao inválida '%s': %w", evento.DataExecucao, err)
		}
		dataExecucao = t
	}

	if evento.LoteID != "" {
		var existente models.LoteSincronizacao
		if err := s.db.First(&existente, "id = ?", evento.LoteID).Error; err == nil {
			return s.atualizarLote(&existente, status, evento)
		}
	}

	lote := &models.LoteSincronizacao{
		ID:                 evento.LoteID,
		RegiaoID:           evento.RegiaoID,
		LojaID:             evento.LojaID,
		DataExecucao:       dataExecucao,
		Status:             status,
		PedidosProcessados: evento.PedidosProcessados,
		Erros:              evento.Erros,
		DuracaoSegundos:    evento.DuracaoSegundos,
		Mensagem:           evento.Mensagem,
	}
	if err := s.db.Create(lote).Error; err != nil {
		return nil, fmt.Errorf("erro ao registrar lote: %w", err)
	}
	return lote, nil
}

func (s *LoteService) atualizarLote(lote *models.LoteSincronizacao, novo models.StatusLote, evento *ResultadoLote) (*models.LoteSincronizacao, error) {
	if lote.Status != novo && !lote.PodeTransicionarPara(novo) {
		return nil, fmt.Errorf("transição de status inválida: %s -> %s", lote.Status, novo)
	}

	atualizacao := map[string]interface{}{
		"status":              novo,
		"pedidos_processados": evento.PedidosProcessados,
		"erros":               evento.Erros,
		"duracao_segundos":    evento.DuracaoSegundos,
	}
	if evento.Mensagem != "" {
		atualizacao["mensagem"] = evento.Mensagem
	}
	if err := s.db.Model(lote).Updates(atualizacao).Error; err != nil {
		return nil, fmt.Errorf("erro ao atualizar lote: %w", err)
	}
	return lote, nil
}

// CancelarLote cancela um lote ainda em processamento (ação explícita do
// usuário, após diálogo de confirmação no painel)
func (s *LoteService) CancelarLote(id string) (*models.LoteSincronizacao, error) {
	var lote models.LoteSincronizacao
	if err := s.db.First(&lote, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("lote com ID %s não encontrado: %w", id, err)
	}

	if !lote.PodeTransicionarPara(models.LoteCancelado) {
		return nil, fmt.Errorf("lote com status '%s' não pode ser cancelado", lote.Status)
	}

	if err := s.db.Model(&lote).Update("status", models.LoteCancelado).Error; err != nil {
		return nil, fmt.Errorf("erro ao cancelar lote: %w", err)
	}
	lote.Status = models.LoteCancelado
	return &lote, nil
}
