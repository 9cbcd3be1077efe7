package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/listagem"
	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// Tamanho de página do histórico de sincronizações
const tamanhoPaginaLotes = 10

// LoteController gerencia o histórico de lotes de sincronização
type LoteController struct {
	loteService *services.LoteService
}

// NewLoteController cria uma nova instância de LoteController
func NewLoteController(loteService *services.LoteService) *LoteController {
	return &LoteController{loteService: loteService}
}

// GetLotes lista o histórico de sincronizações com filtros, ordenação e
// paginação
// GET /api/v1/lotes?busca=&de=&ate=&status=&lojas=&ordenar_por=&direcao=&pagina=
func (lc *LoteController) GetLotes(c *gin.Context) {
	lotes, err := lc.loteService.GetLotes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p := lerParametrosListagem(c)
	pipeline := listagem.NovoPipeline[models.LoteSincronizacao](tamanhoPaginaLotes)

	pipeline.Ordenacao.Registrar("data", listagem.Descendente, func(a, b models.LoteSincronizacao) int {
		return listagem.CompararData(a.DataExecucao, b.DataExecucao)
	})
	pipeline.Ordenacao.Registrar("pedidos", listagem.Descendente, func(a, b models.LoteSincronizacao) int {
		return listagem.CompararNumero(float64(a.PedidosProcessados), float64(b.PedidosProcessados))
	})
	pipeline.Ordenacao.Registrar("duracao", listagem.Descendente, func(a, b models.LoteSincronizacao) int {
		return listagem.CompararNumero(a.DuracaoSegundos, b.DuracaoSegundos)
	})
	pipeline.Ordenacao.Registrar("status", listagem.Ascendente, func(a, b models.LoteSincronizacao) int {
		return listagem.CompararTexto(string(a.Status), string(b.Status))
	})

	pipeline.DefinirItens(lotes)

	if p.Busca != "" {
		pipeline.DefinirFiltro("busca", listagem.FiltroTexto(p.Busca, func(l models.LoteSincronizacao) []string {
			campos := []string{l.Mensagem}
			if l.Regiao != nil {
				campos = append(campos, l.Regiao.Nome)
			}
			if l.Loja != nil {
				campos = append(campos, l.Loja.Nome)
			}
			return campos
		}))
	}
	if p.De != nil || p.Ate != nil {
		pipeline.DefinirFiltro("periodo", listagem.FiltroPeriodo(p.De, p.Ate, func(l models.LoteSincronizacao) time.Time {
			return l.DataExecucao
		}))
	}
	pipeline.DefinirFiltro("status", listagem.FiltroPertinencia(p.Status, func(l models.LoteSincronizacao) string {
		return string(l.Status)
	}))
	pipeline.DefinirFiltro("lojas", listagem.FiltroPertinencia(p.Lojas, func(l models.LoteSincronizacao) string {
		if l.LojaID == nil {
			return ""
		}
		return *l.LojaID
	}))

	aplicarOrdenacao(pipeline, p)
	pipeline.IrPara(p.Pagina)

	resposta := respostaListagem(pipeline)
	resposta["lotes"] = pipeline.Pagina()
	c.JSON(http.StatusOK, resposta)
}

// GetLote devolve um lote pelo ID
// GET /api/v1/lotes/:id
func (lc *LoteController) GetLote(c *gin.Context) {
	id := c.Param("id")
	lote, err := lc.loteService.GetLoteByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lote)
}

// CancelarLote cancela um lote ainda em processamento.
// Lotes em estado terminal não mudam mais.
// POST /api/v1/lotes/:id/cancelar
func (lc *LoteController) CancelarLote(c *gin.Context) {
	id := c.Param("id")

	lote, err := lc.loteService.CancelarLote(id)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrado") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	BroadcastAtualizacao("lote_atualizado", lote)
	c.JSON(http.StatusOK, lote)
}
