package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/listagem"
	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// Tamanho de página da base de pedidos
const tamanhoPaginaPedidos = 10

// PedidoController gerencia a base de pedidos: listagem, resumo e exportação
type PedidoController struct {
	pedidoService     *services.PedidoService
	exportacaoService *services.ExportacaoService
}

// NewPedidoController cria uma nova instância de PedidoController
func NewPedidoController(pedidoService *services.PedidoService, exportacaoService *services.ExportacaoService) *PedidoController {
	return &PedidoController{
		pedidoService:     pedidoService,
		exportacaoService: exportacaoService,
	}
}

// escopoSessao limita a consulta ao vínculo do papel da sessão:
// regional enxerga a sua regional, loja enxerga a sua loja
func escopoSessao(c *gin.Context) (regiaoID, lojaID *string) {
	sessao := SessaoAtual(c)
	switch sessao.Papel {
	case models.PapelRegional:
		regiaoID = sessao.RegiaoID
	case models.PapelLoja:
		lojaID = sessao.LojaID
	}
	return regiaoID, lojaID
}

// montarPipelinePedidos monta o pipeline de listagem da base de pedidos a
// partir da query string
func montarPipelinePedidos(pedidos []models.Pedido, p parametrosListagem) *listagem.Pipeline[models.Pedido] {
	pipeline := listagem.NovoPipeline[models.Pedido](tamanhoPaginaPedidos)

	pipeline.Ordenacao.Registrar("data", listagem.Descendente, func(a, b models.Pedido) int {
		return listagem.CompararData(a.DataPedido, b.DataPedido)
	})
	pipeline.Ordenacao.Registrar("valor_erp", listagem.Descendente, func(a, b models.Pedido) int {
		return listagem.CompararNumero(a.ValorERP, b.ValorERP)
	})
	pipeline.Ordenacao.Registrar("valor_ifood", listagem.Descendente, func(a, b models.Pedido) int {
		return listagem.CompararNumero(a.ValorIfood, b.ValorIfood)
	})
	pipeline.Ordenacao.Registrar("loja", listagem.Ascendente, func(a, b models.Pedido) int {
		return listagem.CompararTexto(nomeLoja(a), nomeLoja(b))
	})
	pipeline.Ordenacao.Registrar("status", listagem.Ascendente, func(a, b models.Pedido) int {
		return listagem.CompararTexto(string(a.Status), string(b.Status))
	})

	pipeline.DefinirItens(pedidos)

	if p.Busca != "" {
		pipeline.DefinirFiltro("busca", listagem.FiltroTexto(p.Busca, func(pd models.Pedido) []string {
			return []string{pd.NumeroERP, pd.NumeroIfood, nomeLoja(pd)}
		}))
	}
	if p.De != nil || p.Ate != nil {
		pipeline.DefinirFiltro("periodo", listagem.FiltroPeriodo(p.De, p.Ate, func(pd models.Pedido) time.Time {
			return pd.DataPedido
		}))
	}
	pipeline.DefinirFiltro("status", listagem.FiltroPertinencia(p.Status, func(pd models.Pedido) string {
		return string(pd.Status)
	}))
	pipeline.DefinirFiltro("lojas", listagem.FiltroPertinencia(p.Lojas, func(pd models.Pedido) string {
		if pd.LojaID == nil {
			return ""
		}
		return *pd.LojaID
	}))

	aplicarOrdenacao(pipeline, p)
	pipeline.IrPara(p.Pagina)
	return pipeline
}

func nomeLoja(p models.Pedido) string {
	if p.Loja == nil {
		return ""
	}
	return p.Loja.Nome
}

// GetPedidos lista a base de pedidos com filtros, ordenação e paginação
// GET /api/v1/pedidos?busca=&de=&ate=&status=&lojas=&ordenar_por=&direcao=&pagina=
func (pc *PedidoController) GetPedidos(c *gin.Context) {
	regiaoID, lojaID := escopoSessao(c)
	pedidos, err := pc.pedidoService.GetPedidos(regiaoID, lojaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pipeline := montarPipelinePedidos(pedidos, lerParametrosListagem(c))

	resposta := respostaListagem(pipeline)
	resposta["pedidos"] = pipeline.Pagina()
	c.JSON(http.StatusOK, resposta)
}

// GetResumo agrega a base por status para os cards do dashboard
// GET /api/v1/pedidos/resumo
func (pc *PedidoController) GetResumo(c *gin.Context) {
	regiaoID, lojaID := escopoSessao(c)
	resumo, err := pc.pedidoService.GetResumo(regiaoID, lojaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resumo)
}

// ExportarPedidos gera o XLSX do conjunto filtrado inteiro (todas as
// páginas) e devolve como anexo
// GET /api/v1/pedidos/exportar?busca=&de=&ate=&status=&lojas=
func (pc *PedidoController) ExportarPedidos(c *gin.Context) {
	regiaoID, lojaID := escopoSessao(c)
	pedidos, err := pc.pedidoService.GetPedidos(regiaoID, lojaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pipeline := montarPipelinePedidos(pedidos, lerParametrosListagem(c))
	filtrados := pipeline.Filtrados()
	pipeline.Ordenacao.Aplicar(filtrados)

	buffer, nomeArquivo, err := pc.exportacaoService.ExportarPedidos(filtrados)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nomeArquivo))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}
