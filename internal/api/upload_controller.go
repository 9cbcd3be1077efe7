package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/listagem"
	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// Tamanho de página do histórico de uploads
const tamanhoPaginaUploads = 10

// Limite do arquivo de vendas aceito no upload (20 MB)
const limiteArquivoUpload = 20 << 20

// UploadController gerencia o upload de planilhas de vendas e seu histórico
type UploadController struct {
	uploadService *services.UploadService
}

// NewUploadController cria uma nova instância de UploadController
func NewUploadController(uploadService *services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// ProcessarUpload recebe o arquivo de vendas (multipart, campo "arquivo") e
// o processa nas quatro etapas, emitindo o progresso via WebSocket
// POST /api/v1/uploads
func (uc *UploadController) ProcessarUpload(c *gin.Context) {
	arquivo, err := c.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo de vendas não informado", "details": err.Error()})
		return
	}
	if arquivo.Size > limiteArquivoUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo excede o limite de 20 MB"})
		return
	}

	aberto, err := arquivo.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao abrir o arquivo enviado"})
		return
	}
	defer aberto.Close()

	conteudo, err := io.ReadAll(aberto)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao ler o arquivo enviado"})
		return
	}

	var usuarioID *string
	if sessao := SessaoAtual(c); sessao.UsuarioID != "" {
		usuarioID = &sessao.UsuarioID
	}

	upload, err := uc.uploadService.ProcessarArquivo(arquivo.Filename, conteudo, usuarioID)
	if err != nil {
		// Formato não suportado é recusado antes de criar o registro
		if upload == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Falha durante o processamento: o registro existe com status erro
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "upload": upload})
		return
	}

	c.JSON(http.StatusCreated, upload)
}

// GetUploads lista o histórico de uploads com filtros, ordenação e paginação
// GET /api/v1/uploads?busca=&de=&ate=&status=&ordenar_por=&direcao=&pagina=
func (uc *UploadController) GetUploads(c *gin.Context) {
	uploads, err := uc.uploadService.GetUploads()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p := lerParametrosListagem(c)
	pipeline := listagem.NovoPipeline[models.Upload](tamanhoPaginaUploads)

	pipeline.Ordenacao.Registrar("data", listagem.Descendente, func(a, b models.Upload) int {
		return listagem.CompararData(a.CreatedAt, b.CreatedAt)
	})
	pipeline.Ordenacao.Registrar("arquivo", listagem.Ascendente, func(a, b models.Upload) int {
		return listagem.CompararTexto(a.NomeArquivo, b.NomeArquivo)
	})
	pipeline.Ordenacao.Registrar("linhas", listagem.Descendente, func(a, b models.Upload) int {
		return listagem.CompararNumero(float64(a.TotalLinhas), float64(b.TotalLinhas))
	})
	pipeline.Ordenacao.Registrar("valor", listagem.Descendente, func(a, b models.Upload) int {
		return listagem.CompararNumero(a.ValorTotal, b.ValorTotal)
	})
	pipeline.Ordenacao.Registrar("status", listagem.Ascendente, func(a, b models.Upload) int {
		return listagem.CompararTexto(string(a.Status), string(b.Status))
	})

	pipeline.DefinirItens(uploads)

	if p.Busca != "" {
		pipeline.DefinirFiltro("busca", listagem.FiltroTexto(p.Busca, func(u models.Upload) []string {
			campos := []string{u.NomeArquivo}
			if u.Usuario != nil {
				campos = append(campos, u.Usuario.Nome)
			}
			return campos
		}))
	}
	if p.De != nil || p.Ate != nil {
		pipeline.DefinirFiltro("periodo", listagem.FiltroPeriodo(p.De, p.Ate, func(u models.Upload) time.Time {
			return u.CreatedAt
		}))
	}
	pipeline.DefinirFiltro("status", listagem.FiltroPertinencia(p.Status, func(u models.Upload) string {
		return string(u.Status)
	}))

	aplicarOrdenacao(pipeline, p)
	pipeline.IrPara(p.Pagina)

	resposta := respostaListagem(pipeline)
	resposta["uploads"] = pipeline.Pagina()
	c.JSON(http.StatusOK, resposta)
}

// GetUpload devolve um upload pelo ID, com as contagens e o resumo
// GET /api/v1/uploads/:id
func (uc *UploadController) GetUpload(c *gin.Context) {
	id := c.Param("id")
	upload, err := uc.uploadService.GetUploadByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, upload)
}

// CancelarUpload cancela um upload ainda em processamento
// POST /api/v1/uploads/:id/cancelar
func (uc *UploadController) CancelarUpload(c *gin.Context) {
	id := c.Param("id")

	upload, err := uc.uploadService.CancelarUpload(id)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrado") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	BroadcastAtualizacao("upload_atualizado", upload)
	c.JSON(http.StatusOK, upload)
}
