package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// ParametroController gerencia requisições HTTP de parâmetros de configuração
type ParametroController struct {
	parametroService *services.ParametroService
}

// NewParametroController cria uma nova instância de ParametroController
func NewParametroController(parametroService *services.ParametroService) *ParametroController {
	return &ParametroController{parametroService: parametroService}
}

// GetParametros lista os parâmetros, com filtro opcional por categoria
// GET /api/v1/parametros?categoria=setup|custom
func (pc *ParametroController) GetParametros(c *gin.Context) {
	parametros, err := pc.parametroService.GetParametros(c.Query("categoria"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"parametros": parametros, "count": len(parametros)})
}

// CreateParametro cria um parâmetro customizado
// POST /api/v1/parametros
func (pc *ParametroController) CreateParametro(c *gin.Context) {
	var parametro models.Parametro
	if err := c.ShouldBindJSON(&parametro); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do parâmetro inválidos", "details": err.Error()})
		return
	}

	if err := pc.parametroService.CreateParametro(&parametro); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "já existe") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, parametro)
}

// AtualizarValorRequest troca somente o valor de um parâmetro
type AtualizarValorRequest struct {
	Valor string `json:"valor"`
}

// UpdateParametro atualiza o valor de um parâmetro custom.
// Parâmetros de setup são somente leitura.
// PUT /api/v1/parametros/:id
func (pc *ParametroController) UpdateParametro(c *gin.Context) {
	id := c.Param("id")

	var req AtualizarValorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do parâmetro inválidos", "details": err.Error()})
		return
	}

	parametro, err := pc.parametroService.UpdateParametro(id, req.Valor)
	if err != nil {
		if errors.Is(err, services.ErrSomenteLeitura) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrado") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, parametro)
}

// DeleteParametro exclui um parâmetro custom.
// Parâmetros de setup são somente leitura.
// DELETE /api/v1/parametros/:id
func (pc *ParametroController) DeleteParametro(c *gin.Context) {
	id := c.Param("id")

	if err := pc.parametroService.DeleteParametro(id); err != nil {
		if errors.Is(err, services.ErrSomenteLeitura) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "não encontrado") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Parâmetro excluído com sucesso"})
}
