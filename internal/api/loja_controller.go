package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// LojaController gerencia requisições HTTP de lojas
type LojaController struct {
	lojaService *services.LojaService
}

// NewLojaController cria uma nova instância de LojaController
func NewLojaController(lojaService *services.LojaService) *LojaController {
	return &LojaController{lojaService: lojaService}
}

// GetLojas lista as lojas, com filtro opcional por regional
// GET /api/v1/lojas?regiao_id=...
func (lc *LojaController) GetLojas(c *gin.Context) {
	var regiaoID *string
	if v := c.Query("regiao_id"); v != "" {
		regiaoID = &v
	}

	// Usuário regional só enxerga as lojas da sua regional
	sessao := SessaoAtual(c)
	if sessao.Papel == models.PapelRegional && sessao.RegiaoID != nil {
		regiaoID = sessao.RegiaoID
	}

	lojas, err := lc.lojaService.GetLojas(regiaoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lojas": lojas, "count": len(lojas)})
}

// GetLoja devolve uma loja pelo ID
// GET /api/v1/lojas/:id
func (lc *LojaController) GetLoja(c *gin.Context) {
	id := c.Param("id")
	loja, err := lc.lojaService.GetLojaByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loja)
}

// CreateLoja cria uma nova loja
// POST /api/v1/lojas
func (lc *LojaController) CreateLoja(c *gin.Context) {
	var loja models.Loja
	if err := c.ShouldBindJSON(&loja); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da loja inválidos", "details": err.Error()})
		return
	}

	if err := lc.lojaService.CreateLoja(&loja); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "já existe") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, loja)
}

// UpdateLoja atualiza uma loja
// PUT /api/v1/lojas/:id
func (lc *LojaController) UpdateLoja(c *gin.Context) {
	id := c.Param("id")

	var loja models.Loja
	if err := c.ShouldBindJSON(&loja); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da loja inválidos", "details": err.Error()})
		return
	}

	if err := lc.lojaService.UpdateLoja(id, &loja); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrada") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	atualizada, err := lc.lojaService.GetLojaByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, atualizada)
}

// DeleteLoja exclui uma loja sem usuários ou pedidos vinculados
// DELETE /api/v1/lojas/:id
func (lc *LojaController) DeleteLoja(c *gin.Context) {
	id := c.Param("id")

	if err := lc.lojaService.DeleteLoja(id); err != nil {
		if errors.Is(err, services.ErrIntegridadeReferencial) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "não encontrada") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loja excluída com sucesso"})
}
