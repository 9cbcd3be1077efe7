package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// RegiaoController gerencia requisições HTTP de regionais
type RegiaoController struct {
	regiaoService *services.RegiaoService
}

// NewRegiaoController cria uma nova instância de RegiaoController
func NewRegiaoController(regiaoService *services.RegiaoService) *RegiaoController {
	return &RegiaoController{regiaoService: regiaoService}
}

// GetRegioes lista todas as regionais
// GET /api/v1/regioes
func (rc *RegiaoController) GetRegioes(c *gin.Context) {
	regioes, err := rc.regiaoService.GetRegioes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"regioes": regioes, "count": len(regioes)})
}

// GetRegiao devolve uma regional pelo ID
// GET /api/v1/regioes/:id
func (rc *RegiaoController) GetRegiao(c *gin.Context) {
	id := c.Param("id")
	regiao, err := rc.regiaoService.GetRegiaoByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, regiao)
}

// CreateRegiao cria uma nova regional
// POST /api/v1/regioes
func (rc *RegiaoController) CreateRegiao(c *gin.Context) {
	var regiao models.Regiao
	if err := c.ShouldBindJSON(&regiao); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da regional inválidos", "details": err.Error()})
		return
	}

	if err := rc.regiaoService.CreateRegiao(&regiao); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "já existe") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, regiao)
}

// UpdateRegiao atualiza uma regional
// PUT /api/v1/regioes/:id
func (rc *RegiaoController) UpdateRegiao(c *gin.Context) {
	id := c.Param("id")

	var regiao models.Regiao
	if err := c.ShouldBindJSON(&regiao); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da regional inválidos", "details": err.Error()})
		return
	}

	if err := rc.regiaoService.UpdateRegiao(id, &regiao); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrada") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	atualizada, err := rc.regiaoService.GetRegiaoByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, atualizada)
}

// DeleteRegiao exclui uma regional sem lojas vinculadas
// DELETE /api/v1/regioes/:id
func (rc *RegiaoController) DeleteRegiao(c *gin.Context) {
	id := c.Param("id")

	if err := rc.regiaoService.DeleteRegiao(id); err != nil {
		// Exclusão bloqueada por vínculo devolve 409 com a causa
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
	c.JSON(http.StatusOK, gin.H{"message": "Regional excluída com sucesso"})
}
