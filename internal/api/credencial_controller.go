package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// CredencialController gerencia requisições HTTP de credenciais iFood
type CredencialController struct {
	credencialService *services.CredencialService
}

// NewCredencialController cria uma nova instância de CredencialController
func NewCredencialController(credencialService *services.CredencialService) *CredencialController {
	return &CredencialController{credencialService: credencialService}
}

// GetCredenciais lista as credenciais de todas as lojas com os segredos
// sempre mascarados
// GET /api/v1/credenciais
func (cc *CredencialController) GetCredenciais(c *gin.Context) {
	credenciais, err := cc.credencialService.GetCredenciais()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"credenciais": credenciais, "count": len(credenciais)})
}

// GetCredencialPorLoja devolve a credencial de uma loja para edição.
// Os segredos vêm mascarados; o valor cru nunca sai pela API.
// GET /api/v1/credenciais/:loja_id
func (cc *CredencialController) GetCredencialPorLoja(c *gin.Context) {
	lojaID := c.Param("loja_id")
	credencial, err := cc.credencialService.GetCredencialPorLoja(lojaID)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "não encontrada") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, credencial.ToMap())
}

// SalvarCredencialRequest são os campos editáveis da credencial
type SalvarCredencialRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Token        string `json:"token"`
}

// SalvarCredencial cria ou atualiza a credencial de uma loja
// PUT /api/v1/credenciais/:loja_id
func (cc *CredencialController) SalvarCredencial(c *gin.Context) {
	lojaID := c.Param("loja_id")

	var req SalvarCredencialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados da credencial inválidos", "details": err.Error()})
		return
	}

	credencial, err := cc.credencialService.SalvarCredencial(lojaID, &models.Credencial{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Token:        req.Token,
	})
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrada") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, credencial.ToMap())
}

// LimparToken descarta o token de acesso da loja, forçando nova autorização
// DELETE /api/v1/credenciais/:loja_id/token
func (cc *CredencialController) LimparToken(c *gin.Context) {
	lojaID := c.Param("loja_id")

	if err := cc.credencialService.LimparToken(lojaID); err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "não encontrada") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token descartado com sucesso"})
}
