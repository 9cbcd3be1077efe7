package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

// UsuarioController gerencia requisições HTTP de usuários do painel
type UsuarioController struct {
	usuarioService *services.UsuarioService
}

// NewUsuarioController cria uma nova instância de UsuarioController
func NewUsuarioController(usuarioService *services.UsuarioService) *UsuarioController {
	return &UsuarioController{usuarioService: usuarioService}
}

// GetUsuarios lista todos os usuários com seus vínculos
// GET /api/v1/usuarios
func (uc *UsuarioController) GetUsuarios(c *gin.Context) {
	usuarios, err := uc.usuarioService.GetUsuarios()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"usuarios": usuarios, "count": len(usuarios)})
}

// GetUsuario devolve um usuário pelo ID
// GET /api/v1/usuarios/:id
func (uc *UsuarioController) GetUsuario(c *gin.Context) {
	id := c.Param("id")
	usuario, err := uc.usuarioService.GetUsuarioByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usuario)
}

// CreateUsuario cria um usuário com login (rota privilegiada)
// POST /api/v1/usuarios
func (uc *UsuarioController) CreateUsuario(c *gin.Context) {
	var req services.NovoUsuario
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do usuário inválidos", "details": err.Error()})
		return
	}

	usuario, err := uc.usuarioService.CreateUsuario(&req)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "já cadastrado") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, usuario)
}

// UpdateUsuario atualiza nome, papel e vínculos de um usuário
// PUT /api/v1/usuarios/:id
func (uc *UsuarioController) UpdateUsuario(c *gin.Context) {
	id := c.Param("id")

	var usuario models.Usuario
	if err := c.ShouldBindJSON(&usuario); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados do usuário inválidos", "details": err.Error()})
		return
	}

	if err := uc.usuarioService.UpdateUsuario(id, &usuario); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "não encontrado") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	atualizado, err := uc.usuarioService.GetUsuarioByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, atualizado)
}

// DeleteUsuario exclui um usuário. A própria sessão não pode se excluir.
// DELETE /api/v1/usuarios/:id
func (uc *UsuarioController) DeleteUsuario(c *gin.Context) {
	id := c.Param("id")

	if SessaoAtual(c).UsuarioID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Não é possível excluir o próprio usuário"})
		return
	}

	if err := uc.usuarioService.DeleteUsuario(id); err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "não encontrado") {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuário excluído com sucesso"})
}
