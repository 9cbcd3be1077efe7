package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/utils"
)

const chaveContextoSessao = "sessao"

// extrairToken lê o bearer token do cabeçalho Authorization
func extrairToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	partes := strings.SplitN(auth, " ", 2)
	if len(partes) != 2 || !strings.EqualFold(partes[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(partes[1])
}

// SessaoMiddleware valida o token de sessão no Redis e injeta a sessão
// no contexto da requisição
func SessaoMiddleware(redisUtil *utils.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extrairToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessão não informada"})
			return
		}

		var sessao Sessao
		if err := redisUtil.GetJSON(chaveSessao(token), &sessao); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sessão inválida ou expirada", "redirect": "/login"})
			return
		}

		c.Set(chaveContextoSessao, sessao)
		c.Next()
	}
}

// RequirePapel restringe a rota aos papéis informados
func RequirePapel(papeis ...models.Papel) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessao := SessaoAtual(c)
		for _, p := range papeis {
			if sessao.Papel == p {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso não permitido para o seu perfil"})
	}
}

// SessaoAtual devolve a sessão colocada pelo middleware. Fora de uma rota
// protegida devolve o valor zero.
func SessaoAtual(c *gin.Context) Sessao {
	if v, ok := c.Get(chaveContextoSessao); ok {
		if s, ok := v.(Sessao); ok {
			return s
		}
	}
	return Sessao{}
}
