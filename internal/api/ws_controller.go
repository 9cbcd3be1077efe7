package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS já é tratado no middleware HTTP
	},
}

// ServeProgressoWS atende as conexões WebSocket dos painéis que acompanham
// o progresso de uploads e as atualizações de lote em tempo real
func ServeProgressoWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ Erro ao abrir conexão WebSocket: %v", err)
		return
	}

	ProgressoHub.AddClient(conn)
	log.Printf("🖥️ Painel conectado. Total de conexões: %d", ProgressoHub.GetClientsCount())

	defer func() {
		ProgressoHub.RemoveClient(conn)
		log.Printf("🖥️ Painel desconectado. Conexões restantes: %d", ProgressoHub.GetClientsCount())
	}()

	// Lê mensagens do cliente (ping/pong para manter a conexão viva)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ Erro no WebSocket do painel: %v", err)
			}
			break
		}
	}
}

// BroadcastAtualizacao envia uma atualização tipada a todos os painéis
func BroadcastAtualizacao(tipo string, dados interface{}) {
	atualizacao := map[string]interface{}{
		"type":      tipo,
		"data":      dados,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(atualizacao)
	if err != nil {
		log.Printf("⚠️ Erro ao serializar atualização: %v", err)
		return
	}

	ProgressoHub.BroadcastMessage(jsonData)
}
