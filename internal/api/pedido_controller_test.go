package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
)

func setupPedidoRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrir banco de teste: %v", err)
	}
	if err := db.AutoMigrate(&models.Regiao{}, &models.Loja{}, &models.Upload{}, &models.Pedido{}); err != nil {
		t.Fatalf("migrar banco de teste: %v", err)
	}

	controller := NewPedidoController(services.NewPedidoService(db), services.NewExportacaoService())

	r := gin.New()
	r.GET("/pedidos", controller.GetPedidos)
	r.GET("/pedidos/resumo", controller.GetResumo)
	r.GET("/pedidos/exportar", controller.ExportarPedidos)
	return r, db
}

func semearPedidos(t *testing.T, db *gorm.DB, qtd int) {
	t.Helper()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < qtd; i++ {
		valorIfood := 50.0
		if i%5 == 0 {
			valorIfood = 60.0 // a cada 5, um divergente
		}
		pedido := models.Pedido{
			NumeroERP:   fmt.Sprintf("%04d", i),
			NumeroIfood: fmt.Sprintf("IF-%04d", i),
			ValorERP:    50.0,
			ValorIfood:  valorIfood,
			DataPedido:  base.AddDate(0, 0, i%10),
		}
		if err := db.Create(&pedido).Error; err != nil {
			t.Fatalf("semear pedido %d: %v", i, err)
		}
	}
}

type respostaPedidos struct {
	Total        int               `json:"total"`
	Pagina       int               `json:"pagina"`
	TotalPaginas int               `json:"total_paginas"`
	Pedidos      []models.Pedido   `json:"pedidos"`
	Rotulos      []json.RawMessage `json:"rotulos"`
}

func buscarPedidos(t *testing.T, r *gin.Engine, query string) respostaPedidos {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pedidos"+query, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /pedidos%s = %d: %s", query, w.Code, w.Body.String())
	}
	var resposta respostaPedidos
	if err := json.Unmarshal(w.Body.Bytes(), &resposta); err != nil {
		t.Fatalf("decodificar resposta: %v", err)
	}
	return resposta
}

func TestGetPedidosPaginacao(t *testing.T) {
	r, db := setupPedidoRouter(t)
	semearPedidos(t, db, 25)

	resposta := buscarPedidos(t, r, "")
	if resposta.Total != 25 {
		t.Errorf("total = %d, esperava 25", resposta.Total)
	}
	if resposta.TotalPaginas != 3 {
		t.Errorf("total de páginas = %d, esperava 3", resposta.TotalPaginas)
	}
	if len(resposta.Pedidos) != 10 {
		t.Errorf("página 1 com %d pedidos, esperava 10", len(resposta.Pedidos))
	}

	ultima := buscarPedidos(t, r, "?pagina=3")
	if len(ultima.Pedidos) != 5 {
		t.Errorf("página 3 com %d pedidos, esperava 5", len(ultima.Pedidos))
	}

	// Página além do fim recebe clamp na última
	clamp := buscarPedidos(t, r, "?pagina=99")
	if clamp.Pagina != 3 {
		t.Errorf("página pedida 99 deveria virar 3, veio %d", clamp.Pagina)
	}
}

func TestGetPedidosFiltroStatus(t *testing.T) {
	r, db := setupPedidoRouter(t)
	semearPedidos(t, db, 25)

	divergentes := buscarPedidos(t, r, "?status=divergente")
	if divergentes.Total != 5 {
		t.Errorf("divergentes = %d, esperava 5", divergentes.Total)
	}
	for _, p := range divergentes.Pedidos {
		if p.Status != models.PedidoDivergente {
			t.Errorf("pedido %s com status %s no filtro de divergentes", p.NumeroERP, p.Status)
		}
	}

	// Multi-seleção vazia significa todos
	todos := buscarPedidos(t, r, "?status=")
	if todos.Total != 25 {
		t.Errorf("status vazio deveria listar todos, veio %d", todos.Total)
	}
}

func TestGetPedidosBuscaEOrdenacao(t *testing.T) {
	r, db := setupPedidoRouter(t)
	semearPedidos(t, db, 25)

	busca := buscarPedidos(t, r, "?busca=IF-0003")
	if busca.Total != 1 {
		t.Fatalf("busca por IF-0003 achou %d, esperava 1", busca.Total)
	}

	asc := buscarPedidos(t, r, "?ordenar_por=data&direcao=asc")
	desc := buscarPedidos(t, r, "?ordenar_por=data&direcao=desc")
	if len(asc.Pedidos) == 0 || len(desc.Pedidos) == 0 {
		t.Fatal("listagens vazias")
	}
	if !asc.Pedidos[0].DataPedido.Before(desc.Pedidos[0].DataPedido) {
		t.Errorf("asc começa em %v, desc em %v", asc.Pedidos[0].DataPedido, desc.Pedidos[0].DataPedido)
	}
}

func TestGetResumo(t *testing.T) {
	r, db := setupPedidoRouter(t)
	semearPedidos(t, db, 25)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pedidos/resumo", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /pedidos/resumo = %d", w.Code)
	}

	var resumo services.ResumoConciliacao
	if err := json.Unmarshal(w.Body.Bytes(), &resumo); err != nil {
		t.Fatalf("decodificar resumo: %v", err)
	}
	if resumo.Total != 25 || resumo.Divergentes != 5 || resumo.Conciliados != 20 {
		t.Errorf("resumo = %+v", resumo)
	}
}

func TestExportarPedidosAnexo(t *testing.T) {
	r, db := setupPedidoRouter(t)
	semearPedidos(t, db, 3)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pedidos/exportar", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /pedidos/exportar = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("Content-Disposition ausente")
	}
	if w.Body.Len() == 0 {
		t.Error("corpo vazio")
	}
}

func TestExtrairToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer válido", "Bearer abc123", "abc123"},
		{"caixa diferente", "bearer abc123", "abc123"},
		{"sem header", "", ""},
		{"esquema errado", "Basic abc123", ""},
		{"sem token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if got := extrairToken(c); got != tt.want {
				t.Errorf("extrairToken(%q) = %q, esperava %q", tt.header, got, tt.want)
			}
		})
	}
}
