package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conciliacao/server/internal/listagem"
)

// Formato das datas de filtro vindas da query string
const formatoDataQuery = "2006-01-02"

// parametrosListagem são os parâmetros comuns das telas de listagem
type parametrosListagem struct {
	Busca      string
	De         *time.Time
	Ate        *time.Time
	Status     []string
	Lojas      []string
	OrdenarPor string
	Direcao    *listagem.Direcao
	Pagina     int
}

// lerParametrosListagem interpreta a query string de uma tela de listagem.
// Parâmetros ausentes ficam com o valor zero (filtro desligado).
func lerParametrosListagem(c *gin.Context) parametrosListagem {
	p := parametrosListagem{
		Busca:      strings.TrimSpace(c.Query("busca")),
		Status:     lerLista(c.Query("status")),
		Lojas:      lerLista(c.Query("lojas")),
		OrdenarPor: c.Query("ordenar_por"),
		Pagina:     1,
	}

	if v := c.Query("de"); v != "" {
		if t, err := time.Parse(formatoDataQuery, v); err == nil {
			p.De = &t
		}
	}
	if v := c.Query("ate"); v != "" {
		if t, err := time.Parse(formatoDataQuery, v); err == nil {
			p.Ate = &t
		}
	}
	switch c.Query("direcao") {
	case "asc":
		d := listagem.Ascendente
		p.Direcao = &d
	case "desc":
		d := listagem.Descendente
		p.Direcao = &d
	}
	if v, err := strconv.Atoi(c.Query("pagina")); err == nil {
		p.Pagina = v // o clamp fica com o paginador
	}

	return p
}

// lerLista separa um parâmetro multivalorado ("a,b,c"), descartando vazios
func lerLista(valor string) []string {
	if valor == "" {
		return nil
	}
	var itens []string
	for _, parte := range strings.Split(valor, ",") {
		if parte = strings.TrimSpace(parte); parte != "" {
			itens = append(itens, parte)
		}
	}
	return itens
}

// aplicarOrdenacao seleciona campo e direção no pipeline, se informados
func aplicarOrdenacao[T any](pipeline *listagem.Pipeline[T], p parametrosListagem) {
	if p.OrdenarPor == "" {
		return
	}
	if p.Direcao != nil {
		pipeline.OrdenarCom(p.OrdenarPor, *p.Direcao)
	} else {
		pipeline.Ordenar(p.OrdenarPor)
	}
}

// respostaListagem monta o envelope comum das telas de listagem
func respostaListagem[T any](pipeline *listagem.Pipeline[T]) gin.H {
	return gin.H{
		"total":         pipeline.TotalFiltrado(),
		"pagina":        pipeline.Paginador.PaginaAtual,
		"total_paginas": pipeline.Paginador.TotalPaginas(),
		"rotulos":       pipeline.Rotulos(),
	}
}
