// Package listagem implementa o pipeline de listagem usado por todas as
// telas de gestão: filtros ativos (E lógico) -> ordenação -> fatiamento em
// páginas. As mesmas regras valem para pedidos, lotes e histórico de uploads.
package listagem

import (
	"strings"
	"time"
)

// Predicado decide se um registro passa por um filtro ativo
type Predicado[T any] func(item T) bool

// FiltroTexto faz busca por substring, sem diferenciar maiúsculas, sobre a
// concatenação dos campos configurados. Termo vazio aceita tudo.
func FiltroTexto[T any](termo string, campos func(item T) []string) Predicado[T] {
	termo = strings.ToLower(strings.TrimSpace(termo))
	return func(item T) bool {
		if termo == "" {
			return true
		}
		alvo := strings.ToLower(strings.Join(campos(item), " "))
		return strings.Contains(alvo, termo)
	}
}

// FiltroPeriodo filtra por intervalo de datas inclusivo: o limite inferior é
// o início do dia de 'de' e o superior é 23:59:59.999 do dia de 'ate'.
// Qualquer um dos lados pode ser nulo, desligando aquele limite.
func FiltroPeriodo[T any](de, ate *time.Time, dataDe func(item T) time.Time) Predicado[T] {
	var inicio, fim time.Time
	if de != nil {
		inicio = time.Date(de.Year(), de.Month(), de.Day(), 0, 0, 0, 0, de.Location())
	}
	if ate != nil {
		fim = time.Date(ate.Year(), ate.Month(), ate.Day(), 23, 59, 59, 999000000, ate.Location())
	}
	return func(item T) bool {
		t := dataDe(item)
		if de != nil && t.Before(inicio) {
			return false
		}
		if ate != nil && t.After(fim) {
			return false
		}
		return true
	}
}

// FiltroIgualdade compara exatamente com o valor selecionado.
// String vazia é a sentinela "todos" e desliga o filtro.
func FiltroIgualdade[T any](valor string, campo func(item T) string) Predicado[T] {
	return func(item T) bool {
		if valor == "" {
			return true
		}
		return campo(item) == valor
	}
}

// FiltroPertinencia aceita registros cujo campo está na seleção.
// Seleção vazia significa "todos", nunca "nenhum" — é o padrão de UX das
// telas com multi-seleção de lojas.
func FiltroPertinencia[T any](selecao []string, campo func(item T) string) Predicado[T] {
	conjunto := make(map[string]struct{}, len(selecao))
	for _, s := range selecao {
		conjunto[s] = struct{}{}
	}
	return func(item T) bool {
		if len(conjunto) == 0 {
			return true
		}
		_, ok := conjunto[campo(item)]
		return ok
	}
}

// AplicarFiltros devolve os registros que passam por todos os filtros (E lógico)
func AplicarFiltros[T any](itens []T, filtros ...Predicado[T]) []T {
	resultado := make([]T, 0, len(itens))
	for _, item := range itens {
		aceito := true
		for _, f := range filtros {
			if !f(item) {
				aceito = false
				break
			}
		}
		if aceito {
			resultado = append(resultado, item)
		}
	}
	return resultado
}
