package listagem

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direcao define o sentido da ordenação; o sinal multiplica o comparador
type Direcao int

const (
	Ascendente  Direcao = 1
	Descendente Direcao = -1
)

// Comparador impõe ordem total entre dois registros para um campo
type Comparador[T any] func(a, b T) int

// Colação pt-BR para campos de texto
var coladorPtBR = collate.New(language.BrazilianPortuguese, collate.IgnoreCase)

// CompararTexto compara strings com colação pt-BR
func CompararTexto(a, b string) int {
	return coladorPtBR.CompareString(a, b)
}

// CompararNumero compara números pelo sinal da diferença
func CompararNumero(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompararData compara datas por milissegundos de época
func CompararData(a, b time.Time) int {
	return CompararNumero(float64(a.UnixMilli()), float64(b.UnixMilli()))
}

type campoOrdenacao[T any] struct {
	comparador Comparador[T]
	padrao     Direcao
}

// Ordenacao mantém o registro de comparadores por campo e o campo ativo.
// Um único campo de ordenação por vez; empates preservam a ordem do
// conjunto filtrado (sort estável — não há chave secundária).
type Ordenacao[T any] struct {
	campos  map[string]campoOrdenacao[T]
	Campo   string
	Direcao Direcao
}

// NovaOrdenacao cria o registro vazio
func NovaOrdenacao[T any]() *Ordenacao[T] {
	return &Ordenacao[T]{campos: make(map[string]campoOrdenacao[T])}
}

// Registrar associa um comparador e a direção padrão a um campo
func (o *Ordenacao[T]) Registrar(campo string, padrao Direcao, cmp Comparador[T]) {
	o.campos[campo] = campoOrdenacao[T]{comparador: cmp, padrao: padrao}
}

// Selecionar ativa um campo de ordenação: repetir o campo atual inverte a
// direção; um campo novo volta à direção padrão daquele campo
func (o *Ordenacao[T]) Selecionar(campo string) {
	reg, ok := o.campos[campo]
	if !ok {
		return
	}
	if o.Campo == campo {
		o.Direcao = -o.Direcao
		return
	}
	o.Campo = campo
	o.Direcao = reg.padrao
}

// Definir ativa um campo com direção explícita (requisições HTTP trazem a
// direção no query param, sem estado de toggle entre chamadas)
func (o *Ordenacao[T]) Definir(campo string, d Direcao) {
	if _, ok := o.campos[campo]; !ok {
		return
	}
	o.Campo = campo
	o.Direcao = d
}

// Aplicar ordena o slice no lugar segundo o campo ativo
func (o *Ordenacao[T]) Aplicar(itens []T) {
	reg, ok := o.campos[o.Campo]
	if !ok {
		return
	}
	sort.SliceStable(itens, func(i, j int) bool {
		return reg.comparador(itens[i], itens[j])*int(o.Direcao) < 0
	})
}
