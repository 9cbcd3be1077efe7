package listagem

import (
	"reflect"
	"testing"
)

func TestPaginadorIrParaClamp(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		pedido int
		want   int
	}{
		{"dentro do intervalo", 45, 3, 3},
		{"abaixo do mínimo", 45, 0, 1},
		{"negativo", 45, -7, 1},
		{"acima do máximo", 45, 99, 5},
		{"conjunto vazio", 0, 4, 1},
		{"última exata", 50, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NovoPaginador(10)
			p.DefinirTotal(tt.total)
			p.IrPara(tt.pedido)
			if p.PaginaAtual != tt.want {
				t.Errorf("IrPara(%d) com total %d = página %d, esperava %d",
					tt.pedido, tt.total, p.PaginaAtual, tt.want)
			}
		})
	}
}

func TestPaginadorTotalPaginas(t *testing.T) {
	p := NovoPaginador(10)

	casos := map[int]int{0: 0, 1: 1, 10: 1, 11: 2, 45: 5, 50: 5, 51: 6}
	for total, want := range casos {
		p.DefinirTotal(total)
		if got := p.TotalPaginas(); got != want {
			t.Errorf("TotalPaginas com %d itens = %d, esperava %d", total, got, want)
		}
	}
}

func TestFatiar(t *testing.T) {
	itens := []int{1, 2, 3, 4, 5, 6, 7}
	p := NovoPaginador(3)
	p.DefinirTotal(len(itens))

	p.IrPara(1)
	if got := Fatiar(itens, p); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("página 1 = %v", got)
	}
	p.IrPara(3)
	if got := Fatiar(itens, p); !reflect.DeepEqual(got, []int{7}) {
		t.Errorf("página parcial = %v", got)
	}
}

func rotulosParaComparar(rs []Rotulo) []int {
	// Elipse vira -1 para facilitar a comparação
	out := make([]int, len(rs))
	for i, r := range rs {
		if r.Elipse {
			out[i] = -1
		} else {
			out[i] = r.Pagina
		}
	}
	return out
}

func TestRotulosSemCompressao(t *testing.T) {
	p := NovoPaginador(10)
	p.DefinirTotal(50) // 5 páginas: no limiar, sem compressão
	p.IrPara(3)

	want := []int{1, 2, 3, 4, 5}
	if got := rotulosParaComparar(p.Rotulos()); !reflect.DeepEqual(got, want) {
		t.Errorf("Rotulos() = %v, esperava %v", got, want)
	}
}

func TestRotulosComprimidos(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		atual  int
		want   []int
	}{
		{"no início", 100, 1, []int{1, 2, -1, 10}},
		{"início da janela", 100, 3, []int{1, 2, 3, 4, -1, 10}},
		{"no meio", 100, 5, []int{1, -1, 4, 5, 6, -1, 10}},
		{"perto do fim", 100, 8, []int{1, -1, 7, 8, 9, 10}},
		{"no fim", 100, 10, []int{1, -1, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NovoPaginador(10)
			p.DefinirTotal(tt.total)
			p.IrPara(tt.atual)
			if got := rotulosParaComparar(p.Rotulos()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("página %d: Rotulos() = %v, esperava %v", tt.atual, got, tt.want)
			}
		})
	}
}

func TestRotulosConjuntoVazio(t *testing.T) {
	p := NovoPaginador(10)
	p.DefinirTotal(0)
	if got := p.Rotulos(); len(got) != 0 {
		t.Errorf("conjunto vazio: Rotulos() = %v, esperava vazio", got)
	}
}
