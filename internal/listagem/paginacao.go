package listagem

// Acima deste total de páginas a sequência de rótulos é comprimida
const limiarCompressao = 5

// Paginador fatia o conjunto filtrado em páginas de tamanho fixo e gera a
// sequência comprimida de rótulos para exibição
type Paginador struct {
	TamanhoPagina int
	PaginaAtual   int
	totalItens    int
}

// NovoPaginador cria um paginador na página 1
func NovoPaginador(tamanho int) *Paginador {
	if tamanho <= 0 {
		tamanho = 10
	}
	return &Paginador{TamanhoPagina: tamanho, PaginaAtual: 1}
}

// DefinirTotal informa o tamanho do conjunto filtrado
func (p *Paginador) DefinirTotal(n int) {
	if n < 0 {
		n = 0
	}
	p.totalItens = n
}

// TotalPaginas calcula o número de páginas (teto), mínimo 0
func (p *Paginador) TotalPaginas() int {
	return (p.totalItens + p.TamanhoPagina - 1) / p.TamanhoPagina
}

// IrPara navega para a página pedida com clamp em [1, TotalPaginas].
// Pedido fora do intervalo vira clamp silencioso, nunca erro.
func (p *Paginador) IrPara(pagina int) {
	total := p.TotalPaginas()
	if pagina < 1 {
		pagina = 1
	}
	if total > 0 && pagina > total {
		pagina = total
	}
	if total == 0 {
		pagina = 1
	}
	p.PaginaAtual = pagina
}

// Reiniciar volta à página 1 (chamado a cada mudança de filtro ou ordenação)
func (p *Paginador) Reiniciar() {
	p.PaginaAtual = 1
}

// Fatiar devolve a fatia [(pagina-1)*tamanho, pagina*tamanho) do conjunto
func Fatiar[T any](itens []T, p *Paginador) []T {
	inicio := (p.PaginaAtual - 1) * p.TamanhoPagina
	if inicio >= len(itens) {
		return []T{}
	}
	fim := inicio + p.TamanhoPagina
	if fim > len(itens) {
		fim = len(itens)
	}
	return itens[inicio:fim]
}

// Rotulo é uma entrada da sequência de páginas: um número ou reticências
type Rotulo struct {
	Pagina int  `json:"pagina,omitempty"`
	Elipse bool `json:"elipse,omitempty"`
}

// Rotulos gera a sequência comprimida: primeira página, reticências quando a
// atual passa de 3, janela contígua ao redor da atual, reticências quando a
// atual está longe do fim, última página. Entradas numéricas adjacentes são
// deduplicadas.
func (p *Paginador) Rotulos() []Rotulo {
	total := p.TotalPaginas()
	if total == 0 {
		return []Rotulo{}
	}
	if total <= limiarCompressao {
		rotulos := make([]Rotulo, 0, total)
		for i := 1; i <= total; i++ {
			rotulos = append(rotulos, Rotulo{Pagina: i})
		}
		return rotulos
	}

	atual := p.PaginaAtual
	rotulos := []Rotulo{{Pagina: 1}}

	if atual > 3 {
		rotulos = append(rotulos, Rotulo{Elipse: true})
	}

	inicio := atual - 1
	if inicio < 2 {
		inicio = 2
	}
	fim := atual + 1
	if fim > total-1 {
		fim = total - 1
	}
	for i := inicio; i <= fim; i++ {
		rotulos = append(rotulos, Rotulo{Pagina: i})
	}

	if atual < total-2 {
		rotulos = append(rotulos, Rotulo{Elipse: true})
	}
	rotulos = append(rotulos, Rotulo{Pagina: total})

	// Deduplica números adjacentes repetidos
	dedup := rotulos[:1]
	for _, r := range rotulos[1:] {
		ultimo := dedup[len(dedup)-1]
		if !r.Elipse && !ultimo.Elipse && r.Pagina == ultimo.Pagina {
			continue
		}
		dedup = append(dedup, r)
	}
	return dedup
}
