package listagem

// Pipeline orquestra a listagem de uma tela: registros crus -> filtros
// ativos -> ordenação -> página atual. Qualquer mudança de filtro ou de
// campo de ordenação volta à página 1; navegar entre páginas nunca mexe em
// filtro ou ordenação.
type Pipeline[T any] struct {
	itens     []T
	filtros   map[string]Predicado[T]
	Ordenacao *Ordenacao[T]
	Paginador *Paginador
}

// NovoPipeline cria o pipeline de uma tela com tamanho de página fixo
func NovoPipeline[T any](tamanhoPagina int) *Pipeline[T] {
	return &Pipeline[T]{
		filtros:   make(map[string]Predicado[T]),
		Ordenacao: NovaOrdenacao[T](),
		Paginador: NovoPaginador(tamanhoPagina),
	}
}

// DefinirItens troca o conjunto cru (recarga após mutação no backend)
func (p *Pipeline[T]) DefinirItens(itens []T) {
	p.itens = itens
}

// DefinirFiltro ativa (ou remove, com nil) um filtro nomeado e volta à página 1
func (p *Pipeline[T]) DefinirFiltro(nome string, f Predicado[T]) {
	if f == nil {
		delete(p.filtros, nome)
	} else {
		p.filtros[nome] = f
	}
	p.Paginador.Reiniciar()
}

// Ordenar seleciona o campo de ordenação (toggle de direção no mesmo campo)
// e volta à página 1
func (p *Pipeline[T]) Ordenar(campo string) {
	p.Ordenacao.Selecionar(campo)
	p.Paginador.Reiniciar()
}

// OrdenarCom seleciona campo e direção explícitos e volta à página 1
func (p *Pipeline[T]) OrdenarCom(campo string, d Direcao) {
	p.Ordenacao.Definir(campo, d)
	p.Paginador.Reiniciar()
}

// IrPara navega para uma página (com clamp), sem tocar em filtros
func (p *Pipeline[T]) IrPara(pagina int) {
	p.executarFiltros() // atualiza o total antes do clamp
	p.Paginador.IrPara(pagina)
}

func (p *Pipeline[T]) executarFiltros() []T {
	ativos := make([]Predicado[T], 0, len(p.filtros))
	for _, f := range p.filtros {
		ativos = append(ativos, f)
	}
	filtrados := AplicarFiltros(p.itens, ativos...)
	p.Paginador.DefinirTotal(len(filtrados))
	return filtrados
}

// Pagina executa o pipeline completo e devolve a fatia da página atual
func (p *Pipeline[T]) Pagina() []T {
	filtrados := p.executarFiltros()
	p.Ordenacao.Aplicar(filtrados)
	return Fatiar(filtrados, p.Paginador)
}

// Filtrados devolve o conjunto inteiro após os filtros, sem paginar
// (exportação cobre todas as páginas)
func (p *Pipeline[T]) Filtrados() []T {
	return p.executarFiltros()
}

// TotalFiltrado devolve o tamanho do conjunto após os filtros
func (p *Pipeline[T]) TotalFiltrado() int {
	return len(p.executarFiltros())
}

// Rotulos devolve a sequência comprimida de páginas para exibição
func (p *Pipeline[T]) Rotulos() []Rotulo {
	p.executarFiltros()
	return p.Paginador.Rotulos()
}
