package listagem

import (
	"fmt"
	"testing"
)

func novoPipelineTeste(qtd, tamanhoPagina int) *Pipeline[registroTeste] {
	p := NovoPipeline[registroTeste](tamanhoPagina)
	p.Ordenacao.Registrar("nome", Ascendente, func(a, b registroTeste) int {
		return CompararTexto(a.Nome, b.Nome)
	})
	p.Ordenacao.Registrar("valor", Descendente, func(a, b registroTeste) int {
		return CompararNumero(a.Valor, b.Valor)
	})

	itens := make([]registroTeste, qtd)
	for i := range itens {
		itens[i] = registroTeste{
			Nome:  fmt.Sprintf("registro-%03d", i),
			Loja:  fmt.Sprintf("loja-%d", i%3),
			Valor: float64(i),
		}
	}
	p.DefinirItens(itens)
	return p
}

func TestPipelineFiltroVoltaParaPagina1(t *testing.T) {
	p := novoPipelineTeste(45, 10)

	p.IrPara(4)
	if p.Paginador.PaginaAtual != 4 {
		t.Fatalf("IrPara(4) = página %d", p.Paginador.PaginaAtual)
	}

	p.DefinirFiltro("loja", FiltroIgualdade("loja-1", func(r registroTeste) string { return r.Loja }))
	if p.Paginador.PaginaAtual != 1 {
		t.Fatalf("mudar filtro deveria voltar à página 1, ficou na %d", p.Paginador.PaginaAtual)
	}
}

func TestPipelineOrdenarVoltaParaPagina1(t *testing.T) {
	p := novoPipelineTeste(45, 10)
	p.IrPara(3)

	p.Ordenar("valor")
	if p.Paginador.PaginaAtual != 1 {
		t.Fatalf("ordenar deveria voltar à página 1, ficou na %d", p.Paginador.PaginaAtual)
	}
}

func TestPipelineNavegarNaoMexeEmFiltroNemOrdenacao(t *testing.T) {
	p := novoPipelineTeste(45, 10)
	p.DefinirFiltro("loja", FiltroIgualdade("loja-0", func(r registroTeste) string { return r.Loja }))
	p.Ordenar("valor")
	totalAntes := p.TotalFiltrado()

	p.IrPara(2)
	if p.TotalFiltrado() != totalAntes {
		t.Fatalf("navegar mudou o conjunto filtrado: %d -> %d", totalAntes, p.TotalFiltrado())
	}
	if p.Ordenacao.Campo != "valor" {
		t.Fatalf("navegar mudou a ordenação: %s", p.Ordenacao.Campo)
	}
	if p.Paginador.PaginaAtual != 2 {
		t.Fatalf("navegar não chegou na página 2: %d", p.Paginador.PaginaAtual)
	}
}

func TestPipelineClampAposFiltroEncolherConjunto(t *testing.T) {
	p := novoPipelineTeste(45, 10)
	p.IrPara(5)

	// Filtro encolhe o conjunto para 15 itens (2 páginas)
	p.DefinirFiltro("loja", FiltroIgualdade("loja-0", func(r registroTeste) string { return r.Loja }))
	p.IrPara(5)
	if p.Paginador.PaginaAtual != 2 {
		t.Fatalf("pedido além do fim deveria dar clamp na última página, ficou na %d", p.Paginador.PaginaAtual)
	}
}

func TestPipelineRemoverFiltro(t *testing.T) {
	p := novoPipelineTeste(30, 10)
	p.DefinirFiltro("loja", FiltroIgualdade("loja-1", func(r registroTeste) string { return r.Loja }))
	if p.TotalFiltrado() != 10 {
		t.Fatalf("filtrado = %d, esperava 10", p.TotalFiltrado())
	}

	p.DefinirFiltro("loja", nil)
	if p.TotalFiltrado() != 30 {
		t.Fatalf("remover filtro deveria voltar aos 30, veio %d", p.TotalFiltrado())
	}
}

func TestPipelinePagina(t *testing.T) {
	p := novoPipelineTeste(25, 10)
	p.OrdenarCom("valor", Descendente)

	pagina := p.Pagina()
	if len(pagina) != 10 {
		t.Fatalf("página 1 com %d itens, esperava 10", len(pagina))
	}
	if pagina[0].Valor != 24 {
		t.Fatalf("ordenação descendente: primeiro valor = %v, esperava 24", pagina[0].Valor)
	}

	p.IrPara(3)
	ultima := p.Pagina()
	if len(ultima) != 5 {
		t.Fatalf("página final com %d itens, esperava 5", len(ultima))
	}
}

func TestPipelineFiltragemIdempotente(t *testing.T) {
	p := novoPipelineTeste(30, 10)
	p.DefinirFiltro("loja", FiltroIgualdade("loja-2", func(r registroTeste) string { return r.Loja }))

	primeira := p.TotalFiltrado()
	segunda := p.TotalFiltrado()
	if primeira != segunda {
		t.Fatalf("reexecutar os filtros mudou o total: %d -> %d", primeira, segunda)
	}
}
