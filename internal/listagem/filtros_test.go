package listagem

import (
	"testing"
	"time"
)

type registroTeste struct {
	Nome  string
	Loja  string
	Valor float64
	Data  time.Time
}

func dia(ano int, mes time.Month, d int) time.Time {
	return time.Date(ano, mes, d, 12, 0, 0, 0, time.UTC)
}

func TestFiltroTexto(t *testing.T) {
	campos := func(r registroTeste) []string { return []string{r.Nome, r.Loja} }
	registros := []registroTeste{
		{Nome: "Pedido 1001", Loja: "Loja Centro"},
		{Nome: "Pedido 1002", Loja: "Loja Paulista"},
		{Nome: "Avulso", Loja: "Quiosque"},
	}

	tests := []struct {
		termo string
		want  int
	}{
		{"", 3},         // termo vazio aceita tudo
		{"  ", 3},       // só espaços também
		{"pedido", 2},   // sem diferenciar maiúsculas
		{"CENTRO", 1},   // busca em qualquer campo
		{"inexistente", 0},
	}

	for _, tt := range tests {
		got := AplicarFiltros(registros, FiltroTexto(tt.termo, campos))
		if len(got) != tt.want {
			t.Errorf("FiltroTexto(%q) aceitou %d registros, esperava %d", tt.termo, len(got), tt.want)
		}
	}
}

func TestFiltroPeriodoInclusivo(t *testing.T) {
	dataDe := func(r registroTeste) time.Time { return r.Data }
	de := dia(2026, time.March, 10)
	ate := dia(2026, time.March, 12)

	tests := []struct {
		name string
		data time.Time
		want bool
	}{
		{"meio do intervalo", dia(2026, time.March, 11), true},
		{"primeiro instante do dia inicial", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), true},
		{"último milissegundo do dia final", time.Date(2026, time.March, 12, 23, 59, 59, 999000000, time.UTC), true},
		{"primeiro instante do dia seguinte", time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC), false},
		{"véspera do início", time.Date(2026, time.March, 9, 23, 59, 59, 0, time.UTC), false},
	}

	f := FiltroPeriodo(&de, &ate, dataDe)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f(registroTeste{Data: tt.data}); got != tt.want {
				t.Errorf("data %v: aceito = %v, esperava %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestFiltroPeriodoLadosNulos(t *testing.T) {
	dataDe := func(r registroTeste) time.Time { return r.Data }
	antiga := registroTeste{Data: dia(2020, time.January, 1)}
	recente := registroTeste{Data: dia(2026, time.August, 1)}

	// Sem limites, tudo passa
	if got := AplicarFiltros([]registroTeste{antiga, recente}, FiltroPeriodo[registroTeste](nil, nil, dataDe)); len(got) != 2 {
		t.Errorf("sem limites: %d registros, esperava 2", len(got))
	}

	// Só limite inferior
	de := dia(2026, time.January, 1)
	if got := AplicarFiltros([]registroTeste{antiga, recente}, FiltroPeriodo(&de, nil, dataDe)); len(got) != 1 {
		t.Errorf("só 'de': %d registros, esperava 1", len(got))
	}
}

func TestFiltroPertinenciaSelecaoVazia(t *testing.T) {
	campo := func(r registroTeste) string { return r.Loja }
	registros := []registroTeste{
		{Loja: "a"}, {Loja: "b"}, {Loja: "c"},
	}

	// Seleção vazia significa "todos", nunca "nenhum"
	if got := AplicarFiltros(registros, FiltroPertinencia(nil, campo)); len(got) != 3 {
		t.Errorf("seleção vazia aceitou %d, esperava 3", len(got))
	}
	if got := AplicarFiltros(registros, FiltroPertinencia([]string{"a", "c"}, campo)); len(got) != 2 {
		t.Errorf("seleção {a,c} aceitou %d, esperava 2", len(got))
	}
}

func TestFiltroIgualdadeSentinela(t *testing.T) {
	campo := func(r registroTeste) string { return r.Loja }
	registros := []registroTeste{{Loja: "a"}, {Loja: "b"}}

	if got := AplicarFiltros(registros, FiltroIgualdade("", campo)); len(got) != 2 {
		t.Errorf("valor vazio aceitou %d, esperava 2", len(got))
	}
	if got := AplicarFiltros(registros, FiltroIgualdade("b", campo)); len(got) != 1 {
		t.Errorf("valor 'b' aceitou %d, esperava 1", len(got))
	}
}

func TestAplicarFiltrosELogico(t *testing.T) {
	registros := []registroTeste{
		{Nome: "Pedido", Loja: "a"},
		{Nome: "Pedido", Loja: "b"},
		{Nome: "Avulso", Loja: "a"},
	}
	got := AplicarFiltros(registros,
		FiltroTexto("pedido", func(r registroTeste) []string { return []string{r.Nome} }),
		FiltroIgualdade("a", func(r registroTeste) string { return r.Loja }),
	)
	if len(got) != 1 {
		t.Fatalf("E lógico aceitou %d registros, esperava 1", len(got))
	}
}

func TestAplicarFiltrosNaoMutaOriginal(t *testing.T) {
	registros := []registroTeste{{Loja: "a"}, {Loja: "b"}}
	_ = AplicarFiltros(registros, FiltroIgualdade("a", func(r registroTeste) string { return r.Loja }))
	_ = AplicarFiltros(registros, FiltroIgualdade("a", func(r registroTeste) string { return r.Loja }))

	if len(registros) != 2 || registros[0].Loja != "a" || registros[1].Loja != "b" {
		t.Fatalf("conjunto original foi alterado: %v", registros)
	}
}
