package models

import "testing"

func TestStatusLoteTerminal(t *testing.T) {
	casos := map[StatusLote]bool{
		LoteSucesso:     true,
		LoteErro:        true,
		LoteCancelado:   true,
		LoteProcessando: false,
	}
	for status, want := range casos {
		if got := status.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, esperava %v", status, got, want)
		}
	}
}

func TestLotePodeTransicionarPara(t *testing.T) {
	tests := []struct {
		name string
		de   StatusLote
		para StatusLote
		want bool
	}{
		{"processando -> sucesso", LoteProcessando, LoteSucesso, true},
		{"processando -> erro", LoteProcessando, LoteErro, true},
		{"processando -> cancelado", LoteProcessando, LoteCancelado, true},
		{"sucesso absorve", LoteSucesso, LoteProcessando, false},
		{"erro absorve", LoteErro, LoteSucesso, false},
		{"cancelado absorve", LoteCancelado, LoteErro, false},
		{"cancelado não volta a processar", LoteCancelado, LoteProcessando, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LoteSincronizacao{Status: tt.de}
			if got := l.PodeTransicionarPara(tt.para); got != tt.want {
				t.Errorf("%s -> %s = %v, esperava %v", tt.de, tt.para, got, tt.want)
			}
		})
	}
}

func TestPedidoConciliar(t *testing.T) {
	tests := []struct {
		name   string
		pedido Pedido
		want   StatusConciliacao
	}{
		{"valores iguais", Pedido{NumeroERP: "1", NumeroIfood: "A", ValorERP: 50, ValorIfood: 50}, PedidoConciliado},
		{"diferença dentro da tolerância", Pedido{NumeroERP: "1", NumeroIfood: "A", ValorERP: 50.00, ValorIfood: 50.01}, PedidoConciliado},
		{"diferença acima da tolerância", Pedido{NumeroERP: "1", NumeroIfood: "A", ValorERP: 50.00, ValorIfood: 50.02}, PedidoDivergente},
		{"só no ERP", Pedido{NumeroERP: "1", ValorERP: 50}, PedidoSemPar},
		{"só no iFood", Pedido{NumeroIfood: "A", ValorIfood: 50}, PedidoSemPar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pedido.Conciliar(); got != tt.want {
				t.Errorf("Conciliar() = %s, esperava %s", got, tt.want)
			}
		})
	}
}

func TestUsuarioValidarVinculos(t *testing.T) {
	regiao := "11111111-1111-1111-1111-111111111111"
	loja := "22222222-2222-2222-2222-222222222222"

	tests := []struct {
		name    string
		usuario Usuario
		valido  bool
	}{
		{"corporativo sem vínculos", Usuario{Papel: PapelCorporativo}, true},
		{"corporativo com regional", Usuario{Papel: PapelCorporativo, RegiaoID: &regiao}, false},
		{"regional com regional", Usuario{Papel: PapelRegional, RegiaoID: &regiao}, true},
		{"regional sem regional", Usuario{Papel: PapelRegional}, false},
		{"regional com loja", Usuario{Papel: PapelRegional, RegiaoID: &regiao, LojaID: &loja}, false},
		{"loja com ambos", Usuario{Papel: PapelLoja, RegiaoID: &regiao, LojaID: &loja}, true},
		{"loja sem loja", Usuario{Papel: PapelLoja, RegiaoID: &regiao}, false},
		{"papel desconhecido", Usuario{Papel: "gerente"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.usuario.ValidarVinculos()
			if tt.valido && err != nil {
				t.Errorf("esperava válido, veio erro: %v", err)
			}
			if !tt.valido && err == nil {
				t.Errorf("esperava erro, passou")
			}
		})
	}
}
