package models

import "testing"

func TestMascararSegredo(t *testing.T) {
	tests := []struct {
		name    string
		segredo string
		want    string
	}{
		{"vazio fica vazio", "", ""},
		{"curto vira 8 bullets", "abc123", "••••••••"},
		{"exatamente 8 vira 8 bullets", "12345678", "••••••••"},
		{"longo preserva pontas", "abcd1234wxyz", "abcd••••••••wxyz"},
		{"9 caracteres já mostra pontas", "123456789", "1234••••••••6789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MascararSegredo(tt.segredo); got != tt.want {
				t.Errorf("MascararSegredo(%q) = %q, esperava %q", tt.segredo, got, tt.want)
			}
		})
	}
}

func TestMascararSegredoNuncaVazaSegredoCurto(t *testing.T) {
	// Máscara de segredo curto tem comprimento fixo: não revela o tamanho real
	if MascararSegredo("ab") != MascararSegredo("abcdefgh") {
		t.Fatal("máscaras de segredos curtos deveriam ser idênticas")
	}
}

func TestCredencialStatus(t *testing.T) {
	tests := []struct {
		name       string
		credencial Credencial
		want       StatusCredencial
	}{
		{"sem nada", Credencial{}, CredencialNaoConfigurada},
		{"só client_id", Credencial{ClientID: "id"}, CredencialNaoConfigurada},
		{"client_id e secret sem token", Credencial{ClientID: "id", ClientSecret: "s"}, CredencialSemToken},
		{"completa", Credencial{ClientID: "id", ClientSecret: "s", Token: "tok"}, CredencialAtiva},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.credencial.Status(); got != tt.want {
				t.Errorf("Status() = %s, esperava %s", got, tt.want)
			}
		})
	}
}

func TestCredencialToMapMascaraSegredos(t *testing.T) {
	c := Credencial{
		ClientID:     "meu-client-id",
		ClientSecret: "segredosuperlongo",
		Token:        "tokenzinho",
	}
	m := c.ToMap()

	if m["client_id"] != "meu-client-id" {
		t.Errorf("client_id não deveria ser mascarado: %v", m["client_id"])
	}
	if m["client_secret"] != "segr••••••••ongo" {
		t.Errorf("client_secret mascarado = %v", m["client_secret"])
	}
	if m["status"] != string(CredencialAtiva) {
		t.Errorf("status = %v, esperava ativa", m["status"])
	}
}
