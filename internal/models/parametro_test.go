package models

import (
	"reflect"
	"testing"
)

func TestParametroValidarValor(t *testing.T) {
	tests := []struct {
		name      string
		parametro Parametro
		valor     string
		valido    bool
	}{
		{"texto aceita qualquer coisa", Parametro{Tipo: TipoTexto}, "qualquer", true},
		{"número válido", Parametro{Tipo: TipoNumero}, "12.5", true},
		{"número inválido", Parametro{Tipo: TipoNumero}, "doze", false},
		{"booleano true", Parametro{Tipo: TipoBooleano}, "true", true},
		{"booleano inválido", Parametro{Tipo: TipoBooleano}, "sim", false},
		{"opção na lista", Parametro{Tipo: TipoOpcao, Opcoes: "diario, semanal, mensal"}, "semanal", true},
		{"opção fora da lista", Parametro{Tipo: TipoOpcao, Opcoes: "diario, semanal"}, "anual", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parametro.ValidarValor(tt.valor)
			if tt.valido && err != nil {
				t.Errorf("esperava válido, veio erro: %v", err)
			}
			if !tt.valido && err == nil {
				t.Errorf("esperava erro, passou")
			}
		})
	}
}

func TestParametroListarOpcoes(t *testing.T) {
	p := Parametro{Opcoes: " diario ,semanal,, mensal "}
	want := []string{"diario", "semanal", "mensal"}
	if got := p.ListarOpcoes(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListarOpcoes() = %v, esperava %v", got, want)
	}

	vazio := Parametro{}
	if got := vazio.ListarOpcoes(); got != nil {
		t.Errorf("sem opções deveria devolver nil, veio %v", got)
	}
}
