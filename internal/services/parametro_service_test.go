package services

import (
	"errors"
	"testing"

	"conciliacao/server/internal/models"
)

func TestParametroSetupSomenteLeitura(t *testing.T) {
	db := setupTestDB(t)
	svc := NewParametroService(db)

	setup := &models.Parametro{
		Chave:     "ambiente_ifood",
		Valor:     "producao",
		Categoria: models.ParametroSetup,
		Tipo:      models.TipoTexto,
	}
	if err := db.Create(setup).Error; err != nil {
		t.Fatalf("criar parâmetro de setup: %v", err)
	}

	if _, err := svc.UpdateParametro(setup.ID, "homologacao"); !errors.Is(err, ErrSomenteLeitura) {
		t.Fatalf("alterar setup deveria dar ErrSomenteLeitura, veio: %v", err)
	}
	if err := svc.DeleteParametro(setup.ID); !errors.Is(err, ErrSomenteLeitura) {
		t.Fatalf("excluir setup deveria dar ErrSomenteLeitura, veio: %v", err)
	}

	// O valor original permanece
	recarregado, err := svc.GetParametroPorChave("ambiente_ifood")
	if err != nil {
		t.Fatalf("recarregar parâmetro: %v", err)
	}
	if recarregado.Valor != "producao" {
		t.Errorf("valor mudou para %q", recarregado.Valor)
	}
}

func TestParametroCustomEditavel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewParametroService(db)

	custom := &models.Parametro{
		Chave: "tolerancia_minutos",
		Valor: "30",
		Tipo:  models.TipoNumero,
	}
	if err := svc.CreateParametro(custom); err != nil {
		t.Fatalf("criar parâmetro custom: %v", err)
	}
	if custom.Categoria != models.ParametroCustom {
		t.Errorf("categoria padrão deveria ser custom, veio %s", custom.Categoria)
	}

	// Valor incompatível com o tipo é rejeitado
	if _, err := svc.UpdateParametro(custom.ID, "trinta"); err == nil {
		t.Error("valor não numérico deveria falhar")
	}

	atualizado, err := svc.UpdateParametro(custom.ID, "45")
	if err != nil {
		t.Fatalf("atualizar valor: %v", err)
	}
	if atualizado.Valor != "45" {
		t.Errorf("valor = %q, esperava 45", atualizado.Valor)
	}

	if err := svc.DeleteParametro(custom.ID); err != nil {
		t.Fatalf("excluir custom deveria passar: %v", err)
	}
}

func TestCreateParametroChaveDuplicada(t *testing.T) {
	db := setupTestDB(t)
	svc := NewParametroService(db)

	if err := svc.CreateParametro(&models.Parametro{Chave: "x", Valor: "1"}); err != nil {
		t.Fatalf("primeira criação: %v", err)
	}
	if err := svc.CreateParametro(&models.Parametro{Chave: "x", Valor: "2"}); err == nil {
		t.Fatal("chave duplicada deveria falhar")
	}
}
