package services

import (
	"strings"
	"testing"

	"conciliacao/server/internal/models"
)

func TestCreateUsuarioComSenha(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUsuarioService(db)

	usuario, err := svc.CreateUsuario(&NovoUsuario{
		Nome:  "  Admin  ",
		Email: "Admin@Conciliacao.com.br",
		Senha: "senhaforte123",
		Papel: string(models.PapelCorporativo),
	})
	if err != nil {
		t.Fatalf("criar usuário: %v", err)
	}

	if usuario.Nome != "Admin" {
		t.Errorf("nome não foi normalizado: %q", usuario.Nome)
	}
	if usuario.Email != "admin@conciliacao.com.br" {
		t.Errorf("e-mail não foi normalizado: %q", usuario.Email)
	}
	if usuario.SenhaHash == "senhaforte123" || usuario.SenhaHash == "" {
		t.Error("senha deveria estar armazenada como hash")
	}

	if !svc.VerificarSenha(usuario, "senhaforte123") {
		t.Error("senha correta não confere")
	}
	if svc.VerificarSenha(usuario, "senhaerrada") {
		t.Error("senha errada não deveria conferir")
	}
}

func TestCreateUsuarioEmailDuplicado(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUsuarioService(db)

	req := &NovoUsuario{Nome: "A", Email: "a@teste.com", Senha: "12345678", Papel: string(models.PapelCorporativo)}
	if _, err := svc.CreateUsuario(req); err != nil {
		t.Fatalf("primeira criação: %v", err)
	}
	_, err := svc.CreateUsuario(&NovoUsuario{Nome: "B", Email: "A@TESTE.COM", Senha: "12345678", Papel: string(models.PapelCorporativo)})
	if err == nil || !strings.Contains(err.Error(), "já existe") {
		t.Fatalf("e-mail duplicado (em outra caixa) deveria falhar, veio: %v", err)
	}
}

func TestCreateUsuarioVinculosInvalidos(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUsuarioService(db)

	regiao := criarRegiao(t, db, "Sudeste")

	// Corporativo não pode ter vínculo
	_, err := svc.CreateUsuario(&NovoUsuario{
		Nome: "C", Email: "c@teste.com", Senha: "12345678",
		Papel: string(models.PapelCorporativo), RegiaoID: &regiao.ID,
	})
	if err == nil {
		t.Error("corporativo com regional deveria falhar")
	}

	// Regional precisa de regional existente
	fantasma := "99999999-9999-9999-9999-999999999999"
	_, err = svc.CreateUsuario(&NovoUsuario{
		Nome: "D", Email: "d@teste.com", Senha: "12345678",
		Papel: string(models.PapelRegional), RegiaoID: &fantasma,
	})
	if err == nil {
		t.Error("regional inexistente deveria falhar")
	}
}

func TestCreateUsuarioLojaDeOutraRegional(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUsuarioService(db)

	sudeste := criarRegiao(t, db, "Sudeste")
	sul := criarRegiao(t, db, "Sul")
	lojaSul := criarLoja(t, db, "Loja Moinhos", "ERP-003", &sul.ID)

	_, err := svc.CreateUsuario(&NovoUsuario{
		Nome: "E", Email: "e@teste.com", Senha: "12345678",
		Papel: string(models.PapelLoja), RegiaoID: &sudeste.ID, LojaID: &lojaSul.ID,
	})
	if err == nil || !strings.Contains(err.Error(), "não pertence") {
		t.Fatalf("loja de outra regional deveria falhar, veio: %v", err)
	}
}

func TestUpdateUsuarioPromoverParaCorporativoLimpaVinculos(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUsuarioService(db)

	regiao := criarRegiao(t, db, "Sudeste")
	usuario, err := svc.CreateUsuario(&NovoUsuario{
		Nome: "Gestor", Email: "gestor@teste.com", Senha: "12345678",
		Papel: string(models.PapelRegional), RegiaoID: &regiao.ID,
	})
	if err != nil {
		t.Fatalf("criar usuário: %v", err)
	}

	if err := svc.UpdateUsuario(usuario.ID, &models.Usuario{
		Nome:  "Gestor",
		Papel: models.PapelCorporativo,
	}); err != nil {
		t.Fatalf("promover para corporativo: %v", err)
	}

	atualizado, err := svc.GetUsuarioByID(usuario.ID)
	if err != nil {
		t.Fatalf("recarregar usuário: %v", err)
	}
	if atualizado.RegiaoID != nil {
		t.Errorf("vínculo com regional deveria ter sido zerado, veio %v", *atualizado.RegiaoID)
	}
	if atualizado.Papel != models.PapelCorporativo {
		t.Errorf("papel = %s, esperava corporativo", atualizado.Papel)
	}
}

func TestAtualizarSenhaCurtaDemais(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUsuarioService(db)

	usuario, err := svc.CreateUsuario(&NovoUsuario{
		Nome: "F", Email: "f@teste.com", Senha: "12345678", Papel: string(models.PapelCorporativo),
	})
	if err != nil {
		t.Fatalf("criar usuário: %v", err)
	}

	if err := svc.AtualizarSenha(usuario.ID, "curta"); err == nil {
		t.Error("senha com menos de 8 caracteres deveria falhar")
	}
	if err := svc.AtualizarSenha(usuario.ID, "novasenha123"); err != nil {
		t.Errorf("senha válida deveria passar: %v", err)
	}

	recarregado, _ := svc.GetUsuarioByID(usuario.ID)
	if !svc.VerificarSenha(recarregado, "novasenha123") {
		t.Error("nova senha não confere após a troca")
	}
}
