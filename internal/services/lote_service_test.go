package services

import (
	"testing"
	"time"

	"conciliacao/server/internal/models"
)

func TestRegistrarResultadoCriaEAtualiza(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoteService(db)

	// Evento inicial: lote em processamento
	lote, err := svc.RegistrarResultado(&ResultadoLote{
		LoteID:       "aaaaaaaa-0000-0000-0000-000000000001",
		DataExecucao: time.Now().UTC().Format(time.RFC3339),
		Status:       string(models.LoteProcessando),
	})
	if err != nil {
		t.Fatalf("registrar lote: %v", err)
	}
	if lote.Status != models.LoteProcessando {
		t.Fatalf("status inicial = %s", lote.Status)
	}

	// Evento final: mesmo lote conclui com sucesso
	atualizado, err := svc.RegistrarResultado(&ResultadoLote{
		LoteID:             lote.ID,
		Status:             string(models.LoteSucesso),
		PedidosProcessados: 120,
		DuracaoSegundos:    14.5,
	})
	if err != nil {
		t.Fatalf("atualizar lote: %v", err)
	}
	if atualizado.Status != models.LoteSucesso {
		t.Errorf("status final = %s, esperava sucesso", atualizado.Status)
	}

	recarregado, err := svc.GetLoteByID(lote.ID)
	if err != nil {
		t.Fatalf("recarregar lote: %v", err)
	}
	if recarregado.PedidosProcessados != 120 {
		t.Errorf("pedidos processados = %d, esperava 120", recarregado.PedidosProcessados)
	}
}

func TestRegistrarResultadoRespeitaEstadoTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoteService(db)

	lote, err := svc.RegistrarResultado(&ResultadoLote{
		LoteID: "aaaaaaaa-0000-0000-0000-000000000002",
		Status: string(models.LoteSucesso),
	})
	if err != nil {
		t.Fatalf("registrar lote: %v", err)
	}

	// Evento atrasado tentando reabrir um lote concluído
	if _, err := svc.RegistrarResultado(&ResultadoLote{
		LoteID: lote.ID,
		Status: string(models.LoteProcessando),
	}); err == nil {
		t.Fatal("lote terminal não deveria voltar a processar")
	}
}

func TestRegistrarResultadoStatusInvalido(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoteService(db)

	if _, err := svc.RegistrarResultado(&ResultadoLote{Status: "pendente"}); err == nil {
		t.Fatal("status desconhecido deveria ser rejeitado")
	}
}

func TestCancelarLote(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLoteService(db)

	lote, err := svc.RegistrarResultado(&ResultadoLote{
		LoteID: "aaaaaaaa-0000-0000-0000-000000000003",
		Status: string(models.LoteProcessando),
	})
	if err != nil {
		t.Fatalf("registrar lote: %v", err)
	}

	cancelado, err := svc.CancelarLote(lote.ID)
	if err != nil {
		t.Fatalf("cancelar: %v", err)
	}
	if cancelado.Status != models.LoteCancelado {
		t.Errorf("status = %s, esperava cancelado", cancelado.Status)
	}

	// Cancelado é terminal
	if _, err := svc.CancelarLote(lote.ID); err == nil {
		t.Error("cancelar lote já cancelado deveria falhar")
	}
}
