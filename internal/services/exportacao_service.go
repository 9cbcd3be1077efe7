package services

import (
	"bytes"
	"fmt"
	"time"

	"conciliacao/server/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportacaoService gera planilhas XLSX a partir da base de pedidos
type ExportacaoService struct{}

// NewExportacaoService cria uma nova instância de ExportacaoService
func NewExportacaoService() *ExportacaoService {
	return &ExportacaoService{}
}

// Mapa fixo de colunas da exportação de pedidos
var colunasExportacao = []string{
	"Nº ERP", "Nº iFood", "Loja", "Data", "Valor ERP", "Valor iFood", "Diferença", "Status",
}

// NomeArquivo monta o nome determinístico do arquivo com base no período
// exportado: pedidos_<de>_a_<ate>.xlsx
func (s *ExportacaoService) NomeArquivo(de, ate time.Time) string {
	if de.IsZero() || ate.IsZero() {
		return "pedidos.xlsx"
	}
	return fmt.Sprintf("pedidos_%s_a_%s.xlsx", de.Format("2006-01-02"), ate.Format("2006-01-02"))
}

// ExportarPedidos gera a planilha e devolve o conteúdo com o nome do arquivo.
// O período do nome vem das datas mínima e máxima dos registros exportados.
func (s *ExportacaoService) ExportarPedidos(pedidos []models.Pedido) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const aba = "Pedidos"
	indice, err := f.NewSheet(aba)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao criar aba: %w", err)
	}
	f.SetActiveSheet(indice)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("erro ao remover aba padrão: %w", err)
	}

	for i, coluna := range colunasExportacao {
		celula, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(aba, celula, coluna); err != nil {
			return nil, "", fmt.Errorf("erro ao escrever cabeçalho: %w", err)
		}
	}

	var de, ate time.Time
	for linha, p := range pedidos {
		if de.IsZero() || p.DataPedido.Before(de) {
			de = p.DataPedido
		}
		if ate.IsZero() || p.DataPedido.After(ate) {
			ate = p.DataPedido
		}

		nomeLoja := ""
		if p.Loja != nil {
			nomeLoja = p.Loja.Nome
		}
		valores := []interface{}{
			p.NumeroERP,
			p.NumeroIfood,
			nomeLoja,
			p.DataPedido.Format("02/01/2006 15:04"),
			p.ValorERP,
			p.ValorIfood,
			p.ValorERP - p.ValorIfood,
			string(p.Status),
		}
		for coluna, valor := range valores {
			celula, _ := excelize.CoordinatesToCellName(coluna+1, linha+2)
			if err := f.SetCellValue(aba, celula, valor); err != nil {
				return nil, "", fmt.Errorf("erro ao escrever linha %d: %w", linha+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("erro ao gerar planilha: %w", err)
	}
	return buf, s.NomeArquivo(de, ate), nil
}
