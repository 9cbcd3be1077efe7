package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"conciliacao/server/internal/models"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gorm.io/gorm"
)

// StatusEtapa representa o status de uma etapa do pipeline de upload
type StatusEtapa string

const (
	EtapaPendente   StatusEtapa = "pendente"
	EtapaEmAndamento StatusEtapa = "em_andamento"
	EtapaConcluida  StatusEtapa = "concluida"
	EtapaErro       StatusEtapa = "erro"
)

// Etapa é uma fase do pipeline com sua sub-faixa disjunta do progresso 0-100
type Etapa struct {
	Nome   string      `json:"nome"`
	Status StatusEtapa `json:"status"`
	De     int         `json:"-"`
	Ate    int         `json:"-"`
}

// ProgressoUpload é o evento publicado a cada avanço do pipeline
type ProgressoUpload struct {
	UploadID  string      `json:"upload_id"`
	Etapa     string      `json:"etapa"`
	Status    StatusEtapa `json:"status"`
	Progresso int         `json:"progresso"`
}

// PublicadorProgresso entrega eventos de progresso (hub WebSocket em produção)
type PublicadorProgresso func(evento ProgressoUpload)

// UploadService executa o pipeline de importação da planilha de vendas:
// upload -> leitura -> validação -> processamento, com progresso monotônico
// de 0 a 100 repartido em sub-faixas por etapa
type UploadService struct {
	db       *gorm.DB
	publicar PublicadorProgresso
}

// NewUploadService cria uma nova instância de UploadService
func NewUploadService(db *gorm.DB) *UploadService {
	return &UploadService{db: db}
}

// SetPublicadorProgresso conecta o destino dos eventos de progresso
func (s *UploadService) SetPublicadorProgresso(p PublicadorProgresso) {
	s.publicar = p
}

// novasEtapas monta o pipeline zerado com as sub-faixas fixas de progresso
func novasEtapas() []Etapa {
	return []Etapa{
		{Nome: "upload", Status: EtapaPendente, De: 0, Ate: 25},
		{Nome: "leitura", Status: EtapaPendente, De: 26, Ate: 50},
		{Nome: "validacao", Status: EtapaPendente, De: 51, Ate: 80},
		{Nome: "processamento", Status: EtapaPendente, De: 81, Ate: 100},
	}
}

// execucaoUpload acompanha uma execução do pipeline
type execucaoUpload struct {
	uploadID  string
	etapas    []Etapa
	progresso int
	publicar  PublicadorProgresso
}

func (e *execucaoUpload) iniciar(i int) {
	e.etapas[i].Status = EtapaEmAndamento
	e.avancar(i, 0)
}

// avancar calcula o progresso dentro da sub-faixa da etapa; o contador
// global nunca anda para trás
func (e *execucaoUpload) avancar(i int, fracao float64) {
	if fracao < 0 {
		fracao = 0
	}
	if fracao > 1 {
		fracao = 1
	}
	et := e.etapas[i]
	progresso := et.De + int(fracao*float64(et.Ate-et.De))
	if progresso > e.progresso {
		e.progresso = progresso
	}
	e.emitir(i)
}

func (e *execucaoUpload) concluir(i int) {
	e.etapas[i].Status = EtapaConcluida
	if e.etapas[i].Ate > e.progresso {
		e.progresso = e.etapas[i].Ate
	}
	e.emitir(i)
}

func (e *execucaoUpload) falhar(i int) {
	e.etapas[i].Status = EtapaErro
	e.emitir(i)
}

func (e *execucaoUpload) emitir(i int) {
	if e.publicar == nil {
		return
	}
	e.publicar(ProgressoUpload{
		UploadID:  e.uploadID,
		Etapa:     e.etapas[i].Nome,
		Status:    e.etapas[i].Status,
		Progresso: e.progresso,
	})
}

// linhaVenda é uma linha da planilha já interpretada
type linhaVenda struct {
	CodigoLoja  string
	NumeroERP   string
	NumeroIfood string
	ValorERP    float64
	ValorIfood  float64
	Data        time.Time
}

// GetUploads devolve o histórico de uploads
func (s *UploadService) GetUploads() ([]models.Upload, error) {
	var uploads []models.Upload
	if err := s.db.Preload("Usuario").Order("created_at desc").Find(&uploads).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar uploads: %w", err)
	}
	return uploads, nil
}

// GetUploadByID devolve um upload pelo ID
func (s *UploadService) GetUploadByID(id string) (*models.Upload, error) {
	var upload models.Upload
	if err := s.db.Preload("Usuario").First(&upload, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("upload com ID %s não encontrado: %w", id, err)
	}
	return &upload, nil
}

// CancelarUpload cancela um upload ainda não terminal (ação explícita do
// usuário sobre um registro já submetido)
func (s *UploadService) CancelarUpload(id string) (*models.Upload, error) {
	var upload models.Upload
	if err := s.db.First(&upload, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("upload com ID %s não encontrado: %w", id, err)
	}
	if upload.Status.Terminal() {
		return nil, fmt.Errorf("upload com status '%s' não pode ser cancelado", upload.Status)
	}
	if err := s.db.Model(&upload).Update("status", models.UploadCancelado).Error; err != nil {
		return nil, fmt.Errorf("erro ao cancelar upload: %w", err)
	}
	upload.Status = models.UploadCancelado
	return &upload, nil
}

// ProcessarArquivo executa o pipeline completo sobre o arquivo enviado.
// Arquivo de tipo não suportado é rejeitado antes de qualquer etapa começar,
// sem registro no histórico.
func (s *UploadService) ProcessarArquivo(nomeArquivo string, conteudo []byte, usuarioID *string) (*models.Upload, error) {
	extensao := strings.ToLower(filepath.Ext(nomeArquivo))
	if extensao != ".csv" && extensao != ".xlsx" {
		return nil, fmt.Errorf("tipo de arquivo '%s' não suportado (use .csv ou .xlsx)", extensao)
	}

	upload := &models.Upload{
		NomeArquivo: nomeArquivo,
		UsuarioID:   usuarioID,
		Status:      models.UploadProcessando,
	}
	if err := s.db.Create(upload).Error; err != nil {
		return nil, fmt.Errorf("erro ao registrar upload: %w", err)
	}

	exec := &execucaoUpload{uploadID: upload.ID, etapas: novasEtapas(), publicar: s.publicar}

	// Etapa 1: upload (o conteúdo já chegou; a etapa cobre o recebimento)
	exec.iniciar(0)
	exec.avancar(0, 1)
	exec.concluir(0)

	// Etapa 2: leitura do arquivo
	exec.iniciar(1)
	var linhasCruas [][]string
	var err error
	if extensao == ".xlsx" {
		linhasCruas, err = lerXLSX(conteudo)
	} else {
		linhasCruas, err = lerCSV(conteudo)
	}
	if err != nil {
		return s.falharUpload(upload, exec, 1, err)
	}
	if len(linhasCruas) < 2 {
		return s.falharUpload(upload, exec, 1, fmt.Errorf("arquivo vazio ou sem linhas de dados"))
	}
	exec.concluir(1)

	// Etapa 3: validação linha a linha
	exec.iniciar(2)
	cabecalho := mapearCabecalho(linhasCruas[0])
	if err := validarCabecalho(cabecalho); err != nil {
		return s.falharUpload(upload, exec, 2, err)
	}

	dados := linhasCruas[1:]
	var validas []linhaVenda
	linhasErro := 0
	for i, linha := range dados {
		venda, err := interpretarLinha(linha, cabecalho)
		if err != nil {
			linhasErro++
		} else {
			validas = append(validas, venda)
		}
		exec.avancar(2, float64(i+1)/float64(len(dados)))
	}
	if len(validas) == 0 {
		return s.falharUpload(upload, exec, 2, fmt.Errorf("nenhuma linha válida no arquivo (%d com erro)", linhasErro))
	}
	exec.concluir(2)

	// Etapa 4: processamento (gravação dos pedidos e resumo)
	exec.iniciar(3)
	lojasPorCodigo, err := s.mapearLojas()
	if err != nil {
		return s.falharUpload(upload, exec, 3, err)
	}

	lojasVistas := make(map[string]struct{})
	linhasAviso := 0
	valorTotal := 0.0
	var periodoInicio, periodoFim *time.Time
	for i := range validas {
		v := &validas[i]
		pedido := models.Pedido{
			UploadID:    &upload.ID,
			NumeroERP:   v.NumeroERP,
			NumeroIfood: v.NumeroIfood,
			ValorERP:    v.ValorERP,
			ValorIfood:  v.ValorIfood,
			DataPedido:  v.Data,
		}
		if lojaID, ok := lojasPorCodigo[v.CodigoLoja]; ok {
			pedido.LojaID = &lojaID
			lojasVistas[lojaID] = struct{}{}
		} else {
			// Loja não cadastrada entra como aviso, o pedido fica sem vínculo
			linhasAviso++
		}
		if err := s.db.Create(&pedido).Error; err != nil {
			return s.falharUpload(upload, exec, 3, fmt.Errorf("erro ao gravar pedido: %w", err))
		}

		valorTotal += v.ValorERP
		data := v.Data
		if periodoInicio == nil || data.Before(*periodoInicio) {
			periodoInicio = &data
		}
		if periodoFim == nil || data.After(*periodoFim) {
			periodoFim = &data
		}
		exec.avancar(3, float64(i+1)/float64(len(validas)))
	}

	atualizacao := map[string]interface{}{
		"status":         models.UploadSucesso,
		"total_linhas":   len(dados),
		"linhas_validas": len(validas),
		"linhas_erro":    linhasErro,
		"linhas_aviso":   linhasAviso,
		"qtd_pedidos":    len(validas),
		"qtd_lojas":      len(lojasVistas),
		"valor_total":    valorTotal,
		"periodo_inicio": periodoInicio,
		"periodo_fim":    periodoFim,
	}
	if err := s.db.Model(upload).Updates(atualizacao).Error; err != nil {
		return s.falharUpload(upload, exec, 3, fmt.Errorf("erro ao concluir upload: %w", err))
	}
	exec.concluir(3)

	return s.GetUploadByID(upload.ID)
}

func (s *UploadService) falharUpload(upload *models.Upload, exec *execucaoUpload, etapa int, causa error) (*models.Upload, error) {
	exec.falhar(etapa)
	s.db.Model(upload).Updates(map[string]interface{}{
		"status":   models.UploadErro,
		"mensagem": causa.Error(),
	})
	return nil, causa
}

// mapearLojas indexa as lojas ativas pelo código ERP
func (s *UploadService) mapearLojas() (map[string]string, error) {
	var lojas []models.Loja
	if err := s.db.Find(&lojas).Error; err != nil {
		return nil, fmt.Errorf("erro ao carregar lojas: %w", err)
	}
	porCodigo := make(map[string]string, len(lojas))
	for i := range lojas {
		if lojas[i].CodigoERP != "" {
			porCodigo[lojas[i].CodigoERP] = lojas[i].ID
		}
	}
	return porCodigo, nil
}

// lerXLSX lê a primeira aba da planilha
func lerXLSX(conteudo []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(conteudo))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo XLSX: %w", err)
	}
	defer f.Close()

	aba := f.GetSheetName(0)
	if aba == "" {
		return nil, fmt.Errorf("arquivo não contém abas")
	}
	linhas, err := f.GetRows(aba)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a aba '%s': %w", aba, err)
	}
	return linhas, nil
}

// lerCSV lê o CSV com detecção de delimitador e fallback de codificação
// Windows-1252 (padrão de planilhas exportadas do Excel em pt-BR)
func lerCSV(conteudo []byte) ([][]string, error) {
	dados := conteudo
	if !utf8.Valid(dados) {
		decodificador := charmap.Windows1252.NewDecoder()
		convertido, _, err := transform.Bytes(decodificador, dados)
		if err == nil {
			dados = convertido
		}
	}

	reader := csv.NewReader(bytes.NewReader(dados))
	reader.Comma = detectarDelimitador(dados)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var linhas [][]string
	for {
		linha, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		linhas = append(linhas, linha)
	}
	return linhas, nil
}

// detectarDelimitador escolhe entre ';', ',' e tab pela primeira linha
func detectarDelimitador(dados []byte) rune {
	fim := bytes.IndexByte(dados, '\n')
	if fim < 0 {
		fim = len(dados)
	}
	primeiraLinha := string(dados[:fim])

	pontoVirgula := strings.Count(primeiraLinha, ";")
	virgula := strings.Count(primeiraLinha, ",")
	tab := strings.Count(primeiraLinha, "\t")

	if tab > pontoVirgula && tab > virgula {
		return '\t'
	}
	if pontoVirgula >= virgula {
		return ';'
	}
	return ','
}

// Colunas reconhecidas no cabeçalho da planilha de vendas
var apelidosColunas = map[string][]string{
	"loja":         {"loja", "codigo loja", "código loja", "cod loja", "store"},
	"numero_erp":   {"pedido erp", "numero erp", "número erp", "nº erp", "erp"},
	"numero_ifood": {"pedido ifood", "numero ifood", "número ifood", "nº ifood", "ifood"},
	"valor_erp":    {"valor erp", "vlr erp", "total erp"},
	"valor_ifood":  {"valor ifood", "vlr ifood", "total ifood"},
	"data":         {"data", "data pedido", "data venda", "date"},
}

// mapearCabecalho localiza o índice de cada coluna conhecida
func mapearCabecalho(cabecalho []string) map[string]int {
	indices := make(map[string]int)
	for i, celula := range cabecalho {
		texto := strings.ToLower(strings.TrimSpace(strings.Trim(celula, "\"'\t")))
		for campo, apelidos := range apelidosColunas {
			if _, ok := indices[campo]; ok {
				continue
			}
			for _, apelido := range apelidos {
				if texto == apelido {
					indices[campo] = i
					break
				}
			}
		}
	}
	return indices
}

func validarCabecalho(indices map[string]int) error {
	var faltando []string
	for _, campo := range []string{"loja", "numero_erp", "numero_ifood", "valor_erp", "valor_ifood", "data"} {
		if _, ok := indices[campo]; !ok {
			faltando = append(faltando, campo)
		}
	}
	if len(faltando) > 0 {
		return fmt.Errorf("colunas obrigatórias ausentes no cabeçalho: %s", strings.Join(faltando, ", "))
	}
	return nil
}

// interpretarLinha converte uma linha crua em linhaVenda validada
func interpretarLinha(linha []string, indices map[string]int) (linhaVenda, error) {
	celula := func(campo string) string {
		i := indices[campo]
		if i >= len(linha) {
			return ""
		}
		return strings.TrimSpace(linha[i])
	}

	venda := linhaVenda{
		CodigoLoja:  celula("loja"),
		NumeroERP:   celula("numero_erp"),
		NumeroIfood: celula("numero_ifood"),
	}
	if venda.CodigoLoja == "" {
		return venda, fmt.Errorf("código da loja ausente")
	}
	if venda.NumeroERP == "" && venda.NumeroIfood == "" {
		return venda, fmt.Errorf("linha sem número de pedido ERP nem iFood")
	}

	var err error
	if venda.ValorERP, err = interpretarValor(celula("valor_erp")); err != nil {
		return venda, fmt.Errorf("valor ERP inválido: %w", err)
	}
	if venda.ValorIfood, err = interpretarValor(celula("valor_ifood")); err != nil {
		return venda, fmt.Errorf("valor iFood inválido: %w", err)
	}
	if venda.Data, err = interpretarData(celula("data")); err != nil {
		return venda, err
	}
	return venda, nil
}

// interpretarValor aceita formato brasileiro (1.234,56) e ponto decimal
func interpretarValor(texto string) (float64, error) {
	if texto == "" {
		return 0, nil
	}
	texto = strings.TrimPrefix(texto, "R$")
	texto = strings.TrimSpace(texto)
	if strings.Contains(texto, ",") {
		texto = strings.ReplaceAll(texto, ".", "")
		texto = strings.ReplaceAll(texto, ",", ".")
	}
	valor, err := strconv.ParseFloat(texto, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' não é um valor numérico", texto)
	}
	return valor, nil
}

// Formatos de data aceitos, do mais comum ao menos
var formatosData = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func interpretarData(texto string) (time.Time, error) {
	if texto == "" {
		return time.Time{}, fmt.Errorf("data do pedido ausente")
	}
	for _, formato := range formatosData {
		if t, err := time.Parse(formato, texto); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data '%s' em formato não reconhecido", texto)
}
