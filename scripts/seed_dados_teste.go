package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"conciliacao/server/internal/config"
	"conciliacao/server/internal/database"
	"conciliacao/server/internal/models"
)

// Popula o banco local com dados de teste: regionais, lojas, usuários de
// cada papel e uma base pequena de pedidos com os três status de
// conciliação. Idempotente: registros existentes não são duplicados.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Arquivo .env não encontrado, usando variáveis do sistema")
	}

	cfg := config.Load()
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha na conexão com o PostgreSQL: %v", err)
	}
	defer database.ClosePostgres(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Falha nas migrações: %v", err)
	}

	sudeste := garantirRegiao(db, "Sudeste")
	sul := garantirRegiao(db, "Sul")

	centro := garantirLoja(db, "Loja Centro", "ERP-001", "IF-9001", &sudeste.ID)
	paulista := garantirLoja(db, "Loja Paulista", "ERP-002", "IF-9002", &sudeste.ID)
	moinhos := garantirLoja(db, "Loja Moinhos", "ERP-003", "IF-9003", &sul.ID)

	garantirUsuario(db, "Admin Corporativo", "admin@conciliacao.com.br", models.PapelCorporativo, nil, nil)
	garantirUsuario(db, "Gestor Sudeste", "sudeste@conciliacao.com.br", models.PapelRegional, &sudeste.ID, nil)
	garantirUsuario(db, "Operador Centro", "centro@conciliacao.com.br", models.PapelLoja, &sudeste.ID, &centro.ID)

	hoje := time.Now().Truncate(24 * time.Hour)
	garantirPedido(db, &centro.ID, "100001", "IF-100001", 89.90, 89.90, hoje.AddDate(0, 0, -1))
	garantirPedido(db, &centro.ID, "100002", "IF-100002", 54.50, 57.20, hoje.AddDate(0, 0, -1))
	garantirPedido(db, &paulista.ID, "100003", "", 120.00, 0, hoje.AddDate(0, 0, -2))
	garantirPedido(db, &paulista.ID, "", "IF-100004", 0, 36.40, hoje.AddDate(0, 0, -2))
	garantirPedido(db, &moinhos.ID, "100005", "IF-100005", 210.75, 210.75, hoje.AddDate(0, 0, -3))

	log.Println("✅ Dados de teste criados")
}

func garantirRegiao(db *gorm.DB, nome string) *models.Regiao {
	var regiao models.Regiao
	if err := db.Where("nome = ?", nome).First(&regiao).Error; err == nil {
		return &regiao
	}
	regiao = models.Regiao{Nome: nome}
	if err := db.Create(&regiao).Error; err != nil {
		log.Fatalf("❌ Erro ao criar regional %s: %v", nome, err)
	}
	log.Printf("✅ Regional criada: %s", nome)
	return &regiao
}

func garantirLoja(db *gorm.DB, nome, codigoERP, codigoIfood string, regiaoID *string) *models.Loja {
	var loja models.Loja
	if err := db.Where("codigo_erp = ?", codigoERP).First(&loja).Error; err == nil {
		return &loja
	}
	loja = models.Loja{Nome: nome, CodigoERP: codigoERP, CodigoIfood: codigoIfood, RegiaoID: regiaoID}
	if err := db.Create(&loja).Error; err != nil {
		log.Fatalf("❌ Erro ao criar loja %s: %v", nome, err)
	}
	log.Printf("✅ Loja criada: %s", nome)
	return &loja
}

func garantirUsuario(db *gorm.DB, nome, email string, papel models.Papel, regiaoID, lojaID *string) {
	var existente models.Usuario
	if err := db.Where("email = ?", email).First(&existente).Error; err == nil {
		return
	}
	// Senha padrão de ambiente local
	hash, err := bcrypt.GenerateFromPassword([]byte("conciliacao123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Erro ao gerar hash de senha: %v", err)
	}
	usuario := models.Usuario{
		Nome:      nome,
		Email:     email,
		Papel:     papel,
		RegiaoID:  regiaoID,
		LojaID:    lojaID,
		SenhaHash: string(hash),
	}
	if err := db.Create(&usuario).Error; err != nil {
		log.Fatalf("❌ Erro ao criar usuário %s: %v", email, err)
	}
	log.Printf("✅ Usuário criado: %s (%s)", email, papel)
}

func garantirPedido(db *gorm.DB, lojaID *string, numeroERP, numeroIfood string, valorERP, valorIfood float64, data time.Time) {
	var existente models.Pedido
	query := db.Where("data_pedido = ?", data)
	if numeroERP != "" {
		query = query.Where("numero_erp = ?", numeroERP)
	} else {
		query = query.Where("numero_ifood = ?", numeroIfood)
	}
	if err := query.First(&existente).Error; err == nil {
		return
	}
	pedido := models.Pedido{
		LojaID:      lojaID,
		NumeroERP:   numeroERP,
		NumeroIfood: numeroIfood,
		ValorERP:    valorERP,
		ValorIfood:  valorIfood,
		DataPedido:  data,
	}
	if err := db.Create(&pedido).Error; err != nil {
		log.Fatalf("❌ Erro ao criar pedido: %v", err)
	}
}
