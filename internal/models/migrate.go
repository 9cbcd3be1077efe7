package models

import (
	"log"

	"gorm.io/gorm"
)

// AutoMigrate cria as tabelas no banco
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Regiao{},
		&Loja{},
		&Usuario{},
		&Credencial{},
		&LoteSincronizacao{},
		&Upload{},
		&Pedido{},
		&Parametro{},
	)
	if err != nil {
		log.Printf("❌ AutoMigrate falhou: %v", err)
		return err
	}
	log.Println("✅ Tabelas migradas com sucesso")
	return nil
}
