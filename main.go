package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"conciliacao/server/internal/api"
	"conciliacao/server/internal/config"
	"conciliacao/server/internal/database"
	"conciliacao/server/internal/models"
	"conciliacao/server/internal/services"
	"conciliacao/server/internal/utils"
)

func main() {
	// Carrega as variáveis de ambiente do arquivo .env (se existir)
	// Em produção o arquivo não existe e as variáveis vêm do ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ Arquivo .env não encontrado, usando variáveis do sistema")
	} else {
		log.Printf("✅ Variáveis de ambiente carregadas do arquivo .env")
	}

	cfg := config.Load()

	// Loga a DATABASE_URL sem a senha
	if cfg.DatabaseURL != "" {
		safeURL := cfg.DatabaseURL
		if idx := strings.Index(safeURL, "@"); idx > 0 {
			if schemeIdx := strings.Index(safeURL, "://"); schemeIdx > 0 {
				safeURL = safeURL[:schemeIdx+3] + "***@" + safeURL[idx+1:]
			}
		}
		log.Printf("📋 DATABASE_URL configurada: %s", safeURL)
	} else {
		log.Printf("⚠️ DATABASE_URL não configurada, usando o padrão local")
	}

	if cfg.KafkaBrokers != "" {
		log.Printf("📡 KAFKA_BROKERS configurado: %s", cfg.KafkaBrokers)
	} else {
		log.Printf("⚠️ KAFKA_BROKERS não configurado, eventos de lote desabilitados")
	}

	// Conexão com o PostgreSQL
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha na conexão com o PostgreSQL: %v", err)
	}
	defer database.ClosePostgres(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Falha nas migrações: %v", err)
	}
	log.Println("✅ Migrações do banco concluídas")

	// Conexão com o Redis (com suporte a Sentinel)
	redisClient, err := database.ConnectRedis(
		cfg.RedisURL,
		cfg.RedisSentinelAddrs,
		cfg.RedisMasterName,
	)
	if err != nil {
		log.Fatalf("❌ Falha na conexão com o Redis (sessões dependem dele): %v", err)
	}
	defer database.CloseRedis(redisClient)
	redisUtil := utils.NewRedisClient(redisClient)

	// Serviços
	regiaoService := services.NewRegiaoService(db)
	lojaService := services.NewLojaService(db)
	usuarioService := services.NewUsuarioService(db)
	credencialService := services.NewCredencialService(db)
	parametroService := services.NewParametroService(db)
	loteService := services.NewLoteService(db)
	pedidoService := services.NewPedidoService(db)
	exportacaoService := services.NewExportacaoService()
	uploadService := services.NewUploadService(db)
	log.Println("✅ Serviços inicializados")

	// O progresso do upload sai pelo hub WebSocket
	uploadService.SetPublicadorProgresso(func(evento services.ProgressoUpload) {
		api.BroadcastAtualizacao("upload_progresso", evento)
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Health check (antes do CORS, para o health probe da plataforma)
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "Conciliação Server",
			"version": "1.0.0",
		})
	})

	// Log de todas as requisições
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("🌐 %s %s - Status: %d - Latência: %v", method, path, status, latency)
	})

	// CORS para o frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Controllers
	authController := api.NewAuthController(usuarioService, redisUtil, cfg.SessaoTTLHoras)
	regiaoController := api.NewRegiaoController(regiaoService)
	lojaController := api.NewLojaController(lojaService)
	usuarioController := api.NewUsuarioController(usuarioService)
	credencialController := api.NewCredencialController(credencialService)
	parametroController := api.NewParametroController(parametroService)
	loteController := api.NewLoteController(loteService)
	uploadController := api.NewUploadController(uploadService)
	pedidoController := api.NewPedidoController(pedidoService, exportacaoService)

	apiGroup := r.Group("/api/v1")

	// Autenticação (rotas públicas)
	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/reset-senha", authController.SolicitarResetSenha)
		authGroup.POST("/atualizar-senha", authController.AtualizarSenha)
	}
	log.Println("🔐 Endpoints de autenticação habilitados: /api/v1/auth/login")

	// Rotas protegidas por sessão
	protegido := apiGroup.Group("")
	protegido.Use(api.SessaoMiddleware(redisUtil))
	{
		protegido.POST("/auth/logout", authController.Logout)
		protegido.GET("/auth/me", authController.Me)

		// Cadastros: somente o corporativo administra regionais, lojas e usuários
		admin := protegido.Group("")
		admin.Use(api.RequirePapel(models.PapelCorporativo))
		{
			admin.POST("/regioes", regiaoController.CreateRegiao)
			admin.PUT("/regioes/:id", regiaoController.UpdateRegiao)
			admin.DELETE("/regioes/:id", regiaoController.DeleteRegiao)

			admin.POST("/lojas", lojaController.CreateLoja)
			admin.PUT("/lojas/:id", lojaController.UpdateLoja)
			admin.DELETE("/lojas/:id", lojaController.DeleteLoja)

			admin.GET("/usuarios", usuarioController.GetUsuarios)
			admin.GET("/usuarios/:id", usuarioController.GetUsuario)
			admin.POST("/usuarios", usuarioController.CreateUsuario)
			admin.PUT("/usuarios/:id", usuarioController.UpdateUsuario)
			admin.DELETE("/usuarios/:id", usuarioController.DeleteUsuario)

			admin.GET("/parametros", parametroController.GetParametros)
			admin.POST("/parametros", parametroController.CreateParametro)
			admin.PUT("/parametros/:id", parametroController.UpdateParametro)
			admin.DELETE("/parametros/:id", parametroController.DeleteParametro)
		}

		// Gestão de credenciais: corporativo e regional
		gestao := protegido.Group("")
		gestao.Use(api.RequirePapel(models.PapelCorporativo, models.PapelRegional))
		{
			gestao.GET("/credenciais", credencialController.GetCredenciais)
			gestao.GET("/credenciais/:loja_id", credencialController.GetCredencialPorLoja)
			gestao.PUT("/credenciais/:loja_id", credencialController.SalvarCredencial)
			gestao.DELETE("/credenciais/:loja_id/token", credencialController.LimparToken)

			gestao.POST("/uploads", uploadController.ProcessarUpload)
			gestao.GET("/uploads", uploadController.GetUploads)
			gestao.GET("/uploads/:id", uploadController.GetUpload)
			gestao.POST("/uploads/:id/cancelar", uploadController.CancelarUpload)

			gestao.POST("/lotes/:id/cancelar", loteController.CancelarLote)
		}

		// Consultas abertas a todos os papéis autenticados
		protegido.GET("/regioes", regiaoController.GetRegioes)
		protegido.GET("/regioes/:id", regiaoController.GetRegiao)
		protegido.GET("/lojas", lojaController.GetLojas)
		protegido.GET("/lojas/:id", lojaController.GetLoja)

		protegido.GET("/lotes", loteController.GetLotes)
		protegido.GET("/lotes/:id", loteController.GetLote)

		protegido.GET("/pedidos", pedidoController.GetPedidos)
		protegido.GET("/pedidos/resumo", pedidoController.GetResumo)
		protegido.GET("/pedidos/exportar", pedidoController.ExportarPedidos)
	}

	// WebSocket de progresso e atualizações em tempo real
	apiGroup.GET("/ws", api.ServeProgressoWS)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rota não encontrada"})
	})

	// Hub WebSocket
	go api.ProgressoHub.Run()

	// Consumidor Kafka com os resultados dos lotes de sincronização
	if cfg.KafkaBrokers != "" {
		consumer := api.NewKafkaLotesConsumer(
			cfg.KafkaBrokers,
			cfg.KafkaTopicoLotes,
			loteService,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			cfg.KafkaCACert,
		)
		consumer.Start()
		defer consumer.Stop()
	}

	port := cfg.ServerPort
	if port == "" {
		port = os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
	}

	log.Printf("🚀 Servidor iniciando na porta %s", port)
	log.Printf("📡 API disponível em http://0.0.0.0:%s/api/v1", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Falha ao iniciar o servidor: %v", err)
	}
}
