package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/khushi-1907/virtual-study-group/internal/config"
	"github.com/khushi-1907/virtual-study-group/internal/database"
	"github.com/khushi-1907/virtual-study-group/internal/handlers"
	"github.com/khushi-1907/virtual-study-group/internal/logging"
	"github.com/khushi-1907/virtual-study-group/internal/middleware"
	"github.com/khushi-1907/virtual-study-group/internal/routes"
	"github.com/khushi-1907/virtual-study-group/internal/service"
	"github.com/khushi-1907/virtual-study-group/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logging.Setup()

	if err := config.LoadConfig(); err != nil {
		log.Printf("Warning: Failed to load YAML config: %v", err)
		log.Println("Using default configuration...")
	}
	cfg := config.GetConfig()

	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		slog.Info("redis fan-out enabled", "addr", cfg.Redis.Addr)
	}

	hub := ws.NewHub(rdb)

	groupSvc := service.NewGroupService(db)
	msgSvc := service.NewMessageService(db)
	userSvc := service.NewUserService(db)
	summarizer := service.NewAnthropicSummarizer(cfg.Anthropic)

	var providers []service.EmailProvider
	if cfg.Email.ResendAPIKey != "" {
		providers = append(providers, service.NewResendService(cfg.Email.ResendAPIKey, cfg.Email.FromEmail))
	}
	if cfg.Email.MailerSendAPIKey != "" {
		providers = append(providers, service.NewMailerSendService(cfg.Email.MailerSendAPIKey, cfg.Email.FromEmail, cfg.Email.FromName))
	}
	emailSvc := service.NewMultiProviderEmailService(providers)
	slog.Info("email providers configured", "count", emailSvc.ProviderCount())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CustomLoggingMiddleware())
	r.Use(middleware.UserExtractionMiddleware())
	r.Use(middleware.CORS())

	authHandler := handlers.NewAuthHandler(db, emailSvc)
	groupHandler := handlers.NewGroupHandler(db)
	messageHandler := handlers.NewMessageHandler(groupSvc, msgSvc)
	fileHandler := handlers.NewFileHandler(db, groupSvc)
	summaryHandler := handlers.NewSummaryHandler(summarizer)

	routes.SetupRoutes(r, authHandler, groupHandler, messageHandler, fileHandler, summaryHandler, hub, groupSvc, msgSvc, userSvc, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
