package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"hr-server/chatbot-api/internal/config"
	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/domain/i18n"
	"hr-server/chatbot-api/internal/domain/receipt"
	"hr-server/chatbot-api/internal/infrastructure/auth"
	"hr-server/chatbot-api/internal/infrastructure/database"
	"hr-server/chatbot-api/internal/infrastructure/hrapi"
	"hr-server/chatbot-api/internal/infrastructure/logger"
	"hr-server/chatbot-api/internal/infrastructure/observability"
	"hr-server/chatbot-api/internal/infrastructure/pushchannel"
	sessionrepo "hr-server/chatbot-api/internal/infrastructure/repository/session"
	"hr-server/chatbot-api/internal/interfaces/httpserver"
)

// Application bundles the long-running pieces of the service.
type Application struct {
	httpServer *httpserver.HttpServer
	consumer   *pushchannel.Consumer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, consumer *pushchannel.Consumer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		consumer:   consumer,
		log:        log,
	}
}

// Start runs the push consumer in the background and blocks on the HTTP
// server until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	go a.consumer.Run(ctx)
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	catalogue, err := i18n.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load message catalogue")
	}

	sessionRepository := sessionrepo.NewRepository(db)
	hrClient := hrapi.NewClient(hrapi.Config{
		BaseURL:      cfg.HRAPIURL,
		APIKey:       cfg.HRAPIKey,
		Timeout:      cfg.HRAPITimeout,
		DirectoryTTL: cfg.DirectoryTTL,
	})
	receiptBuilder := receipt.NewBuilder(catalogue)
	engine := dialogue.NewEngine(hrClient, catalogue, receiptBuilder, log)
	chatService := dialogue.NewService(sessionRepository, engine, log)

	hub := pushchannel.NewHub(log)
	consumer := pushchannel.NewConsumer(cfg.PushURL, cfg.PushRetryDelay, chatService, hub, log)

	httpServer := httpserver.New(cfg, log, chatService, hub, authValidator)
	app := NewApplication(httpServer, consumer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
