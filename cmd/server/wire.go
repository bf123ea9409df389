//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hr-server/chatbot-api/internal/config"
	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/domain/i18n"
	"hr-server/chatbot-api/internal/domain/receipt"
	"hr-server/chatbot-api/internal/infrastructure/auth"
	"hr-server/chatbot-api/internal/infrastructure/database"
	"hr-server/chatbot-api/internal/infrastructure/hrapi"
	"hr-server/chatbot-api/internal/infrastructure/logger"
	"hr-server/chatbot-api/internal/infrastructure/pushchannel"
	sessionrepo "hr-server/chatbot-api/internal/infrastructure/repository/session"
	"hr-server/chatbot-api/internal/interfaces/httpserver"
)

var dialogueSet = wire.NewSet(
	sessionrepo.NewRepository,
	wire.Bind(new(dialogue.Repository), new(*sessionrepo.Repository)),
	newHRClient,
	wire.Bind(new(dialogue.HRClient), new(*hrapi.Client)),
	i18n.Load,
	receipt.NewBuilder,
	dialogue.NewEngine,
	dialogue.NewService,
	pushchannel.NewHub,
	newPushConsumer,
)

// BuildApplication demonstrates how to assemble the chatbot service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		dialogueSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newHRClient(cfg *config.Config) *hrapi.Client {
	return hrapi.NewClient(hrapi.Config{
		BaseURL:      cfg.HRAPIURL,
		APIKey:       cfg.HRAPIKey,
		Timeout:      cfg.HRAPITimeout,
		DirectoryTTL: cfg.DirectoryTTL,
	})
}

func newPushConsumer(cfg *config.Config, service *dialogue.Service, hub *pushchannel.Hub, log zerolog.Logger) *pushchannel.Consumer {
	return pushchannel.NewConsumer(cfg.PushURL, cfg.PushRetryDelay, service, hub, log)
}
