package handlers

import (
	"github.com/rs/zerolog"

	"hr-server/chatbot-api/internal/config"
	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/infrastructure/pushchannel"
)

// Provider bundles all HTTP handlers.
type Provider struct {
	Chat *ChatHandler
}

// NewProvider constructs every handler.
func NewProvider(cfg *config.Config, service *dialogue.Service, hub *pushchannel.Hub, log zerolog.Logger) *Provider {
	return &Provider{
		Chat: NewChatHandler(cfg, service, hub, log),
	}
}
