package pushchannel

import (
	"context"
	"errors"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"hr-server/chatbot-api/internal/domain/dialogue"
	"hr-server/chatbot-api/internal/infrastructure/metrics"
	"hr-server/chatbot-api/internal/infrastructure/observability"
)

// Consumer maintains the upstream push connection. It reconnects with a
// flat delay and never gives up while the context is alive; a malformed
// frame is logged and dropped without tearing the connection down.
type Consumer struct {
	url        string
	retryDelay time.Duration
	service    *dialogue.Service
	hub        *Hub
	log        zerolog.Logger
}

// NewConsumer wires the upstream push consumer.
func NewConsumer(url string, retryDelay time.Duration, service *dialogue.Service, hub *Hub, log zerolog.Logger) *Consumer {
	return &Consumer{
		url:        url,
		retryDelay: retryDelay,
		service:    service,
		hub:        hub,
		log:        log.With().Str("component", "push-consumer").Logger(),
	}
}

// Run consumes the push feed until the context is cancelled. A missing
// URL disables the consumer entirely.
func (c *Consumer) Run(ctx context.Context) {
	if c.url == "" {
		c.log.Info().Msg("push channel disabled, no url configured")
		return
	}

	for {
		if err := c.consume(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.log.Warn().Err(err).Msg("push connection lost")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.retryDelay):
			metrics.PushReconnectsTotal.Inc()
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "shutting down")

	c.log.Info().Str("url", c.url).Msg("push channel connected")

	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		c.dispatch(ctx, raw)
	}
}

// dispatch applies one raw frame. Frame errors and handler errors are
// logged; neither interrupts the read loop.
func (c *Consumer) dispatch(ctx context.Context, raw []byte) {
	event, err := Decode(raw)
	if err != nil {
		c.log.Warn().Err(err).Msg("dropping malformed push frame")
		metrics.RecordPushEvent("malformed", "dropped")
		return
	}

	ctx, span := observability.StartPushSpan(ctx, event.Type)
	defer span.End()

	switch event.Type {
	case FrameContext:
		if err := c.service.ApplyContext(ctx, event.Context.EmployeeID); err != nil {
			c.log.Error().Err(err).Str("employee", event.Context.EmployeeID).Msg("apply context failed")
			observability.RecordError(span, err)
			metrics.RecordPushEvent(event.Type, "error")
			return
		}
		metrics.RecordPushEvent(event.Type, "applied")

	case FrameNotification, FrameNotificationUpdate:
		updated, err := c.service.Notify(ctx, *event.Notification)
		if err != nil {
			c.log.Error().Err(err).Str("prompt", event.Notification.ID).Msg("notify failed")
			observability.RecordError(span, err)
			metrics.RecordPushEvent(event.Type, "error")
			return
		}
		for _, session := range updated {
			c.hub.Broadcast(session.ID, "prompt", event.Notification)
		}
		metrics.RecordPushEvent(event.Type, "applied")
	}
}
