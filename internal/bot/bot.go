// Package bot is the Telegram gateway: it normalizes transport updates into
// core events, runs them through the conversation engine and delivers the
// replies.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/acostyle/pizza-delivery-bot/internal/engine"
	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/idempotency"
	"github.com/acostyle/pizza-delivery-bot/internal/ratelimit"
	"github.com/acostyle/pizza-delivery-bot/pkg/config"
	"github.com/acostyle/pizza-delivery-bot/pkg/logger"
)

const handleTimeout = 30 * time.Second

// Bot wraps telebot.Bot with the conversation engine and its middlewares.
type Bot struct {
	telebot       *telebot.Bot
	engine        *engine.Engine
	errHandler    *apperrors.Handler
	log           *slog.Logger
	currency      string
	providerToken string
}

// New builds a telegram bot instance configured according to the application
// settings.
func New(
	cfg config.Config,
	eng *engine.Engine,
	errHandler *apperrors.Handler,
	dedup idempotency.Deduplicator,
	limiter ratelimit.Limiter,
	log *slog.Logger,
) (*Bot, error) {
	tb, err := telebot.NewBot(telebot.Settings{
		Token: cfg.Bot.Token,
		Poller: &telebot.LongPoller{
			Timeout: cfg.Bot.PollTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	b := &Bot{
		telebot:       tb,
		engine:        eng,
		errHandler:    errHandler,
		log:           log,
		currency:      cfg.Bot.Currency,
		providerToken: cfg.Bot.PaymentProviderToken,
	}

	middlewares := []Middleware{RecoveryMiddleware(log, errHandler)}
	if dedup != nil {
		middlewares = append(middlewares, IdempotencyMiddleware(dedup, log))
	}
	middlewares = append(middlewares,
		ErrorHandlingMiddleware(errHandler),
		LoggingMiddleware(log),
	)
	if limiter != nil && cfg.RateLimit.Enabled {
		middlewares = append(middlewares,
			RateLimitMiddleware(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window, log))
	}
	middlewares = append(middlewares, MetricsMiddleware)

	handler := chain(b.handleUpdate, middlewares...)
	route := func(c telebot.Context) error { return handler(c) }

	tb.Handle(telebot.OnText, route)
	tb.Handle(telebot.OnLocation, route)
	tb.Handle(telebot.OnCallback, route)
	tb.Handle(telebot.OnCheckout, route)
	tb.Handle(telebot.OnPayment, route)

	return b, nil
}

// handleUpdate is the single entry point: every update becomes a core event.
func (b *Bot) handleUpdate(c telebot.Context) error {
	ev, ok := normalize(c)
	if !ok {
		return nil
	}

	if c.Callback() != nil {
		// stop the client-side spinner no matter how handling ends
		defer func() {
			if respondErr := c.Respond(); respondErr != nil {
				b.log.Debug("failed to respond to callback query",
					slog.Any("error", respondErr),
				)
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	ctx = logger.WithCorrelationID(ctx, logger.NewCorrelationID())

	replies, err := b.engine.Handle(ctx, ev)
	if err != nil {
		return err
	}

	for _, out := range replies {
		if out.Kind == engine.OutPrecheckAnswer {
			if answerErr := b.answerPrecheckout(c, out); answerErr != nil {
				return answerErr
			}
			continue
		}

		if deliverErr := b.deliver(out); deliverErr != nil {
			// replies to other chats (couriers) must not fail the
			// user's own flow
			if out.ChatID != ev.ChatID {
				b.log.Error("failed to deliver side message",
					slog.Int64("chat_id", out.ChatID),
					slog.Any("error", deliverErr),
				)
				continue
			}
			return deliverErr
		}
	}

	return nil
}

func (b *Bot) answerPrecheckout(c telebot.Context, out engine.Outbound) error {
	if out.Precheck.OK {
		return c.Accept()
	}

	return c.Accept(out.Precheck.ErrorMsg)
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	b.telebot.Start()
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying instance for integrations such as health
// checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}
