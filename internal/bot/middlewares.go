package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	telebot "gopkg.in/telebot.v3"

	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/idempotency"
	"github.com/acostyle/pizza-delivery-bot/internal/ratelimit"
	"github.com/acostyle/pizza-delivery-bot/pkg/logger"
	"github.com/acostyle/pizza-delivery-bot/pkg/metrics"
)

// Handler processes one transport update.
type Handler func(c telebot.Context) error

// Middleware wraps a Handler with cross-cutting behavior.
type Middleware func(next Handler) Handler

func chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

// RecoveryMiddleware catches panics, reports them via the centralized
// handler, and notifies the user.
func RecoveryMiddleware(log *slog.Logger, errHandler *apperrors.Handler) Middleware {
	return func(next Handler) Handler {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler",
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())),
					)

					appErr := apperrors.NewInvariantViolation(fmt.Sprintf("panic recovered: %v", r))
					userMsg, _ := errHandler.Handle(context.Background(), appErr)
					if sendErr := c.Send(userMsg); sendErr != nil {
						log.Error("failed to notify user about panic", slog.Any("error", sendErr))
					}

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging for
// handler failures.
func ErrorHandlingMiddleware(errHandler *apperrors.Handler) Middleware {
	return func(next Handler) Handler {
		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			userMsg, _ := errHandler.Handle(context.Background(), err)
			_ = c.Send(userMsg)

			return nil
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates with a fresh
// correlation ID per update.
func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(c telebot.Context) error {
			start := time.Now()
			correlationID := logger.NewCorrelationID()

			userID := int64(0)
			if c.Sender() != nil {
				userID = c.Sender().ID
			}

			log.Info("handling update",
				slog.Int64("user_id", userID),
				slog.String("action", updateAction(c)),
				slog.String("correlation_id", correlationID),
			)
			err := next(c)
			log.Info("handled update",
				slog.Int64("user_id", userID),
				slog.String("action", updateAction(c)),
				slog.String("correlation_id", correlationID),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

// IdempotencyMiddleware drops Telegram redeliveries of the same update.
func IdempotencyMiddleware(dedup idempotency.Deduplicator, log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(c telebot.Context) error {
			key := updateKey(c)
			if key == "" {
				return next(c)
			}

			seen, err := dedup.Seen(context.Background(), key)
			if err != nil {
				// dedup is best-effort, a broken store must not drop updates
				log.Error("idempotency check failed", slog.String("key", key), slog.Any("error", err))
				return next(c)
			}
			if seen {
				log.Debug("duplicate update dropped", slog.String("key", key))
				return nil
			}

			return next(c)
		}
	}
}

// RateLimitMiddleware enforces a per-user limit on incoming updates.
func RateLimitMiddleware(limiter ratelimit.Limiter, limit int, window time.Duration, log *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(c telebot.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			key := fmt.Sprintf("user:%d", sender.ID)
			result, err := limiter.Check(context.Background(), key, limit, window)
			if err != nil {
				log.Error("rate limit check failed", slog.Int64("user_id", sender.ID), slog.Any("error", err))
				return next(c)
			}
			if !result.Allowed {
				log.Warn("rate limited", slog.Int64("user_id", sender.ID))
				return nil
			}

			return next(c)
		}
	}
}

// MetricsMiddleware measures execution time and status for update handling.
func MetricsMiddleware(next Handler) Handler {
	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.RecordEvent(updateKind(c), status, time.Since(start))

		return err
	}
}

func updateKind(c telebot.Context) string {
	switch {
	case c.PreCheckoutQuery() != nil:
		return "precheckout"
	case c.Callback() != nil:
		return "callback"
	case c.Message() == nil:
		return "unknown"
	case c.Message().Payment != nil:
		return "payment"
	case c.Message().Location != nil:
		return "location"
	default:
		return "text"
	}
}

func updateAction(c telebot.Context) string {
	if cb := c.Callback(); cb != nil {
		return cb.Data
	}

	return c.Text()
}

func updateKey(c telebot.Context) string {
	if cb := c.Callback(); cb != nil && cb.ID != "" {
		return "cb:" + cb.ID
	}

	if msg := c.Message(); msg != nil && msg.ID != 0 {
		chatID := int64(0)
		if msg.Chat != nil {
			chatID = msg.Chat.ID
		}
		return fmt.Sprintf("msg:%d:%d", chatID, msg.ID)
	}

	return ""
}
