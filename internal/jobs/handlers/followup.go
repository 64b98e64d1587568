// Package handlers contains the asynq task handlers.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/acostyle/pizza-delivery-bot/internal/i18n"
	"github.com/acostyle/pizza-delivery-bot/internal/jobs"
)

// Notifier pushes a message to a chat outside the request cycle. Satisfied
// by the Telegram gateway.
type Notifier interface {
	SendText(chatID int64, text string) error
}

// FollowUpHandler sends the deferred post-delivery check-in.
type FollowUpHandler struct {
	notifier Notifier
	tr       i18n.Translator
	log      *slog.Logger
}

func NewFollowUpHandler(notifier Notifier, tr i18n.Translator, log *slog.Logger) *FollowUpHandler {
	if log == nil {
		log = slog.Default()
	}

	return &FollowUpHandler{notifier: notifier, tr: tr, log: log}
}

func (h *FollowUpHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.DeliveryFollowUpPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.log.ErrorContext(ctx, "follow-up: failed to decode payload",
			slog.String("task_type", t.Type()),
			slog.Any("error", err),
		)
		return err
	}

	if err := h.notifier.SendText(payload.ChatID, h.tr.T("followup.late")); err != nil {
		h.log.ErrorContext(ctx, "follow-up: failed to notify chat",
			slog.Int64("chat_id", payload.ChatID),
			slog.Any("error", err),
		)
		return err
	}

	h.log.InfoContext(ctx, "follow-up delivered", slog.Int64("chat_id", payload.ChatID))

	return nil
}
