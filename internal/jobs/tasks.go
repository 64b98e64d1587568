// Package jobs holds the asynq task definitions and the worker that
// processes them. The queue survives restarts, so a paid order's follow-up
// fires even if the bot goes down in between.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TaskTypeDeliveryFollowUp is the deferred check-in after a paid
	// delivery order.
	TaskTypeDeliveryFollowUp = "delivery:followup"
)

const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// DeliveryFollowUpPayload identifies the chat the check-in goes to.
type DeliveryFollowUpPayload struct {
	ChatID int64 `json:"chat_id"`
}

func NewDeliveryFollowUpTask(chatID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(DeliveryFollowUpPayload{ChatID: chatID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeDeliveryFollowUp, payload, asynq.Queue(QueueDefault)), nil
}
