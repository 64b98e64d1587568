package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Scheduler enqueues deferred tasks. Implements the conversation core's
// follow-up port.
type Scheduler struct {
	client *asynq.Client
	log    *slog.Logger
}

func NewScheduler(redisOpt asynq.RedisConnOpt, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{
		client: asynq.NewClient(redisOpt),
		log:    log,
	}
}

// ScheduleFollowUp enqueues the post-payment check-in to run after delay.
func (s *Scheduler) ScheduleFollowUp(ctx context.Context, chatID int64, delay time.Duration) error {
	task, err := NewDeliveryFollowUpTask(chatID)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "scheduled delivery follow-up",
		slog.Int64("chat_id", chatID),
		slog.Duration("delay", delay),
		slog.String("task_id", info.ID),
	)

	return nil
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}
