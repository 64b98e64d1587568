package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acostyle/pizza-delivery-bot/internal/i18n"
	"github.com/acostyle/pizza-delivery-bot/internal/jobs"
)

type fakeNotifier struct {
	sent map[int64]string
	fail error
}

func (f *fakeNotifier) SendText(chatID int64, text string) error {
	if f.fail != nil {
		return f.fail
	}
	if f.sent == nil {
		f.sent = make(map[int64]string)
	}
	f.sent[chatID] = text
	return nil
}

func translator(t *testing.T) i18n.Translator {
	t.Helper()

	manager, err := i18n.LoadFromDir("../../i18n", "en")
	require.NoError(t, err)

	return manager.Translator("en")
}

func TestFollowUpSendsToChat(t *testing.T) {
	notifier := &fakeNotifier{}
	handler := NewFollowUpHandler(notifier, translator(t), nil)

	task, err := jobs.NewDeliveryFollowUpTask(42)
	require.NoError(t, err)

	require.NoError(t, handler.ProcessTask(context.Background(), task))
	assert.Contains(t, notifier.sent[42], "pizza")
}

func TestFollowUpPropagatesSendFailure(t *testing.T) {
	notifier := &fakeNotifier{fail: errors.New("chat unavailable")}
	handler := NewFollowUpHandler(notifier, translator(t), nil)

	task, err := jobs.NewDeliveryFollowUpTask(42)
	require.NoError(t, err)

	assert.Error(t, handler.ProcessTask(context.Background(), task),
		"failed sends must surface so asynq retries the task")
}

func TestFollowUpRejectsMalformedPayload(t *testing.T) {
	handler := NewFollowUpHandler(&fakeNotifier{}, translator(t), nil)

	task := asynq.NewTask(jobs.TaskTypeDeliveryFollowUp, []byte("{broken"))
	assert.Error(t, handler.ProcessTask(context.Background(), task))
}
