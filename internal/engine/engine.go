// Package engine is the conversation core: a per-user state machine that
// turns normalized events into replies. It owns no transport and no
// persistence beyond the injected ports.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/acostyle/pizza-delivery-bot/internal/bot/keyboard"
	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/i18n"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
)

// Recorders let the composition root attach metrics without the core
// importing the metrics package.
var (
	transitionRecorder func(from, to string)
	decisionRecorder   func(tier string)
)

// RegisterTransitionRecorder attaches a hook called on every persisted state
// transition.
func RegisterTransitionRecorder(f func(from, to string)) { transitionRecorder = f }

// RegisterDecisionRecorder attaches a hook called on every fulfillment tier
// decision.
func RegisterDecisionRecorder(f func(tier string)) { decisionRecorder = f }

// Config tunes the conversation core.
type Config struct {
	// PageSize is the number of catalog positions per menu page.
	PageSize int
	Currency string
	// FollowUpDelay is how long after payment the check-in message fires.
	FollowUpDelay time.Duration
}

// Engine drives the conversation.
type Engine struct {
	sessions  SessionStore
	commerce  Commerce
	geocoder  Geocoder
	scheduler FollowUpScheduler
	tr        i18n.Translator
	log       *slog.Logger
	cfg       Config
}

func New(sessions SessionStore, commerce Commerce, geocoder Geocoder,
	scheduler FollowUpScheduler, tr i18n.Translator, log *slog.Logger, cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 8
	}
	if cfg.Currency == "" {
		cfg.Currency = "RUB"
	}
	if cfg.FollowUpDelay <= 0 {
		cfg.FollowUpDelay = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}

	return &Engine{
		sessions:  sessions,
		commerce:  commerce,
		geocoder:  geocoder,
		scheduler: scheduler,
		tr:        tr,
		log:       log,
		cfg:       cfg,
	}
}

// handlerFunc processes one event in one state and names the next state.
type handlerFunc func(ctx context.Context, ev Event) ([]Outbound, state.State, error)

// Handle processes one event. On error nothing is persisted, so the user can
// resend the same input.
func (e *Engine) Handle(ctx context.Context, ev Event) ([]Outbound, error) {
	// precheckout queries must be answered quickly and never touch state
	if ev.Kind == EventPrecheckout {
		return e.handlePrecheckout(ev), nil
	}

	current, err := e.sessions.GetState(ctx, ev.UserID)
	switch {
	case errors.Is(err, state.ErrStateNotFound):
		current = state.StateStart
	case err != nil:
		return nil, apperrors.NewExternalAPIError("session store", err)
	}

	// the invoice message stays payable after the conversation moves on,
	// so successful payments are honored from any state
	if ev.Kind == EventPayment {
		return e.run(ctx, ev, current, e.handlePaymentSuccess)
	}

	// /start always rebases the conversation
	if ev.Kind == EventCommand && ev.Command == "/start" {
		current = state.StateStart
	}

	// menu is the escape hatch everywhere except mid-payment
	if ev.Kind == EventButton && ev.Button.Action == keyboard.ActionMenu &&
		current != state.StateAwaitingPayment && current != state.StateStart {
		return e.run(ctx, ev, current, e.handleMenuEscape)
	}

	var handler handlerFunc
	switch current {
	case state.StateStart:
		handler = e.handleStart
	case state.StateBrowsingMenu:
		handler = e.handleBrowsingMenu
	case state.StateViewingProduct:
		handler = e.handleViewingProduct
	case state.StateViewingCart:
		handler = e.handleViewingCart
	case state.StateAwaitingLocation:
		handler = e.handleAwaitingLocation
	case state.StateAwaitingDeliveryChoice:
		handler = e.handleAwaitingDeliveryChoice
	case state.StateAwaitingEmail:
		handler = e.handleAwaitingEmail
	case state.StateAwaitingPayment:
		handler = e.handleAwaitingPayment
	default:
		// unreachable with a closed enum, but a corrupted store entry
		// must not crash the loop
		return nil, apperrors.NewInvariantViolation("unknown session state: " + string(current))
	}

	return e.run(ctx, ev, current, handler)
}

func (e *Engine) run(ctx context.Context, ev Event, current state.State, handler handlerFunc) ([]Outbound, error) {
	out, next, err := handler(ctx, ev)
	if err != nil {
		e.log.ErrorContext(ctx, "event handling failed",
			"user_id", ev.UserID,
			"state", string(current),
			"event_kind", string(ev.Kind),
			"error", err,
		)

		return nil, err
	}

	if err := e.sessions.SetState(ctx, ev.UserID, next); err != nil {
		return nil, apperrors.NewExternalAPIError("session store", err)
	}
	if next != current && transitionRecorder != nil {
		transitionRecorder(string(current), string(next))
	}

	// events default to replying into their own chat
	for i := range out {
		if out[i].ChatID == 0 {
			out[i].ChatID = ev.ChatID
		}
	}

	return out, nil
}

// ignore keeps the state unchanged for events that make no sense where the
// user currently is.
func (e *Engine) ignore(ctx context.Context, ev Event, current state.State) ([]Outbound, state.State, error) {
	e.log.DebugContext(ctx, "unrecognized event ignored",
		"user_id", ev.UserID,
		"state", string(current),
		"event_kind", string(ev.Kind),
		"action", ev.Button.Action,
	)

	return nil, current, nil
}
