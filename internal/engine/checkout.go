package engine

import (
	"context"
	"strconv"

	"github.com/acostyle/pizza-delivery-bot/internal/bot/keyboard"
	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/geo"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
)

// handleAwaitingLocation resolves the drop-off point, finds the nearest
// pizzeria and classifies the distance into a fulfillment tier.
func (e *Engine) handleAwaitingLocation(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	var dropoff geo.Coordinate

	switch ev.Kind {
	case EventLocation:
		dropoff = *ev.Location
	case EventText:
		point, ok, err := e.geocoder.Resolve(ctx, ev.Text)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return []Outbound{textReply(e.tr.T("location.not_recognized"), nil)},
				state.StateAwaitingLocation, nil
		}
		dropoff = point
	default:
		return e.ignore(ctx, ev, state.StateAwaitingLocation)
	}

	if err := e.commerce.SaveCustomerAddress(ctx, ev.UserID, dropoff.Lon, dropoff.Lat); err != nil {
		return nil, "", err
	}

	nearest, distance, tier, err := e.resolveFulfillment(ctx, dropoff)
	if err != nil {
		return nil, "", err
	}
	if decisionRecorder != nil {
		decisionRecorder(string(tier))
	}

	params := map[string]string{
		"Distance": strconv.FormatFloat(distance, 'f', 1, 64),
		"Address":  nearest.Address,
		"Fee":      strconv.Itoa(tier.Fee()),
	}
	text := e.tr.Render(tier.TemplateKey(), params)

	if !tier.OffersDelivery() {
		menuRow := []InlineButton{{Text: e.tr.T("menu.menu"), Data: keyboard.ActionMenu}}
		return []Outbound{textReply(text, Markup{menuRow})}, state.StateBrowsingMenu, nil
	}

	pickupData, err := keyboard.Encode(keyboard.ActionPickup, nearest.ID)
	if err != nil {
		return nil, "", err
	}
	deliveryData, err := keyboard.EncodeDelivery(nearest.CourierID, dropoff)
	if err != nil {
		return nil, "", err
	}

	markup := Markup{{
		{Text: e.tr.T("choice.delivery"), Data: deliveryData},
		{Text: e.tr.T("choice.pickup"), Data: pickupData},
	}}

	return []Outbound{textReply(text, markup)}, state.StateAwaitingDeliveryChoice, nil
}

func (e *Engine) resolveFulfillment(ctx context.Context, dropoff geo.Coordinate) (geo.FulfillmentPoint, float64, geo.Tier, error) {
	points, err := e.commerce.FulfillmentPoints(ctx)
	if err != nil {
		return geo.FulfillmentPoint{}, 0, "", err
	}

	nearest, distance, err := geo.Nearest(dropoff, points)
	if err != nil {
		return geo.FulfillmentPoint{}, 0, "",
			apperrors.NewInvariantViolation("no fulfillment points registered")
	}

	return nearest, distance, geo.Classify(distance), nil
}

// handleAwaitingDeliveryChoice issues the invoice. The fulfillment decision
// rides in the invoice payload so payment handling needs no extra state.
func (e *Engine) handleAwaitingDeliveryChoice(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	if ev.Kind != EventButton {
		return e.ignore(ctx, ev, state.StateAwaitingDeliveryChoice)
	}

	cart, hasItems, err := e.cartTotal(ctx, ev.UserID)
	if err != nil {
		return nil, "", err
	}
	if !hasItems {
		menuRow := []InlineButton{{Text: e.tr.T("menu.menu"), Data: keyboard.ActionMenu}}
		return []Outbound{textReply(e.tr.T("cart.empty"), Markup{menuRow})},
			state.StateBrowsingMenu, nil
	}

	switch ev.Button.Action {
	case keyboard.ActionPickup:
		point, err := e.commerce.FulfillmentPoint(ctx, ev.Button.Arg)
		if err != nil {
			return nil, "", err
		}

		confirmation := e.tr.Render("pickup.confirmed", map[string]string{"Address": point.Address})
		payload, err := keyboard.Encode(keyboard.ActionPickup, point.ID)
		if err != nil {
			return nil, "", err
		}

		return []Outbound{
			textReply(confirmation, nil),
			e.invoice(payload, cart.Total),
		}, state.StateAwaitingPayment, nil

	case keyboard.ActionDelivery:
		// recompute the fee from the encoded drop-off, the callback data
		// has no room for it
		_, dropoff, err := keyboard.ParseDelivery(ev.Button.Arg)
		if err != nil {
			return nil, "", err
		}
		_, _, tier, err := e.resolveFulfillment(ctx, dropoff)
		if err != nil {
			return nil, "", err
		}

		payload, err := keyboard.Encode(keyboard.ActionDelivery, ev.Button.Arg)
		if err != nil {
			return nil, "", err
		}

		return []Outbound{
			textReply(e.tr.T("delivery.confirmed"), nil),
			e.invoice(payload, cart.Total+tier.Fee()*100),
		}, state.StateAwaitingPayment, nil
	}

	return e.ignore(ctx, ev, state.StateAwaitingDeliveryChoice)
}

func (e *Engine) invoice(payload string, amount int) Outbound {
	return Outbound{
		Kind: OutInvoice,
		Invoice: &Invoice{
			Title:       e.tr.T("invoice.title"),
			Description: e.tr.T("invoice.description"),
			Payload:     payload,
			Amount:      amount,
		},
	}
}

// handlePrecheckout approves the payment when the payload is one the bot
// issued. Runs outside the state machine: Telegram expects an answer within
// seconds.
func (e *Engine) handlePrecheckout(ev Event) []Outbound {
	answer := &PrecheckAnswer{ID: ev.Precheck.ID, OK: validPayload(ev.Precheck.Payload)}
	if !answer.OK {
		answer.ErrorMsg = e.tr.T("payment.bad_precheck")
	}

	return []Outbound{{Kind: OutPrecheckAnswer, ChatID: ev.ChatID, Precheck: answer}}
}

func validPayload(payload string) bool {
	action, arg := keyboard.Decode(payload)
	switch action {
	case keyboard.ActionPickup:
		return arg != ""
	case keyboard.ActionDelivery:
		_, _, err := keyboard.ParseDelivery(arg)
		return err == nil
	}

	return false
}

// handleAwaitingPayment parks the conversation until the payment callback
// arrives; payments themselves are dispatched before the state switch.
func (e *Engine) handleAwaitingPayment(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	return e.ignore(ctx, ev, state.StateAwaitingPayment)
}

// handlePaymentSuccess finalizes a paid order from any state: thanks the
// user, dispatches the courier on delivery orders and schedules the check-in
// message. The payload carries the whole fulfillment decision, so no session
// state is needed.
func (e *Engine) handlePaymentSuccess(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	out := []Outbound{textReply(e.tr.T("payment.success"), nil)}

	action, arg := keyboard.Decode(ev.InvoicePayload)
	if action == keyboard.ActionDelivery {
		courierID, dropoff, err := keyboard.ParseDelivery(arg)
		if err != nil {
			return nil, "", apperrors.NewInvariantViolation(
				"paid invoice carries malformed payload: " + ev.InvoicePayload)
		}

		out = append(out,
			Outbound{Kind: OutText, ChatID: courierID, Text: e.tr.T("courier.new_order")},
			Outbound{Kind: OutLocation, ChatID: courierID, Location: &dropoff},
		)

		if err := e.scheduler.ScheduleFollowUp(ctx, ev.ChatID, e.cfg.FollowUpDelay); err != nil {
			// the order is already paid; losing the courtesy ping is
			// preferable to failing the confirmation
			e.log.ErrorContext(ctx, "failed to schedule delivery follow-up",
				"chat_id", ev.ChatID, "error", err)
		}
	}

	menu, err := e.menuView(ctx, 0)
	if err != nil {
		// payment is confirmed even when the menu render fails
		e.log.WarnContext(ctx, "failed to render menu after payment", "error", err)
	} else {
		out = append(out, menu)
	}

	return out, state.StateBrowsingMenu, nil
}
