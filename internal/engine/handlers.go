package engine

import (
	"context"
	"net/mail"
	"strconv"
	"strings"

	"github.com/acostyle/pizza-delivery-bot/internal/bot/keyboard"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
)

// handleMenuEscape serves the `menu` button from any state that allows it.
func (e *Engine) handleMenuEscape(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	menu, err := e.menuView(ctx, 0)
	if err != nil {
		return nil, "", err
	}

	out := []Outbound{menu}
	if ev.MessageID != 0 {
		out = append(out, Outbound{Kind: OutDelete, MessageID: ev.MessageID})
	}

	return out, state.StateBrowsingMenu, nil
}

func (e *Engine) handleStart(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	if ev.Kind != EventCommand || ev.Command != "/start" {
		return e.ignore(ctx, ev, state.StateStart)
	}

	if err := e.commerce.EnsureCart(ctx, ev.UserID); err != nil {
		return nil, "", err
	}

	menu, err := e.menuView(ctx, 0)
	if err != nil {
		return nil, "", err
	}

	return []Outbound{menu}, state.StateBrowsingMenu, nil
}

func (e *Engine) handleBrowsingMenu(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	if ev.Kind != EventButton {
		return e.ignore(ctx, ev, state.StateBrowsingMenu)
	}

	switch ev.Button.Action {
	case keyboard.ActionPage:
		page, err := strconv.Atoi(ev.Button.Arg)
		if err != nil {
			return e.ignore(ctx, ev, state.StateBrowsingMenu)
		}

		menu, err := e.menuView(ctx, page)
		if err != nil {
			return nil, "", err
		}
		menu.Kind = OutEdit
		menu.MessageID = ev.MessageID

		return []Outbound{menu}, state.StateBrowsingMenu, nil

	case keyboard.ActionProduct:
		card, err := e.productCard(ctx, ev.Button.Arg)
		if err != nil {
			return nil, "", err
		}

		out := []Outbound{card}
		if ev.MessageID != 0 {
			out = append(out, Outbound{Kind: OutDelete, MessageID: ev.MessageID})
		}

		return out, state.StateViewingProduct, nil

	case keyboard.ActionCart:
		cart, err := e.cartView(ctx, ev.UserID)
		if err != nil {
			return nil, "", err
		}

		return []Outbound{cart}, state.StateViewingCart, nil
	}

	return e.ignore(ctx, ev, state.StateBrowsingMenu)
}

func (e *Engine) handleViewingProduct(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	if ev.Kind != EventButton {
		return e.ignore(ctx, ev, state.StateViewingProduct)
	}

	switch ev.Button.Action {
	case keyboard.ActionAdd:
		if err := e.commerce.AddCartItem(ctx, ev.UserID, ev.Button.Arg, 1); err != nil {
			return nil, "", err
		}

		menu, err := e.menuView(ctx, 0)
		if err != nil {
			return nil, "", err
		}

		return []Outbound{
			textReply(e.tr.T("product.added"), nil),
			menu,
		}, state.StateBrowsingMenu, nil

	case keyboard.ActionCart:
		cart, err := e.cartView(ctx, ev.UserID)
		if err != nil {
			return nil, "", err
		}

		return []Outbound{cart}, state.StateViewingCart, nil
	}

	return e.ignore(ctx, ev, state.StateViewingProduct)
}

func (e *Engine) handleViewingCart(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	if ev.Kind != EventButton {
		return e.ignore(ctx, ev, state.StateViewingCart)
	}

	switch ev.Button.Action {
	case keyboard.ActionRemove:
		if err := e.commerce.RemoveCartItem(ctx, ev.UserID, ev.Button.Arg); err != nil {
			return nil, "", err
		}

		cart, err := e.cartView(ctx, ev.UserID)
		if err != nil {
			return nil, "", err
		}
		cart.Kind = OutEdit
		cart.MessageID = ev.MessageID

		return []Outbound{cart}, state.StateViewingCart, nil

	case keyboard.ActionPay:
		_, hasItems, err := e.cartTotal(ctx, ev.UserID)
		if err != nil {
			return nil, "", err
		}
		if !hasItems {
			menuRow := []InlineButton{{Text: e.tr.T("menu.menu"), Data: keyboard.ActionMenu}}
			return []Outbound{textReply(e.tr.T("cart.empty"), Markup{menuRow})},
				state.StateViewingCart, nil
		}

		return []Outbound{textReply(e.tr.T("location.prompt"), nil)},
			state.StateAwaitingLocation, nil

	case keyboard.ActionEmail:
		return []Outbound{textReply(e.tr.T("email.prompt"), nil)},
			state.StateAwaitingEmail, nil
	}

	return e.ignore(ctx, ev, state.StateViewingCart)
}

func (e *Engine) handleAwaitingEmail(ctx context.Context, ev Event) ([]Outbound, state.State, error) {
	if ev.Kind != EventText {
		return e.ignore(ctx, ev, state.StateAwaitingEmail)
	}

	address, err := mail.ParseAddress(strings.TrimSpace(ev.Text))
	if err != nil {
		return []Outbound{textReply(e.tr.T("email.invalid"), nil)},
			state.StateAwaitingEmail, nil
	}

	name := ev.UserName
	if name == "" {
		name = strconv.FormatInt(ev.UserID, 10)
	}
	if _, err := e.commerce.CreateCustomer(ctx, name, address.Address); err != nil {
		return nil, "", err
	}

	menu, err := e.menuView(ctx, 0)
	if err != nil {
		return nil, "", err
	}

	return []Outbound{
		textReply(e.tr.Render("email.saved", map[string]string{"Email": address.Address}), nil),
		menu,
	}, state.StateBrowsingMenu, nil
}
