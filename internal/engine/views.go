package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/acostyle/pizza-delivery-bot/internal/bot/keyboard"
	"github.com/acostyle/pizza-delivery-bot/internal/moltin"
)

// menuView renders one catalog page with product buttons and pagination.
func (e *Engine) menuView(ctx context.Context, page int) (Outbound, error) {
	products, err := e.commerce.Products(ctx)
	if err != nil {
		return Outbound{}, err
	}

	pages := (len(products) + e.cfg.PageSize - 1) / e.cfg.PageSize
	if pages == 0 {
		pages = 1
	}
	page = ((page % pages) + pages) % pages

	from := page * e.cfg.PageSize
	to := from + e.cfg.PageSize
	if to > len(products) {
		to = len(products)
	}

	var markup Markup
	for _, product := range products[from:to] {
		data, err := keyboard.Encode(keyboard.ActionProduct, product.ID)
		if err != nil {
			return Outbound{}, err
		}
		markup = append(markup, []InlineButton{{Text: product.Name, Data: data}})
	}

	if pages > 1 {
		back, err := keyboard.Encode(keyboard.ActionPage, strconv.Itoa(page-1))
		if err != nil {
			return Outbound{}, err
		}
		forward, err := keyboard.Encode(keyboard.ActionPage, strconv.Itoa(page+1))
		if err != nil {
			return Outbound{}, err
		}
		markup = append(markup, []InlineButton{
			{Text: e.tr.T("menu.back"), Data: back},
			{Text: e.tr.T("menu.forward"), Data: forward},
		})
	}
	markup = append(markup, []InlineButton{{Text: e.tr.T("menu.cart"), Data: keyboard.ActionCart}})

	return textReply(e.tr.T("menu.title"), markup), nil
}

// productCard renders the photo card for one catalog position.
func (e *Engine) productCard(ctx context.Context, productID string) (Outbound, error) {
	product, err := e.commerce.Product(ctx, productID)
	if err != nil {
		return Outbound{}, err
	}

	var photoURL string
	if product.MainImageID != "" {
		photoURL, err = e.commerce.ProductPhotoURL(ctx, product.MainImageID)
		if err != nil {
			return Outbound{}, err
		}
	}

	addData, err := keyboard.Encode(keyboard.ActionAdd, product.ID)
	if err != nil {
		return Outbound{}, err
	}
	markup := Markup{
		{{Text: e.tr.T("product.add_to_cart"), Data: addData}},
		{{Text: e.tr.T("menu.cart"), Data: keyboard.ActionCart}},
		{{Text: e.tr.T("menu.menu"), Data: keyboard.ActionMenu}},
	}

	caption := e.tr.Render("product.caption", map[string]string{
		"Name":        product.Name,
		"Price":       formatMajor(product.Price),
		"Description": product.Description,
	})

	if photoURL == "" {
		return textReply(caption, markup), nil
	}

	return Outbound{Kind: OutPhoto, PhotoURL: photoURL, Text: caption, Markup: markup}, nil
}

// cartView renders the cart contents with a delete button per line.
func (e *Engine) cartView(ctx context.Context, userID int64) (Outbound, error) {
	cart, err := e.commerce.CartItems(ctx, userID)
	if err != nil {
		return Outbound{}, err
	}

	menuRow := []InlineButton{{Text: e.tr.T("menu.menu"), Data: keyboard.ActionMenu}}

	if len(cart.Items) == 0 {
		return textReply(e.tr.T("cart.empty"), Markup{
			{{Text: e.tr.T("cart.pay"), Data: keyboard.ActionPay}},
			menuRow,
		}), nil
	}

	var (
		lines  []string
		markup Markup
	)
	for _, item := range cart.Items {
		lines = append(lines, e.tr.Render("cart.item", map[string]string{
			"Name":     item.Name,
			"Quantity": strconv.Itoa(item.Quantity),
			"Subtotal": item.SubtotalDisplay,
		}))

		data, err := keyboard.Encode(keyboard.ActionRemove, item.ID)
		if err != nil {
			return Outbound{}, err
		}
		markup = append(markup, []InlineButton{{
			Text: e.tr.Render("cart.delete", map[string]string{"Name": item.Name}),
			Data: data,
		}})
	}
	lines = append(lines, e.tr.Render("cart.total", map[string]string{"Total": cart.TotalDisplay}))

	markup = append(markup,
		[]InlineButton{{Text: e.tr.T("cart.pay"), Data: keyboard.ActionPay}},
		[]InlineButton{{Text: e.tr.T("cart.email"), Data: keyboard.ActionEmail}},
		menuRow,
	)

	return textReply(strings.Join(lines, "\n\n"), markup), nil
}

// formatMajor turns minor currency units into a whole-unit display value.
func formatMajor(amount int) string {
	return strconv.Itoa(amount / 100)
}

// cartTotal fetches the cart and rejects checkout on an empty one.
func (e *Engine) cartTotal(ctx context.Context, userID int64) (moltin.Cart, bool, error) {
	cart, err := e.commerce.CartItems(ctx, userID)
	if err != nil {
		return moltin.Cart{}, false, err
	}

	return cart, len(cart.Items) > 0, nil
}
