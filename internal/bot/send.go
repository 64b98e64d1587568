package bot

import (
	"fmt"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"github.com/acostyle/pizza-delivery-bot/internal/engine"
)

// deliver sends one core reply through the transport. Precheckout answers
// need the originating context and are handled in the update handler.
func (b *Bot) deliver(out engine.Outbound) error {
	recipient := telebot.ChatID(out.ChatID)
	opts := markupOpts(out.Markup)

	switch out.Kind {
	case engine.OutText:
		_, err := b.telebot.Send(recipient, out.Text, opts...)
		return err

	case engine.OutPhoto:
		photo := &telebot.Photo{
			File:    telebot.FromURL(out.PhotoURL),
			Caption: out.Text,
		}
		_, err := b.telebot.Send(recipient, photo, opts...)
		return err

	case engine.OutLocation:
		location := &telebot.Location{
			Lat: float32(out.Location.Lat),
			Lng: float32(out.Location.Lon),
		}
		_, err := b.telebot.Send(recipient, location)
		return err

	case engine.OutEdit:
		_, err := b.telebot.Edit(storedMessage(out), out.Text, opts...)
		return err

	case engine.OutDelete:
		return b.telebot.Delete(storedMessage(out))

	case engine.OutInvoice:
		invoice := telebot.Invoice{
			Title:       out.Invoice.Title,
			Description: out.Invoice.Description,
			Payload:     out.Invoice.Payload,
			Currency:    b.currency,
			Token:       b.providerToken,
			Prices: []telebot.Price{{
				Label:  out.Invoice.Title,
				Amount: out.Invoice.Amount,
			}},
		}
		_, err := b.telebot.Send(recipient, &invoice)
		return err
	}

	return fmt.Errorf("unsupported outbound kind %q", out.Kind)
}

func storedMessage(out engine.Outbound) telebot.Editable {
	return &telebot.StoredMessage{
		MessageID: strconv.Itoa(out.MessageID),
		ChatID:    out.ChatID,
	}
}

func markupOpts(markup engine.Markup) []any {
	if len(markup) == 0 {
		return nil
	}

	return []any{toReplyMarkup(markup)}
}

func toReplyMarkup(markup engine.Markup) *telebot.ReplyMarkup {
	rows := make([][]telebot.InlineButton, 0, len(markup))
	for _, row := range markup {
		buttons := make([]telebot.InlineButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, telebot.InlineButton{
				Text: btn.Text,
				Data: btn.Data,
			})
		}
		rows = append(rows, buttons)
	}

	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// SendText pushes a plain message outside the request cycle, e.g. from the
// follow-up worker.
func (b *Bot) SendText(chatID int64, text string) error {
	_, err := b.telebot.Send(telebot.ChatID(chatID), text)
	return err
}
