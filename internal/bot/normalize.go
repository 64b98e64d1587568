package bot

import (
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/acostyle/pizza-delivery-bot/internal/bot/keyboard"
	"github.com/acostyle/pizza-delivery-bot/internal/engine"
	"github.com/acostyle/pizza-delivery-bot/internal/geo"
)

// normalize maps a transport update into the core event model. ok is false
// for updates the conversation has no use for.
func normalize(c telebot.Context) (engine.Event, bool) {
	sender := c.Sender()
	chat := c.Chat()
	if sender == nil || chat == nil {
		return engine.Event{}, false
	}

	ev := engine.Event{
		UserID:   sender.ID,
		ChatID:   chat.ID,
		UserName: senderName(sender),
	}

	if query := c.PreCheckoutQuery(); query != nil {
		ev.Kind = engine.EventPrecheckout
		ev.Precheck = engine.Precheckout{ID: query.ID, Payload: query.Payload}
		return ev, true
	}

	if cb := c.Callback(); cb != nil {
		// telebot prefixes unique-callback data with \f
		data := strings.TrimPrefix(cb.Data, "\f")
		action, arg := keyboard.Decode(data)

		ev.Kind = engine.EventButton
		ev.Button = engine.Button{Action: action, Arg: arg}
		if cb.Message != nil {
			ev.MessageID = cb.Message.ID
		}
		return ev, true
	}

	msg := c.Message()
	if msg == nil {
		return engine.Event{}, false
	}
	ev.MessageID = msg.ID

	switch {
	case msg.Payment != nil:
		ev.Kind = engine.EventPayment
		ev.InvoicePayload = msg.Payment.Payload

	case msg.Location != nil:
		ev.Kind = engine.EventLocation
		ev.Location = &geo.Coordinate{
			Lat: float64(msg.Location.Lat),
			Lon: float64(msg.Location.Lng),
		}

	case strings.HasPrefix(msg.Text, "/"):
		ev.Kind = engine.EventCommand
		command, _, _ := strings.Cut(msg.Text, " ")
		ev.Command = command

	case msg.Text != "":
		ev.Kind = engine.EventText
		ev.Text = msg.Text

	default:
		return engine.Event{}, false
	}

	return ev, true
}

func senderName(sender *telebot.User) string {
	name := strings.TrimSpace(sender.FirstName + " " + sender.LastName)
	if name == "" {
		name = sender.Username
	}

	return name
}
