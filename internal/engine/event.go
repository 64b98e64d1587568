package engine

import "github.com/acostyle/pizza-delivery-bot/internal/geo"

// EventKind discriminates normalized transport updates.
type EventKind string

const (
	EventCommand     EventKind = "command"
	EventText        EventKind = "text"
	EventLocation    EventKind = "location"
	EventButton      EventKind = "button"
	EventPrecheckout EventKind = "precheckout"
	EventPayment     EventKind = "payment"
)

// Button is a pressed inline-keyboard button, already split into the action
// and its argument.
type Button struct {
	Action string
	Arg    string
}

// Precheckout is the pre-payment query Telegram requires an answer to.
type Precheckout struct {
	ID      string
	Payload string
}

// Event is one normalized user update. The gateway maps transport updates
// into this shape so the core never sees transport types.
type Event struct {
	Kind   EventKind
	UserID int64
	ChatID int64
	// MessageID is the message the event originated from; used to edit or
	// delete the prompt the user acted on.
	MessageID int
	// UserName is the sender's display name, used when registering a
	// customer record.
	UserName string

	Command  string
	Text     string
	Button   Button
	Location *geo.Coordinate
	Precheck Precheckout
	// InvoicePayload echoes the payload of the paid invoice on a
	// successful-payment event.
	InvoicePayload string
}
