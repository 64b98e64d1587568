package engine

import "github.com/acostyle/pizza-delivery-bot/internal/geo"

// OutboundKind discriminates the replies the core hands to the gateway.
type OutboundKind string

const (
	OutText           OutboundKind = "text"
	OutPhoto          OutboundKind = "photo"
	OutLocation       OutboundKind = "location"
	OutEdit           OutboundKind = "edit"
	OutDelete         OutboundKind = "delete"
	OutInvoice        OutboundKind = "invoice"
	OutPrecheckAnswer OutboundKind = "precheck_answer"
)

// InlineButton is one inline-keyboard button. Data is pre-encoded callback
// data.
type InlineButton struct {
	Text string
	Data string
}

// Markup is an inline keyboard: rows of buttons.
type Markup [][]InlineButton

// Invoice carries everything the gateway needs to send a payment request.
type Invoice struct {
	Title       string
	Description string
	// Payload is echoed back on precheckout and successful payment; it
	// packs the fulfillment decision so dispatch needs no extra state.
	Payload string
	// Amount is the grand total in minor currency units.
	Amount int
}

// PrecheckAnswer responds to a precheckout query. ErrorMsg is shown to the
// payer when OK is false.
type PrecheckAnswer struct {
	ID       string
	OK       bool
	ErrorMsg string
}

// Outbound is one reply. ChatID zero means the event's own chat; couriers
// get an explicit one.
type Outbound struct {
	Kind   OutboundKind
	ChatID int64
	// MessageID targets an existing message for edits and deletes.
	MessageID int

	Text     string
	PhotoURL string
	Markup   Markup
	Location *geo.Coordinate
	Invoice  *Invoice
	Precheck *PrecheckAnswer
}

func textReply(text string, markup Markup) Outbound {
	return Outbound{Kind: OutText, Text: text, Markup: markup}
}
