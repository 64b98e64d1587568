package state

// State represents one step of the ordering conversation.
type State string

const (
	// StateStart is the implicit state of a user the bot has never seen.
	StateStart State = "start"
	// StateBrowsingMenu indicates that the user is paging through the catalog.
	StateBrowsingMenu State = "browsing_menu"
	// StateViewingProduct indicates that a product card is on screen.
	StateViewingProduct State = "viewing_product"
	// StateViewingCart indicates that the cart view is on screen.
	StateViewingCart State = "viewing_cart"
	// StateAwaitingLocation indicates that the bot expects an address or a location pin.
	StateAwaitingLocation State = "awaiting_location"
	// StateAwaitingDeliveryChoice indicates that the delivery/pickup chooser is on screen.
	StateAwaitingDeliveryChoice State = "awaiting_delivery_choice"
	// StateAwaitingEmail indicates that the bot expects an email address.
	StateAwaitingEmail State = "awaiting_email"
	// StateAwaitingPayment indicates that an invoice has been issued and not yet paid.
	StateAwaitingPayment State = "awaiting_payment"
)

// All lists every conversation state.
var All = []State{
	StateStart,
	StateBrowsingMenu,
	StateViewingProduct,
	StateViewingCart,
	StateAwaitingLocation,
	StateAwaitingDeliveryChoice,
	StateAwaitingEmail,
	StateAwaitingPayment,
}

// Valid reports whether s is a known conversation state.
func (s State) Valid() bool {
	for _, known := range All {
		if s == known {
			return true
		}
	}

	return false
}
