// Package keyboard encodes inline-keyboard callback data and decodes it back
// into actions. Callback payloads ride inside Telegram's 64-byte limit, so
// the format is a compact "action:argument" string.
package keyboard

// Callback actions understood by the conversation core.
const (
	// ActionMenu returns the user to the paginated catalog.
	ActionMenu = "menu"
	// ActionCart shows the cart.
	ActionCart = "cart"
	// ActionPay starts checkout: the bot asks for a location.
	ActionPay = "pay"
	// ActionEmail asks for an e-mail to register the customer.
	ActionEmail = "email"
	// ActionPage flips the catalog to the page in the argument.
	ActionPage = "page"
	// ActionProduct opens the product card for the product ID argument.
	ActionProduct = "prod"
	// ActionAdd puts the product ID argument into the cart.
	ActionAdd = "add"
	// ActionRemove deletes the cart line ID argument.
	ActionRemove = "del"
	// ActionPickup confirms self-pickup from the point ID argument.
	ActionPickup = "pickup"
	// ActionDelivery confirms courier delivery; the argument packs the
	// courier ID and the drop-off coordinates.
	ActionDelivery = "dlv"
)
