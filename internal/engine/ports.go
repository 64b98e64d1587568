package engine

import (
	"context"
	"time"

	"github.com/acostyle/pizza-delivery-bot/internal/geo"
	"github.com/acostyle/pizza-delivery-bot/internal/moltin"
	"github.com/acostyle/pizza-delivery-bot/internal/state"
)

// SessionStore persists the per-user conversation state.
type SessionStore interface {
	GetState(ctx context.Context, userID int64) (state.State, error)
	SetState(ctx context.Context, userID int64, st state.State) error
}

// Commerce is the catalog, cart and customer backend.
type Commerce interface {
	EnsureCart(ctx context.Context, userID int64) error
	CartItems(ctx context.Context, userID int64) (moltin.Cart, error)
	AddCartItem(ctx context.Context, userID int64, productID string, quantity int) error
	RemoveCartItem(ctx context.Context, userID int64, itemID string) error
	Products(ctx context.Context) ([]moltin.Product, error)
	Product(ctx context.Context, productID string) (moltin.Product, error)
	ProductPhotoURL(ctx context.Context, fileID string) (string, error)
	CreateCustomer(ctx context.Context, name, email string) (string, error)
	SaveCustomerAddress(ctx context.Context, userID int64, lon, lat float64) error
	FulfillmentPoints(ctx context.Context) ([]geo.FulfillmentPoint, error)
	FulfillmentPoint(ctx context.Context, pointID string) (geo.FulfillmentPoint, error)
}

// Geocoder resolves free-form addresses. ok false means "no match", which is
// user input to correct, not a failure.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (point geo.Coordinate, ok bool, err error)
}

// FollowUpScheduler enqueues the deferred post-payment check-in message.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, chatID int64, delay time.Duration) error
}
