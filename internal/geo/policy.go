package geo

// Tier is a distance bucket determining delivery feasibility and fee.
type Tier string

const (
	// TierFreeDelivery applies under 0.5 km: couriers walk it for free.
	TierFreeDelivery Tier = "free_delivery"
	// TierPaidDeliveryNear applies under 5 km for a flat fee.
	TierPaidDeliveryNear Tier = "paid_delivery_near"
	// TierPaidDeliveryFar applies under 20 km for a higher flat fee.
	TierPaidDeliveryFar Tier = "paid_delivery_far"
	// TierUnreachable applies at 20 km and beyond: no delivery, no pickup offer.
	TierUnreachable Tier = "unreachable"
)

// Flat delivery fees in rubles per tier.
const (
	NearDeliveryFee = 100
	FarDeliveryFee  = 300
)

// Classify maps a distance in kilometers onto a Tier. Thresholds are
// evaluated in ascending order, first match wins.
func Classify(distanceKm float64) Tier {
	switch {
	case distanceKm < 0.5:
		return TierFreeDelivery
	case distanceKm < 5:
		return TierPaidDeliveryNear
	case distanceKm < 20:
		return TierPaidDeliveryFar
	default:
		return TierUnreachable
	}
}

// OffersDelivery reports whether the tier presents the delivery-vs-pickup
// chooser. Unreachable short-circuits back to the menu.
func (t Tier) OffersDelivery() bool {
	return t != TierUnreachable
}

// Fee returns the flat delivery fee in rubles for the tier.
func (t Tier) Fee() int {
	switch t {
	case TierPaidDeliveryNear:
		return NearDeliveryFee
	case TierPaidDeliveryFar:
		return FarDeliveryFee
	default:
		return 0
	}
}

// TemplateKey returns the i18n key of the message template that renders the
// tier for the user.
func (t Tier) TemplateKey() string {
	switch t {
	case TierFreeDelivery:
		return "tier.free"
	case TierPaidDeliveryNear:
		return "tier.near"
	case TierPaidDeliveryFar:
		return "tier.far"
	default:
		return "tier.unreachable"
	}
}
