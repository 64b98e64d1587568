package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	testCases := []struct {
		distanceKm float64
		want       Tier
	}{
		{0, TierFreeDelivery},
		{0.3, TierFreeDelivery},
		{0.499999, TierFreeDelivery},
		{0.5, TierPaidDeliveryNear},
		{0.500001, TierPaidDeliveryNear},
		{4.999999, TierPaidDeliveryNear},
		{5, TierPaidDeliveryFar},
		{5.000001, TierPaidDeliveryFar},
		{19.999999, TierPaidDeliveryFar},
		{20, TierUnreachable},
		{20.000001, TierUnreachable},
		{25, TierUnreachable},
	}

	for _, tc := range testCases {
		assert.Equalf(t, tc.want, Classify(tc.distanceKm), "distance %f", tc.distanceKm)
	}
}

func TestClassify_Monotone(t *testing.T) {
	rank := map[Tier]int{
		TierFreeDelivery:     0,
		TierPaidDeliveryNear: 1,
		TierPaidDeliveryFar:  2,
		TierUnreachable:      3,
	}

	prev := Classify(0)
	for d := 0.0; d <= 30; d += 0.01 {
		current := Classify(d)
		assert.GreaterOrEqualf(t, rank[current], rank[prev], "tier regressed at %f km", d)
		prev = current
	}
}

func TestTier_OffersDelivery(t *testing.T) {
	assert.True(t, TierFreeDelivery.OffersDelivery())
	assert.True(t, TierPaidDeliveryNear.OffersDelivery())
	assert.True(t, TierPaidDeliveryFar.OffersDelivery())
	assert.False(t, TierUnreachable.OffersDelivery())
}

func TestTier_Fee(t *testing.T) {
	assert.Equal(t, 0, TierFreeDelivery.Fee())
	assert.Equal(t, NearDeliveryFee, TierPaidDeliveryNear.Fee())
	assert.Equal(t, FarDeliveryFee, TierPaidDeliveryFar.Fee())
	assert.Equal(t, 0, TierUnreachable.Fee())
}
