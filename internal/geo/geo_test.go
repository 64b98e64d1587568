package geo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const distanceTolerance = 1e-6

func TestDistanceKm_KnownPairs(t *testing.T) {
	moscow := Coordinate{Lon: 37.6173, Lat: 55.7558}
	spb := Coordinate{Lon: 30.3351, Lat: 59.9343}

	d := DistanceKm(moscow, spb)
	assert.InDelta(t, 634, d, 5, "Moscow-SPb is roughly 634 km")

	assert.InDelta(t, 0, DistanceKm(moscow, moscow), distanceTolerance)
	assert.InDelta(t, DistanceKm(moscow, spb), DistanceKm(spb, moscow), distanceTolerance)
}

func TestNearest_Empty(t *testing.T) {
	_, _, err := Nearest(Coordinate{}, nil)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestNearest_PicksMinimum(t *testing.T) {
	origin := Coordinate{Lon: 37.6173, Lat: 55.7558}
	points := []FulfillmentPoint{
		{ID: "far", Position: Coordinate{Lon: 37.70, Lat: 55.80}},
		{ID: "close", Position: Coordinate{Lon: 37.62, Lat: 55.757}},
		{ID: "farther", Position: Coordinate{Lon: 38.00, Lat: 55.50}},
	}

	nearest, d, err := Nearest(origin, points)
	require.NoError(t, err)
	assert.Equal(t, "close", nearest.ID)
	assert.InDelta(t, DistanceKm(origin, points[1].Position), d, distanceTolerance)
}

func TestNearest_DeterministicAcrossOrder(t *testing.T) {
	origin := Coordinate{Lon: 37.6173, Lat: 55.7558}
	points := []FulfillmentPoint{
		{ID: "a", Position: Coordinate{Lon: 37.70, Lat: 55.80}},
		{ID: "b", Position: Coordinate{Lon: 37.62, Lat: 55.757}},
		{ID: "c", Position: Coordinate{Lon: 38.00, Lat: 55.50}},
		{ID: "d", Position: Coordinate{Lon: 37.50, Lat: 55.90}},
	}

	wantPoint, wantDistance, err := Nearest(origin, points)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]FulfillmentPoint, len(points))
		copy(shuffled, points)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		gotPoint, gotDistance, err := Nearest(origin, shuffled)
		require.NoError(t, err)
		assert.Equal(t, wantPoint.ID, gotPoint.ID)
		assert.InDelta(t, wantDistance, gotDistance, distanceTolerance)
	}
}

func TestNearest_TieBreaksByInputOrder(t *testing.T) {
	origin := Coordinate{Lon: 0, Lat: 0}
	same := Coordinate{Lon: 1, Lat: 1}
	points := []FulfillmentPoint{
		{ID: "first", Position: same},
		{ID: "second", Position: same},
	}

	nearest, _, err := Nearest(origin, points)
	require.NoError(t, err)
	assert.Equal(t, "first", nearest.ID)
}
