package keyboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acostyle/pizza-delivery-bot/internal/geo"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		action string
		arg    string
	}{
		{ActionMenu, ""},
		{ActionPage, "2"},
		{ActionProduct, "8e29b6a0-1d2f-4a1c-9ed0-0b2c6f4c3a11"},
		{ActionPickup, "entry-1"},
	}

	for _, tc := range cases {
		data, err := Encode(tc.action, tc.arg)
		require.NoError(t, err)
		require.LessOrEqual(t, len(data), maxCallbackBytes)

		action, arg := Decode(data)
		assert.Equal(t, tc.action, action)
		assert.Equal(t, tc.arg, arg)
	}
}

func TestEncodeRejectsOversizedData(t *testing.T) {
	_, err := Encode(ActionProduct, strings.Repeat("x", maxCallbackBytes))
	require.Error(t, err)
}

func TestDeliveryRoundTrip(t *testing.T) {
	courierID := int64(100500)
	dropoff := geo.Coordinate{Lat: 55.75586, Lon: 37.61770}

	data, err := EncodeDelivery(courierID, dropoff)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), maxCallbackBytes)

	action, arg := Decode(data)
	require.Equal(t, ActionDelivery, action)

	gotCourier, gotDropoff, err := ParseDelivery(arg)
	require.NoError(t, err)
	assert.Equal(t, courierID, gotCourier)
	assert.InDelta(t, dropoff.Lat, gotDropoff.Lat, 1e-5)
	assert.InDelta(t, dropoff.Lon, gotDropoff.Lon, 1e-5)
}

func TestParseDeliveryMalformed(t *testing.T) {
	for _, arg := range []string{"", "1:2", "x:55.7:37.6", "1:lat:37.6", "1:55.7:lon"} {
		_, _, err := ParseDelivery(arg)
		assert.Error(t, err, "arg %q", arg)
	}
}
