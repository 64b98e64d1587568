package keyboard

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/acostyle/pizza-delivery-bot/internal/errors"
	"github.com/acostyle/pizza-delivery-bot/internal/geo"
)

// maxCallbackBytes is Telegram's hard limit on callback data.
const maxCallbackBytes = 64

// Encode packs an action and its argument into callback data. The argument
// may be empty.
func Encode(action, arg string) (string, error) {
	data := action
	if arg != "" {
		data = action + ":" + arg
	}
	if len(data) > maxCallbackBytes {
		return "", apperrors.NewInvariantViolation(
			fmt.Sprintf("callback data exceeds %d bytes: %q", maxCallbackBytes, data))
	}

	return data, nil
}

// Decode splits callback data into the action and its argument. Unknown
// actions come back as-is; the caller decides whether they are valid in the
// current state.
func Decode(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

// EncodeDelivery packs the courier assignment and the drop-off point into a
// delivery callback. Coordinates keep five decimals, about a meter of
// precision, to stay inside the byte limit.
func EncodeDelivery(courierID int64, dropoff geo.Coordinate) (string, error) {
	arg := fmt.Sprintf("%d:%.5f:%.5f", courierID, dropoff.Lat, dropoff.Lon)
	return Encode(ActionDelivery, arg)
}

// ParseDelivery unpacks the argument produced by EncodeDelivery.
func ParseDelivery(arg string) (courierID int64, dropoff geo.Coordinate, err error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return 0, geo.Coordinate{}, apperrors.NewValidationError("malformed delivery callback")
	}

	courierID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, geo.Coordinate{}, apperrors.NewValidationError("malformed courier id")
	}
	dropoff.Lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, geo.Coordinate{}, apperrors.NewValidationError("malformed latitude")
	}
	dropoff.Lon, err = strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, geo.Coordinate{}, apperrors.NewValidationError("malformed longitude")
	}

	return courierID, dropoff, nil
}
