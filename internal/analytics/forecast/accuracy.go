package forecast

import "math"

// Accuracy grades a closed forecast period as 100 minus the absolute
// percentage error, floored at zero. A zero actual only scores well when the
// prediction was also zero.
func Accuracy(predicted, actual float64) float64 {
	if actual == 0 {
		if predicted == 0 {
			return 100
		}
		return 0
	}
	err := math.Abs(actual-predicted) / math.Abs(actual) * 100
	if err >= 100 {
		return 0
	}
	return 100 - err
}
