package nostd

import (
	"math"
	"time"
)

// RoundCurrency rounds a monetary amount to 2 decimal places, half up.
// NaN rounds to 0 so a malformed upstream value never poisons an aggregate.
func RoundCurrency(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return math.Round(value*100) / 100
}

// RoundVolume rounds a traded quantity to 4 decimal places, half up.
func RoundVolume(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return math.Round(value*10000) / 10000
}

// excelEpoch is 1899-12-30 UTC, the zero of the 1900 date system with the
// off-by-two that absorbs Lotus' leap-year bug.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ExcelDateToTime converts an Excel serial date number to a UTC time.
func ExcelDateToTime(serial float64) time.Time {
	seconds := serial * 24 * 60 * 60
	return excelEpoch.Add(time.Duration(math.Round(seconds)) * time.Second)
}
