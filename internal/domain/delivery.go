package domain

import (
	"math"
	"strconv"
	"strings"
)

// Derived delivery for a shop in a given week. Never persisted.
type WeeklyDelivery struct {
	Shop   *Shop
	Week   int
	Volume float64
}

// ParseVolume parses a shop's volume string.
// Anything that is not a finite, non-negative number yields 0.
func ParseVolume(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
