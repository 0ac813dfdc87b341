package domain

import (
	"fmt"
	"strings"
)

// DeliveryFrequency is the repeating interval at which a shop receives deliveries.
// The zero value means the shop has no cadence configured.
type DeliveryFrequency string

const (
	FrequencyWeekly     DeliveryFrequency = "WEEKLY"
	FrequencyBiweekly   DeliveryFrequency = "BIWEEKLY"
	FrequencyThreeWeeks DeliveryFrequency = "THREE_WEEKS"
	FrequencyFourWeeks  DeliveryFrequency = "FOUR_WEEKS"
	FrequencyFiveWeeks  DeliveryFrequency = "FIVE_WEEKS"
	FrequencySixWeeks   DeliveryFrequency = "SIX_WEEKS"
)

var frequencyPeriods = map[DeliveryFrequency]int{
	FrequencyWeekly:     1,
	FrequencyBiweekly:   2,
	FrequencyThreeWeeks: 3,
	FrequencyFourWeeks:  4,
	FrequencyFiveWeeks:  5,
	FrequencySixWeeks:   6,
}

// Period returns the cadence length in weeks. ok is false for unknown values.
func (f DeliveryFrequency) Period() (weeks int, ok bool) {
	weeks, ok = frequencyPeriods[f]
	return weeks, ok
}

// ParseDeliveryFrequency normalizes user or seed input into a known frequency.
// An empty string is accepted and means "not configured".
func ParseDeliveryFrequency(s string) (DeliveryFrequency, error) {
	norm := DeliveryFrequency(strings.ToUpper(strings.TrimSpace(s)))
	if norm == "" {
		return "", nil
	}
	if _, ok := frequencyPeriods[norm]; !ok {
		return "", fmt.Errorf("parse delivery frequency: unknown value %q", s)
	}
	return norm, nil
}

// Shop is the subset of a CRM shop record used for delivery planning.
//
// Location is nil until the shop address has been geocoded.
// FirstDeliveryWeek is nil when no delivery has been scheduled yet.
// Volume is stored as entered (units per week) and parsed on demand.
type Shop struct {
	ShopID            int
	Name              string
	Address           string
	Location          *Location
	FirstDeliveryWeek *int
	DeliveryFrequency DeliveryFrequency
	Volume            string
}
