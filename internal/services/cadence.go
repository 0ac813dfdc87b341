package services

import (
	"math"
	"shop-delivery-service/internal/domain"
	"slices"
	"time"
)

// IsDeliveryWeek reports whether shop is due for a delivery in week.
//
// A shop without a first delivery week or a frequency has no cadence and is
// never due. The first delivery week itself is always due, followed by every
// Nth week where N is the frequency period. Unknown frequencies are never due.
func IsDeliveryWeek(shop *domain.Shop, week int) bool {
	if shop == nil || shop.FirstDeliveryWeek == nil || shop.DeliveryFrequency == "" {
		return false
	}

	first := *shop.FirstDeliveryWeek
	if week < first {
		return false
	}
	weeksSinceFirst := week - first

	if shop.DeliveryFrequency == domain.FrequencyWeekly {
		return true
	}

	period, ok := shop.DeliveryFrequency.Period()
	if !ok {
		return false
	}

	return weeksSinceFirst%period == 0
}

// DeliveriesForWeek returns the deliveries due in week, highest volume first.
// Shops with equal volume keep their input order.
func DeliveriesForWeek(shops []*domain.Shop, week int) []domain.WeeklyDelivery {
	out := make([]domain.WeeklyDelivery, 0, len(shops))
	for _, s := range shops {
		if !IsDeliveryWeek(s, week) {
			continue
		}
		out = append(out, domain.WeeklyDelivery{
			Shop:   s,
			Week:   week,
			Volume: domain.ParseVolume(s.Volume),
		})
	}

	slices.SortStableFunc(out, func(a, b domain.WeeklyDelivery) int {
		switch {
		case a.Volume > b.Volume:
			return -1
		case a.Volume < b.Volume:
			return 1
		default:
			return 0
		}
	})

	return out
}

// TotalVolume sums the volume of deliveries.
func TotalVolume(deliveries []domain.WeeklyDelivery) float64 {
	total := 0.0
	for _, d := range deliveries {
		total += d.Volume
	}
	return total
}

// WeekNumber returns ceil((t - Jan 1 of t's year) / 7 days).
//
// This is an approximation of ISO week numbering: it ignores ISO week-year
// boundaries, so the first days of January are week 1 regardless of weekday
// and the count restarts every January 1st.
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	weeks := float64(t.Sub(jan1)) / float64(7*24*time.Hour)
	return int(math.Ceil(weeks))
}
