package services

import (
	"shop-delivery-service/internal/domain"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func shopWith(first *int, freq domain.DeliveryFrequency) *domain.Shop {
	return &domain.Shop{ShopID: 1, FirstDeliveryWeek: first, DeliveryFrequency: freq}
}

func TestIsDeliveryWeekMissingFields(t *testing.T) {
	if IsDeliveryWeek(shopWith(nil, domain.FrequencyWeekly), 10) {
		t.Error("shop without first delivery week should not be due")
	}
	if IsDeliveryWeek(shopWith(intPtr(1), ""), 10) {
		t.Error("shop without frequency should not be due")
	}
	if IsDeliveryWeek(nil, 10) {
		t.Error("nil shop should not be due")
	}
}

func TestIsDeliveryWeekWeekly(t *testing.T) {
	s := shopWith(intPtr(5), domain.FrequencyWeekly)
	for week := 5; week < 60; week++ {
		if !IsDeliveryWeek(s, week) {
			t.Fatalf("weekly shop not due in week %d", week)
		}
	}
}

func TestIsDeliveryWeekBiweekly(t *testing.T) {
	s := shopWith(intPtr(10), domain.FrequencyBiweekly)

	due := map[int]bool{10: true, 11: false, 12: true, 13: false, 14: true}
	for week, want := range due {
		if got := IsDeliveryWeek(s, week); got != want {
			t.Errorf("week %d: got %v, want %v", week, got, want)
		}
	}
}

func TestIsDeliveryWeekPeriods(t *testing.T) {
	cases := []struct {
		freq   domain.DeliveryFrequency
		period int
	}{
		{domain.FrequencyThreeWeeks, 3},
		{domain.FrequencyFourWeeks, 4},
		{domain.FrequencyFiveWeeks, 5},
		{domain.FrequencySixWeeks, 6},
	}

	for _, tc := range cases {
		s := shopWith(intPtr(2), tc.freq)
		for offset := 0; offset <= 3*tc.period; offset++ {
			want := offset%tc.period == 0
			if got := IsDeliveryWeek(s, 2+offset); got != want {
				t.Errorf("%s week %d: got %v, want %v", tc.freq, 2+offset, got, want)
			}
		}
	}
}

func TestIsDeliveryWeekBeforeFirstWeek(t *testing.T) {
	freqs := []domain.DeliveryFrequency{
		domain.FrequencyWeekly,
		domain.FrequencyBiweekly,
		domain.FrequencySixWeeks,
	}
	for _, f := range freqs {
		s := shopWith(intPtr(20), f)
		for week := 0; week < 20; week++ {
			if IsDeliveryWeek(s, week) {
				t.Errorf("%s: week %d before first delivery should not be due", f, week)
			}
		}
	}
}

func TestIsDeliveryWeekUnknownFrequency(t *testing.T) {
	if IsDeliveryWeek(shopWith(intPtr(1), "MONTHLY"), 1) {
		t.Fatal("unknown frequency should not be due")
	}
}

func TestDeliveriesForWeekSortsByVolume(t *testing.T) {
	shops := []*domain.Shop{
		{ShopID: 1, FirstDeliveryWeek: intPtr(1), DeliveryFrequency: domain.FrequencyWeekly, Volume: "5"},
		{ShopID: 2, FirstDeliveryWeek: intPtr(1), DeliveryFrequency: domain.FrequencyWeekly, Volume: "not a number"},
		{ShopID: 3, FirstDeliveryWeek: intPtr(1), DeliveryFrequency: domain.FrequencyWeekly, Volume: "20.5"},
		{ShopID: 4, FirstDeliveryWeek: intPtr(2), DeliveryFrequency: domain.FrequencyBiweekly, Volume: "100"},
		{ShopID: 5, FirstDeliveryWeek: intPtr(1), DeliveryFrequency: domain.FrequencyWeekly, Volume: "5"},
	}

	got := DeliveriesForWeek(shops, 3)

	wantIDs := []int{3, 1, 5, 2}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d deliveries, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].Shop.ShopID != id {
			t.Errorf("delivery %d: shop %d, want %d", i, got[i].Shop.ShopID, id)
		}
		if got[i].Week != 3 {
			t.Errorf("delivery %d: week %d, want 3", i, got[i].Week)
		}
	}

	if total := TotalVolume(got); total != 30.5 {
		t.Fatalf("total volume = %v, want 30.5", total)
	}
}

func TestTotalVolumeEmpty(t *testing.T) {
	if TotalVolume(nil) != 0 {
		t.Fatal("total volume of no deliveries should be 0")
	}
	if got := DeliveriesForWeek(nil, 1); len(got) != 0 {
		t.Fatalf("expected no deliveries, got %d", len(got))
	}
}

func TestWeekNumber(t *testing.T) {
	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC), 1},
		{time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 1, 8, 0, 1, 0, 0, time.UTC), 2},
		{time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), 11},
		// Year boundary is not corrected: counting restarts on Jan 1.
		{time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC), 53},
	}

	for _, tc := range cases {
		if got := WeekNumber(tc.at); got != tc.want {
			t.Errorf("WeekNumber(%s) = %d, want %d", tc.at.Format(time.RFC3339), got, tc.want)
		}
	}
}
