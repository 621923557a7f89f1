package pricing

import (
	"testing"
	"time"

	"hotelier/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		nights   int
	}{
		{"single night", date(2025, 6, 1), date(2025, 6, 2), 1},
		{"three nights", date(2025, 6, 1), date(2025, 6, 4), 3},
		{"across month boundary", date(2025, 6, 29), date(2025, 7, 2), 3},
		{"across year boundary", date(2025, 12, 30), date(2026, 1, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.nights {
				t.Errorf("Nights = %d, want %d", got, tt.nights)
			}
		})
	}
}

func TestTotalLinearInNights(t *testing.T) {
	// total == price * nights for an empty service selection
	if got := Total(100, date(2025, 6, 1), date(2025, 6, 4), nil); got != 300 {
		t.Errorf("Total = %d, want 300", got)
	}
	if got := Total(100, date(2025, 6, 4), date(2025, 6, 6), nil); got != 200 {
		t.Errorf("Total = %d, want 200", got)
	}
	if got := Total(0, date(2025, 6, 1), date(2025, 6, 4), nil); got != 0 {
		t.Errorf("Total with zero rate = %d, want 0", got)
	}
}

func TestTotalAdditiveInServices(t *testing.T) {
	services := []*model.AdditionalService{
		{ID: "s1", Name: "breakfast", Price: 25},
		{ID: "s2", Name: "parking", Price: 15},
	}

	base := Total(100, date(2025, 6, 1), date(2025, 6, 4), nil)
	withServices := Total(100, date(2025, 6, 1), date(2025, 6, 4), services)

	if withServices != base+40 {
		t.Errorf("Total with services = %d, want %d", withServices, base+40)
	}

	// service charge does not scale with stay length
	longStay := Total(100, date(2025, 6, 1), date(2025, 6, 11), services)
	if longStay != 100*10+40 {
		t.Errorf("Total for long stay = %d, want %d", longStay, 100*10+40)
	}
}
