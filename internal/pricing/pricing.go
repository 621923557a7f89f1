package pricing

import (
	"time"

	"hotelier/pkg/model"
)

// Nights returns the whole-day length of the half-open stay
// [checkIn, checkOut). Inputs are expected to be UTC midnights with
// checkOut after checkIn.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// Total computes the charge for a stay: nightly rate times nights, plus the
// flat price of each selected add-on service. Pure and deterministic; callers
// recompute it whenever room, dates or service selection change.
func Total(pricePerNight int, checkIn, checkOut time.Time, services []*model.AdditionalService) int {
	total := pricePerNight * Nights(checkIn, checkOut)
	for _, s := range services {
		total += s.Price
	}
	return total
}
