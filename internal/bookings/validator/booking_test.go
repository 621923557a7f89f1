package validator

import (
	"testing"
	"time"

	"hotelier/pkg/config"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT}))
}

func futureDate(days int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, days)
}

func validBooking() *model.Booking {
	return &model.Booking{
		UserID:   "507f1f77bcf86cd799439011",
		RoomID:   "507f1f77bcf86cd799439012",
		CheckIn:  futureDate(10),
		CheckOut: futureDate(13),
		Status:   config.Pending,
	}
}

func TestValidateAcceptsWellFormedBooking(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(validBooking()); err != nil {
		t.Errorf("Validate returned error for valid booking: %v", err)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"missing user", func(b *model.Booking) { b.UserID = "" }},
		{"missing room", func(b *model.Booking) { b.RoomID = "" }},
		{"malformed room id", func(b *model.Booking) { b.RoomID = "not-an-object-id" }},
		{"zero check-in", func(b *model.Booking) { b.CheckIn = time.Time{} }},
		{"unknown status", func(b *model.Booking) { b.Status = "archived" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("Validate accepted an invalid booking")
			}
		})
	}
}

func TestValidateRejectsBadDateRanges(t *testing.T) {
	v := newTestValidator()

	t.Run("check-out before check-in", func(t *testing.T) {
		b := validBooking()
		b.CheckIn = futureDate(13)
		b.CheckOut = futureDate(10)
		if err := v.Validate(b); err == nil {
			t.Error("Validate accepted check_out before check_in")
		}
	})

	t.Run("zero-length stay", func(t *testing.T) {
		b := validBooking()
		b.CheckOut = b.CheckIn
		if err := v.Validate(b); err == nil {
			t.Error("Validate accepted a zero-night stay")
		}
	})

	t.Run("check-in in the past", func(t *testing.T) {
		b := validBooking()
		b.CheckIn = futureDate(-3)
		b.CheckOut = futureDate(2)
		if err := v.Validate(b); err == nil {
			t.Error("Validate accepted a past check_in")
		}
	})
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator()

	t.Run("partial update with only check-in", func(t *testing.T) {
		checkIn := futureDate(5)
		update := &model.BookingUpdate{CheckIn: &checkIn}
		if err := v.ValidateUpdate(update); err != nil {
			t.Errorf("ValidateUpdate returned error: %v", err)
		}
	})

	t.Run("inverted range when both dates present", func(t *testing.T) {
		checkIn := futureDate(10)
		checkOut := futureDate(8)
		update := &model.BookingUpdate{CheckIn: &checkIn, CheckOut: &checkOut}
		if err := v.ValidateUpdate(update); err == nil {
			t.Error("ValidateUpdate accepted inverted date range")
		}
	})

	t.Run("malformed room id", func(t *testing.T) {
		roomID := "nope"
		update := &model.BookingUpdate{RoomID: &roomID}
		if err := v.ValidateUpdate(update); err == nil {
			t.Error("ValidateUpdate accepted malformed room id")
		}
	})
}
