package conflict

import (
	"context"
	"time"

	"hotelier/pkg/config"
	"hotelier/pkg/model"
)

// BookingSource is the slice of the booking store the detector needs.
type BookingSource interface {
	FindByRoomAndStatuses(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error)
}

// Detector decides whether a candidate date range collides with an active
// booking. It always recomputes from stored bookings; the room's availability
// flag is a cache and never consulted here.
type Detector struct {
	bookings BookingSource
}

func NewDetector(bookings BookingSource) *Detector {
	return &Detector{bookings: bookings}
}

// FindOverlap returns the first active booking on the room whose
// [check_in, check_out) range overlaps [checkIn, checkOut), or nil if the
// range is free. excludeID skips one booking, used when re-validating a
// booking that is being moved or re-dated.
func (d *Detector) FindOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (*model.Booking, error) {
	existing, err := d.bookings.FindByRoomAndStatuses(ctx, roomID, config.ActiveStatuses())
	if err != nil {
		return nil, err
	}

	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return b, nil
		}
	}
	return nil, nil
}

// HasConflict reports whether any active booking on the room overlaps the
// candidate range.
func (d *Detector) HasConflict(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	b, err := d.FindOverlap(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. A stay ending on day D does not collide with one
// starting on day D.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
