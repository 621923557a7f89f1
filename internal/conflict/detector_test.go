package conflict

import (
	"context"
	"testing"
	"time"

	"hotelier/pkg/config"
	"hotelier/pkg/model"
)

type mockBookingSource struct {
	findFunc func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error)
}

func (m *mockBookingSource) FindByRoomAndStatuses(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, roomID, statuses)
	}
	return nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name    string
		aStart  time.Time
		aEnd    time.Time
		bStart  time.Time
		bEnd    time.Time
		overlap bool
	}{
		{
			name:   "checkout day equals next check-in day",
			aStart: date(2025, 6, 1), aEnd: date(2025, 6, 4),
			bStart: date(2025, 6, 4), bEnd: date(2025, 6, 6),
			overlap: false,
		},
		{
			name:   "one night shared",
			aStart: date(2025, 6, 1), aEnd: date(2025, 6, 4),
			bStart: date(2025, 6, 3), bEnd: date(2025, 6, 5),
			overlap: true,
		},
		{
			name:   "ending one day after the other starts",
			aStart: date(2025, 6, 1), aEnd: date(2025, 6, 2),
			bStart: date(2025, 6, 1), bEnd: date(2025, 6, 3),
			overlap: true,
		},
		{
			name:   "fully contained",
			aStart: date(2025, 6, 1), aEnd: date(2025, 6, 10),
			bStart: date(2025, 6, 4), bEnd: date(2025, 6, 5),
			overlap: true,
		},
		{
			name:   "disjoint ranges",
			aStart: date(2025, 6, 1), aEnd: date(2025, 6, 3),
			bStart: date(2025, 6, 10), bEnd: date(2025, 6, 12),
			overlap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.overlap {
				t.Errorf("Overlaps = %v, want %v", got, tt.overlap)
			}
			// overlap is symmetric
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.overlap {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tt.overlap)
			}
		})
	}
}

func TestFindOverlapQueriesActiveSubset(t *testing.T) {
	var captured []config.BookingStatus
	source := &mockBookingSource{
		findFunc: func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
			captured = statuses
			return nil, nil
		},
	}

	detector := NewDetector(source)
	if _, err := detector.FindOverlap(context.Background(), "room1", date(2025, 6, 1), date(2025, 6, 4), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(captured) != 3 {
		t.Fatalf("expected 3 active statuses in query, got %v", captured)
	}
	want := map[config.BookingStatus]bool{config.Pending: true, config.Confirmed: true, config.CheckedIn: true}
	for _, s := range captured {
		if !want[s] {
			t.Errorf("unexpected status %s in active subset query", s)
		}
	}
}

func TestFindOverlapExcludesBooking(t *testing.T) {
	existing := []*model.Booking{
		{ID: "b1", RoomID: "room1", CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 4), Status: config.Confirmed},
	}
	source := &mockBookingSource{
		findFunc: func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
			return existing, nil
		},
	}
	detector := NewDetector(source)

	// without exclusion the booking conflicts with itself
	b, err := detector.FindOverlap(context.Background(), "room1", date(2025, 6, 2), date(2025, 6, 5), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b == nil || b.ID != "b1" {
		t.Fatalf("expected overlap with b1, got %v", b)
	}

	// excluding its own id frees the range
	b, err = detector.FindOverlap(context.Background(), "room1", date(2025, 6, 2), date(2025, 6, 5), "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != nil {
		t.Errorf("expected no overlap when excluding b1, got %v", b)
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*model.Booking{
		{ID: "b1", RoomID: "room1", CheckIn: date(2025, 6, 1), CheckOut: date(2025, 6, 4), Status: config.Pending},
	}
	detector := NewDetector(&mockBookingSource{
		findFunc: func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
			return existing, nil
		},
	})

	conflicting, err := detector.HasConflict(context.Background(), "room1", date(2025, 6, 3), date(2025, 6, 5), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conflicting {
		t.Error("expected conflict for overlapping range")
	}

	adjacent, err := detector.HasConflict(context.Background(), "room1", date(2025, 6, 4), date(2025, 6, 6), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adjacent {
		t.Error("expected no conflict for adjacent range")
	}
}
