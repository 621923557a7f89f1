package config

import "testing"

func TestActiveStatuses(t *testing.T) {
	active := map[BookingStatus]bool{}
	for _, s := range ActiveStatuses() {
		active[s] = true
	}

	if !active[Pending] || !active[Confirmed] || !active[CheckedIn] {
		t.Errorf("expected pending, confirmed and checked_in to be active, got %v", active)
	}
	if active[CheckedOut] || active[Cancelled] || active[NoShow] {
		t.Errorf("terminal statuses must not be active, got %v", active)
	}

	for _, s := range ActiveStatuses() {
		if !s.IsActive() {
			t.Errorf("IsActive disagrees with ActiveStatuses for %s", s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []BookingStatus{CheckedOut, Cancelled, NoShow}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range ActiveStatuses() {
		if s.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{Pending, Confirmed, true},
		{Pending, CheckedIn, false},
		{Pending, Cancelled, true},
		{Pending, NoShow, true},
		{Confirmed, CheckedIn, true},
		{Confirmed, CheckedOut, false},
		{Confirmed, Cancelled, true},
		{Confirmed, NoShow, true},
		{CheckedIn, CheckedOut, true},
		{CheckedIn, Cancelled, true},
		{CheckedIn, NoShow, false},
		{CheckedOut, Cancelled, false},
		{Cancelled, Pending, false},
		{Cancelled, Confirmed, false},
		{NoShow, CheckedIn, false},
		// no-op transitions are always legal
		{Cancelled, Cancelled, true},
		{Confirmed, Confirmed, true},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.allowed {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []BookingStatus{Pending, Confirmed, CheckedIn, CheckedOut, Cancelled, NoShow} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if BookingStatus("archived").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
