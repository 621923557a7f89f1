package config

// BookingStatus is the lifecycle state of a booking. The normal flow is
// pending -> confirmed -> checked_in -> checked_out; cancelled and no_show are
// terminal exits reachable before check-out.
type BookingStatus string

const (
	Pending    BookingStatus = "pending"
	Confirmed  BookingStatus = "confirmed"
	CheckedIn  BookingStatus = "checked_in"
	CheckedOut BookingStatus = "checked_out"
	Cancelled  BookingStatus = "cancelled"
	NoShow     BookingStatus = "no_show"
)

// ActiveStatuses returns the statuses that block a room for new reservations.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{Pending, Confirmed, CheckedIn}
}

func (s BookingStatus) Valid() bool {
	switch s {
	case Pending, Confirmed, CheckedIn, CheckedOut, Cancelled, NoShow:
		return true
	}
	return false
}

// IsActive reports whether a booking in this status occupies its room.
func (s BookingStatus) IsActive() bool {
	return s == Pending || s == Confirmed || s == CheckedIn
}

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == CheckedOut || s == Cancelled || s == NoShow
}

// CanTransition reports whether moving from s to target is a legal status
// change. A same-status transition is allowed as a no-op.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	if s == target {
		return true
	}
	if s.IsTerminal() {
		return false
	}

	switch target {
	case Confirmed:
		return s == Pending
	case CheckedIn:
		return s == Confirmed
	case CheckedOut:
		return s == CheckedIn
	case Cancelled:
		return true // any non-terminal state can be cancelled
	case NoShow:
		return s == Pending || s == Confirmed
	default:
		return false
	}
}
