package model

import (
	"time"

	"hotelier/pkg/config"
)

// Booking is a reservation of one room for a half-open date range
// [check_in, check_out): the checkout day itself is free for a new arrival.
type Booking struct {
	ID         string               `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string               `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	RoomID     string               `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	CheckIn    time.Time            `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut   time.Time            `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	ServiceIDs []string             `json:"service_ids" bson:"service_ids" validate:"omitempty,dive,mongodb"`
	Status     config.BookingStatus `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled no_show"`
	TotalPrice int                  `json:"total_price" bson:"total_price"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingUpdate carries a partial update: only non-nil fields are applied.
type BookingUpdate struct {
	UserID     *string               `json:"user_id,omitempty" validate:"omitempty,mongodb"`
	RoomID     *string               `json:"room_id,omitempty" validate:"omitempty,mongodb"`
	CheckIn    *time.Time            `json:"check_in,omitempty"`
	CheckOut   *time.Time            `json:"check_out,omitempty"`
	ServiceIDs *[]string             `json:"service_ids,omitempty" validate:"omitempty,dive,mongodb"`
	Status     *config.BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed checked_in checked_out cancelled no_show"`
}

// Empty reports whether the update would change nothing.
func (u *BookingUpdate) Empty() bool {
	return u.UserID == nil && u.RoomID == nil && u.CheckIn == nil &&
		u.CheckOut == nil && u.ServiceIDs == nil && u.Status == nil
}
