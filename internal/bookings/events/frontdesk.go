package events

import (
	"context"
	"fmt"

	"hotelier/pkg/config"
	"hotelier/pkg/kafka"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

// FrontDeskEvent is emitted by the front desk when a guest arrives, leaves,
// or fails to show up.
type FrontDeskEvent struct {
	BookingID string               `json:"booking_id"`
	Status    config.BookingStatus `json:"status"`
}

// BookingUpdater is the slice of the booking service the front desk consumer
// needs to apply a status change.
type BookingUpdater interface {
	Update(ctx context.Context, id string, update *model.BookingUpdate) (*model.Booking, error)
}

// FrontDeskConsumer applies check-in, check-out and no-show events coming
// from the front desk system to the corresponding bookings.
type FrontDeskConsumer struct {
	bookings BookingUpdater
	log      *logger.Logger
}

func NewFrontDeskConsumer(bookings BookingUpdater, log *logger.Logger) *FrontDeskConsumer {
	return &FrontDeskConsumer{
		bookings: bookings,
		log:      log,
	}
}

// Handle is the kafka.MessageHandler for front desk events.
func (c *FrontDeskConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	var event FrontDeskEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode front desk event: %w", err)
	}

	if event.BookingID == "" {
		return fmt.Errorf("front desk event missing booking_id")
	}

	switch event.Status {
	case config.CheckedIn, config.CheckedOut, config.NoShow:
	default:
		return fmt.Errorf("front desk event carries unexpected status %q", event.Status)
	}

	status := event.Status
	_, err := c.bookings.Update(ctx, event.BookingID, &model.BookingUpdate{Status: &status})
	if err != nil {
		return fmt.Errorf("failed to apply front desk status %q to booking %s: %w", status, event.BookingID, err)
	}

	c.log.Info("Front desk event applied",
		"booking_id", event.BookingID,
		"status", status,
		"event_id", msg.GetEventID(),
	)
	return nil
}
