package events

import (
	"context"

	"hotelier/pkg/kafka"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
	EventBookingPaid      = "booking.paid"
	EventBookingDeleted   = "booking.deleted"

	sourceService = "bookings"
)

// Publisher announces booking lifecycle changes. Publishing is best effort:
// the booking is already persisted by the time an event goes out, so delivery
// failures are logged, never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking)
}

type KafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) {
	// Keyed by room so all events for one room land on one partition in order.
	msg := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(booking).
		WithEventType(eventType).
		WithSource(sourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"room_id", booking.RoomID,
			"error", err,
		)
		return
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"booking_id", booking.ID,
	)
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *model.Booking) {}
