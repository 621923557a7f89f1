package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelier"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRoomLockTTL = 10 * time.Second

	DefaultKafkaBookingEventsTopic = "hotelier.booking.events"
	DefaultKafkaFrontDeskTopic     = "hotelier.frontdesk.events"
	DefaultKafkaDLQTopic           = "hotelier.dlq"
	DefaultKafkaGroupID            = "hotelier-bookings"

	DefaultPaginationLimit = 100
)
