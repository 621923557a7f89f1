package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRoomLockTTL = "ROOM_LOCK_TTL"

	EnvKafkaBrokers           = "KAFKA_BROKERS"
	EnvKafkaBookingEventtopic = "KAFKA_BOOKING_EVENTS_TOPIC"
	EnvKafkaFrontDeskTopic    = "KAFKA_FRONTDESK_TOPIC"
	EnvKafkaDLQTopic          = "KAFKA_DLQ_TOPIC"
	EnvKafkaGroupID           = "KAFKA_GROUP_ID"
)
