package main

import (
	"context"

	"hotelier/internal/bookings/events"
	"hotelier/internal/bookings/handler"
	"hotelier/internal/bookings/repository"
	"hotelier/internal/bookings/service"
	"hotelier/internal/bookings/validator"
	catalogrepo "hotelier/internal/catalog/repository"
	"hotelier/pkg/app"
	"hotelier/pkg/config"
	"hotelier/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")

	bookingService, lockRepo := initServices(cfg)
	consumer := initKafkaConsumer(cfg, bookingService)
	if consumer != nil {
		go consumer.Run(context.Background())
		defer func() {
			if err := consumer.Close(); err != nil {
				cfg.Log.Error("Failed to close front desk consumer", "error", err)
			}
		}()
	}

	if err := lockRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure room lock indexes", "error", err)
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, repository.RoomLockRepository) {
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewMongoRoomLockRepository(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		catalogrepo.NewMongoRoomRepository(cfg),
		catalogrepo.NewMongoUserRepository(cfg),
		catalogrepo.NewMongoAdditionalServiceRepository(cfg),
		validator.NewBookingValidator(cfg.Log),
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, lockRepo
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka not configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := kafka.NewProducer(
		kafka.DefaultConfig(cfg.KafkaBrokers),
		cfg.KafkaBookingEventsTopic,
		cfg.KafkaDLQTopic,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized", "topic", cfg.KafkaBookingEventsTopic)
	return events.NewKafkaPublisher(producer, cfg.Log)
}

func initKafkaConsumer(cfg *config.Config, bookingService service.BookingService) *kafka.Consumer {
	if !cfg.KafkaEnabled() {
		return nil
	}

	kafkaCfg := kafka.DefaultConfig(cfg.KafkaBrokers)

	dlq, err := kafka.NewProducer(kafkaCfg, cfg.KafkaFrontDeskTopic, cfg.KafkaDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create DLQ producer", "error", err)
	}

	frontDesk := events.NewFrontDeskConsumer(bookingService, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.KafkaFrontDeskTopic,
		cfg.KafkaGroupID,
		dlq,
		frontDesk.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create front desk consumer", "error", err)
	}

	return consumer
}
