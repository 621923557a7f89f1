package main

import (
	bookingsrepo "hotelier/internal/bookings/repository"
	catalogrepo "hotelier/internal/catalog/repository"
	"hotelier/internal/rooms/handler"
	"hotelier/internal/rooms/service"
	"hotelier/pkg/app"
	"hotelier/pkg/config"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Rooms service")

	roomService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewRoomHandler(roomService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.RoomService {
	roomService := service.NewRoomService(
		catalogrepo.NewMongoRoomRepository(cfg),
		bookingsrepo.NewMongoBookingRepository(cfg),
		cfg,
	)

	cfg.Log.Info("Room service initialized", "database", cfg.MongoDatabaseName)
	return roomService
}
