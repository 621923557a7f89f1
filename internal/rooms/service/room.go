package service

import (
	"context"
	"errors"
	"sync"
	"time"

	catalogrepo "hotelier/internal/catalog/repository"
	"hotelier/internal/conflict"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
)

type RoomService interface {
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error)
	GetAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*model.Room, error)
}

type roomService struct {
	rooms    catalogrepo.RoomRepository
	detector *conflict.Detector
	cfg      *config.Config
}

func NewRoomService(rooms catalogrepo.RoomRepository, bookings conflict.BookingSource, cfg *config.Config) RoomService {
	return &roomService{
		rooms:    rooms,
		detector: conflict.NewDetector(bookings),
		cfg:      cfg,
	}
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogrepo.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, catalogrepo.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

func (s *roomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.rooms.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.rooms.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

// GetAvailable returns the rooms free for the whole of [checkIn, checkOut).
// Availability is recomputed from stored bookings; the rooms' cached
// availability flag only reflects the present moment and is ignored here.
func (s *roomService) GetAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]*model.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, apperrors.InvalidInput("check_out must be after check_in")
	}

	count, err := s.rooms.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count rooms", err)
	}
	rooms, err := s.rooms.FindAll(ctx, int(count), 0)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	available := make([]*model.Room, 0, len(rooms))
	for _, room := range rooms {
		clash, err := s.detector.HasConflict(ctx, room.ID, checkIn, checkOut, "")
		if err != nil {
			return nil, apperrors.Internal("Failed to check room bookings", err)
		}
		if !clash {
			available = append(available, room)
		}
	}

	s.cfg.Log.Debug("Availability search completed",
		"check_in", checkIn,
		"check_out", checkOut,
		"total_rooms", len(rooms),
		"available", len(available),
	)
	return available, nil
}
