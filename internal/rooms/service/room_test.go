package service

import (
	"context"
	"testing"
	"time"

	catalogrepo "hotelier/internal/catalog/repository"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type mockRoomRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.Room, error)
	countFunc    func(ctx context.Context) (int64, error)
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, catalogrepo.ErrNotFound
}

func (m *mockRoomRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockRoomRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockRoomRepository) Save(ctx context.Context, room *model.Room) error {
	return nil
}

type mockBookingSource struct {
	findFunc func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error)
}

func (m *mockBookingSource) FindByRoomAndStatuses(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, roomID, statuses)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log:         logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"}),
		ReadTimeout: 5 * time.Second,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetByID(t *testing.T) {
	room := &model.Room{ID: "r1", Number: 101, PricePerNight: 100}
	svc := NewRoomService(&mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			if id == "r1" {
				return room, nil
			}
			return nil, catalogrepo.ErrNotFound
		},
	}, &mockBookingSource{}, testConfig())

	got, err := svc.GetByID(context.Background(), "r1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Number != 101 {
		t.Errorf("room number = %d, want 101", got.Number)
	}

	_, err = svc.GetByID(context.Background(), "missing")
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetAllRunsCountAndFindTogether(t *testing.T) {
	repo := &mockRoomRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 7, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Room{{ID: "r1"}}, nil
		},
	}
	svc := NewRoomService(repo, &mockBookingSource{}, testConfig())

	for i := 0; i < 20; i++ {
		rooms, count, err := svc.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: GetAll failed: %v", i, err)
		}
		if count != 7 || len(rooms) != 1 {
			t.Fatalf("iteration %d: got %d rooms (count %d)", i, len(rooms), count)
		}
	}
}

func TestGetAvailableFiltersBookedRooms(t *testing.T) {
	rooms := []*model.Room{
		{ID: "r1", Number: 101},
		{ID: "r2", Number: 102},
		{ID: "r3", Number: 103},
	}
	repo := &mockRoomRepository{
		countFunc: func(ctx context.Context) (int64, error) { return int64(len(rooms)), nil },
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
			return rooms, nil
		},
	}

	// r2 is taken over the queried range, r3 has a cancelled booking only
	bookingsByRoom := map[string][]*model.Booking{
		"r2": {{ID: "b1", RoomID: "r2", Status: config.Confirmed,
			CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 14)}},
	}
	source := &mockBookingSource{
		findFunc: func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
			return bookingsByRoom[roomID], nil
		},
	}

	svc := NewRoomService(repo, source, testConfig())

	available, err := svc.GetAvailable(context.Background(), date(2026, 9, 12), date(2026, 9, 15))
	if err != nil {
		t.Fatalf("GetAvailable failed: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("got %d available rooms, want 2", len(available))
	}
	for _, room := range available {
		if room.ID == "r2" {
			t.Error("booked room r2 reported as available")
		}
	}
}

func TestGetAvailableAdjacentStayDoesNotBlock(t *testing.T) {
	repo := &mockRoomRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 1, nil },
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Room, error) {
			return []*model.Room{{ID: "r1"}}, nil
		},
	}
	source := &mockBookingSource{
		findFunc: func(ctx context.Context, roomID string, statuses []config.BookingStatus) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "b1", RoomID: "r1", Status: config.Confirmed,
				CheckIn: date(2026, 9, 10), CheckOut: date(2026, 9, 14)}}, nil
		},
	}
	svc := NewRoomService(repo, source, testConfig())

	// Searching from the existing checkout day onward finds the room free
	available, err := svc.GetAvailable(context.Background(), date(2026, 9, 14), date(2026, 9, 16))
	if err != nil {
		t.Fatalf("GetAvailable failed: %v", err)
	}
	if len(available) != 1 {
		t.Errorf("got %d available rooms, want 1", len(available))
	}
}

func TestGetAvailableRejectsInvalidRange(t *testing.T) {
	svc := NewRoomService(&mockRoomRepository{}, &mockBookingSource{}, testConfig())

	_, err := svc.GetAvailable(context.Background(), date(2026, 9, 15), date(2026, 9, 12))
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}

	_, err = svc.GetAvailable(context.Background(), date(2026, 9, 12), date(2026, 9, 12))
	if err == nil {
		t.Error("zero-length range accepted")
	}
}
