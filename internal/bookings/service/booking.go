package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "hotelier/internal/bookings/errors"
	"hotelier/internal/bookings/events"
	"hotelier/internal/bookings/repository"
	"hotelier/internal/bookings/validator"
	catalogrepo "hotelier/internal/catalog/repository"
	"hotelier/internal/conflict"
	"hotelier/internal/pricing"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	CancelForUser(ctx context.Context, id string, userID string) (*model.Booking, error)
	Pay(ctx context.Context, id string, userID string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	rooms     catalogrepo.RoomRepository
	users     catalogrepo.UserRepository
	services  catalogrepo.AdditionalServiceRepository
	validator *validator.BookingValidator
	detector  *conflict.Detector
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	rooms catalogrepo.RoomRepository,
	users catalogrepo.UserRepository,
	services catalogrepo.AdditionalServiceRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		users:     users,
		services:  services,
		validator: validator,
		detector:  conflict.NewDetector(repo),
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if booking.Status == "" {
		booking.Status = config.Pending
	}
	if booking.Status != config.Pending {
		return apperrors.InvalidInput("New bookings must start in pending status")
	}

	if err := s.validate(booking); err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, booking.UserID); err != nil {
		return s.translateCatalogError(err, "User", booking.UserID)
	}
	room, err := s.rooms.FindByID(ctx, booking.RoomID)
	if err != nil {
		return s.translateCatalogError(err, "Room", booking.RoomID)
	}

	// The advisory lock serializes the conflict check and the insert against
	// other writers on the same room.
	if err := s.acquireRoomLock(ctx, booking.RoomID); err != nil {
		return err
	}
	defer s.releaseRoomLock(ctx, booking.RoomID)

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ensureNoOverlap(txCtx, booking.RoomID, booking.CheckIn, booking.CheckOut, ""); err != nil {
			return err
		}

		selected, err := s.resolveServices(txCtx, booking.ServiceIDs)
		if err != nil {
			return err
		}
		booking.ServiceIDs = serviceIDs(selected)
		booking.TotalPrice = pricing.Total(room.PricePerNight, booking.CheckIn, booking.CheckOut, selected)

		if err := s.repo.Create(txCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}

		return s.refreshRoomAvailability(txCtx, booking.RoomID)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return err
	}

	s.publisher.Publish(ctx, events.EventBookingCreated, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
		"total_price", booking.TotalPrice,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateBookingError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("Unknown booking status: %s", filter.Status))
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}
	return s.GetAll(ctx, repository.BookingFilter{UserID: userID}, limit, offset)
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateBookingError(err, id)
	}
	if updates.Empty() {
		return existing, nil
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.Status != nil && *updates.Status != existing.Status {
		if !existing.Status.CanTransition(*updates.Status) {
			return nil, apperrors.Conflict(fmt.Sprintf(
				"Cannot transition booking from %s to %s", existing.Status, *updates.Status,
			))
		}
	}

	merged := mergeBookingUpdates(existing, updates)

	datesChanged := updates.CheckIn != nil || updates.CheckOut != nil
	roomChanged := merged.RoomID != existing.RoomID
	servicesChanged := updates.ServiceIDs != nil

	if datesChanged && !merged.CheckOut.After(merged.CheckIn) {
		return nil, apperrors.Validation("Invalid date range", map[string]any{
			"error": "check_out must be after check_in",
		})
	}
	if updates.CheckIn != nil {
		if err := s.validator.ValidateDates(merged.CheckIn, merged.CheckOut); err != nil {
			return nil, apperrors.Validation("Invalid date range", map[string]any{"error": err.Error()})
		}
	}

	var room *model.Room
	if roomChanged || datesChanged || servicesChanged {
		room, err = s.rooms.FindByID(ctx, merged.RoomID)
		if err != nil {
			return nil, s.translateCatalogError(err, "Room", merged.RoomID)
		}
	}
	if updates.UserID != nil && *updates.UserID != existing.UserID {
		if _, err := s.users.FindByID(ctx, merged.UserID); err != nil {
			return nil, s.translateCatalogError(err, "User", merged.UserID)
		}
	}

	// Re-placing the booking on the calendar requires the same serialization
	// as creating it.
	needsConflictCheck := (roomChanged || datesChanged) && merged.Status.IsActive()
	if needsConflictCheck {
		if err := s.acquireRoomLock(ctx, merged.RoomID); err != nil {
			return nil, err
		}
		defer s.releaseRoomLock(ctx, merged.RoomID)
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if needsConflictCheck {
			if err := s.ensureNoOverlap(txCtx, merged.RoomID, merged.CheckIn, merged.CheckOut, id); err != nil {
				return err
			}
		}

		if roomChanged || datesChanged || servicesChanged {
			selected, err := s.resolveServices(txCtx, merged.ServiceIDs)
			if err != nil {
				return err
			}
			merged.ServiceIDs = serviceIDs(selected)
			merged.TotalPrice = pricing.Total(room.PricePerNight, merged.CheckIn, merged.CheckOut, selected)
		}

		if err := s.repo.Update(txCtx, id, merged); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}

		if err := s.refreshRoomAvailability(txCtx, merged.RoomID); err != nil {
			return err
		}
		if roomChanged {
			return s.refreshRoomAvailability(txCtx, existing.RoomID)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.publisher.Publish(ctx, events.EventBookingUpdated, merged)
	s.cfg.Log.Info("Booking updated successfully", "id", id, "status", merged.Status)
	return merged, nil
}

// Cancel moves the booking to cancelled. Cancelling a booking that is already
// in a terminal state changes nothing and succeeds.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateBookingError(err, id)
	}

	return s.cancel(ctx, booking)
}

// CancelForUser cancels on behalf of a guest; guests may only cancel their
// own bookings.
func (s *bookingService) CancelForUser(ctx context.Context, id string, userID string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateBookingError(err, id)
	}
	if booking.UserID != userID {
		return nil, apperrors.Forbidden("Booking belongs to a different user")
	}

	return s.cancel(ctx, booking)
}

func (s *bookingService) cancel(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if booking.Status.IsTerminal() {
		return booking, nil
	}

	booking.Status = config.Cancelled
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, booking.ID, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", booking.ID)
			}
			return apperrors.Internal("Failed to cancel booking", err)
		}
		return s.refreshRoomAvailability(txCtx, booking.RoomID)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", booking.ID, "error", err)
		return nil, err
	}

	s.publisher.Publish(ctx, events.EventBookingCancelled, booking)
	s.cfg.Log.Info("Booking cancelled", "id", booking.ID, "room_id", booking.RoomID)
	return booking, nil
}

// Pay confirms a pending booking. Paying a booking that is not pending
// changes nothing and succeeds, so retried payment callbacks stay harmless.
func (s *bookingService) Pay(ctx context.Context, id string, userID string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateBookingError(err, id)
	}
	if booking.UserID != userID {
		return nil, apperrors.Forbidden("Booking belongs to a different user")
	}

	if booking.Status != config.Pending {
		return booking, nil
	}

	booking.Status = config.Confirmed
	if err := s.repo.Update(ctx, id, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to confirm booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to confirm booking", err)
	}

	s.publisher.Publish(ctx, events.EventBookingPaid, booking)
	s.cfg.Log.Info("Booking confirmed", "id", id)
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.translateBookingError(err, id)
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return s.refreshRoomAvailability(txCtx, booking.RoomID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.EventBookingDeleted, booking)
	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) ensureNoOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) error {
	clash, err := s.detector.FindOverlap(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if clash != nil {
		return apperrors.Conflict(fmt.Sprintf(
			"Room is already booked from %s to %s",
			clash.CheckIn.Format(time.DateOnly),
			clash.CheckOut.Format(time.DateOnly),
		))
	}
	return nil
}

// resolveServices loads the requested additional services. Unknown ids are
// dropped rather than rejected, so the booking carries only services that
// actually priced in.
func (s *bookingService) resolveServices(ctx context.Context, ids []string) ([]*model.AdditionalService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	selected, err := s.services.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("Failed to resolve additional services", err)
	}
	return selected, nil
}

func serviceIDs(services []*model.AdditionalService) []string {
	if len(services) == 0 {
		return nil
	}
	ids := make([]string, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}
	return ids
}

// refreshRoomAvailability recomputes the room's availability flag from stored
// bookings. The flag is a cache; bookings remain the source of truth.
func (s *bookingService) refreshRoomAvailability(ctx context.Context, roomID string) error {
	active, err := s.repo.FindByRoomAndStatuses(ctx, roomID, config.ActiveStatuses())
	if err != nil {
		return apperrors.Internal("Failed to load room bookings", err)
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return s.translateCatalogError(err, "Room", roomID)
	}

	available := len(active) == 0
	if room.Available == available {
		return nil
	}

	room.Available = available
	if err := s.rooms.Save(ctx, room); err != nil {
		return apperrors.Internal("Failed to update room availability", err)
	}
	return nil
}

func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) error {
	if err := s.lockRepo.Acquire(ctx, roomID); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return apperrors.Conflict("Room is currently being booked by another request. Please try again.")
		}
		return apperrors.Internal("Failed to acquire room lock", err)
	}
	return nil
}

func (s *bookingService) releaseRoomLock(ctx context.Context, roomID string) {
	if err := s.lockRepo.Release(ctx, roomID); err != nil {
		s.cfg.Log.Warn("Failed to release room lock", "room_id", roomID, "error", err)
	}
}

func (s *bookingService) translateBookingError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}

func (s *bookingService) translateCatalogError(err error, resource, id string) error {
	if errors.Is(err, catalogrepo.ErrNotFound) {
		return apperrors.NotFoundWithID(resource, id)
	}
	if errors.Is(err, catalogrepo.ErrInvalidID) {
		return apperrors.InvalidInput(fmt.Sprintf("Invalid %s ID format", resource))
	}
	return apperrors.Internal(fmt.Sprintf("Failed to retrieve %s", resource), err)
}

func mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.UserID != nil {
		merged.UserID = *updates.UserID
	}
	if updates.RoomID != nil {
		merged.RoomID = *updates.RoomID
	}
	if updates.CheckIn != nil {
		merged.CheckIn = *updates.CheckIn
	}
	if updates.CheckOut != nil {
		merged.CheckOut = *updates.CheckOut
	}
	if updates.ServiceIDs != nil {
		merged.ServiceIDs = *updates.ServiceIDs
	}
	if updates.Status != nil {
		merged.Status = *updates.Status
	}

	return &merged
}
