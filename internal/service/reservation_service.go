package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
	"carwash-service/internal/repository"
)

type ReservationService struct {
	reservations ReservationStore
	vehicles     VehicleStore
	catalog      CatalogStore
	payments     PaymentStore
	notifier     *Notifier
}

func NewReservationService(
	reservations ReservationStore,
	vehicles VehicleStore,
	catalog CatalogStore,
	payments PaymentStore,
	notifier *Notifier,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		vehicles:     vehicles,
		catalog:      catalog,
		payments:     payments,
		notifier:     notifier,
	}
}

type CreateReservationInput struct {
	VehicleID     uuid.UUID
	ServiceID     uuid.UUID
	ScheduledDate time.Time
	ScheduledTime string
	Address       string
	Latitude      *float64
	Longitude     *float64
	Notes         string
}

// Create books a wash: PENDING, no washer, total snapshotted from the
// catalog price. The vehicle must belong to the caller.
func (s *ReservationService) Create(ctx context.Context, principal model.Principal, input CreateReservationInput) (*model.Reservation, error) {
	if !principal.IsClient() {
		return nil, ErrPermissionDenied
	}

	input.Address = strings.TrimSpace(input.Address)
	if input.Address == "" || input.ScheduledTime == "" || input.ScheduledDate.IsZero() {
		return nil, ErrInvalidInput
	}

	svc, err := s.catalog.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrNotFound
	}

	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if vehicle.OwnerID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if !vehicle.IsActive {
		return nil, ErrInvalidInput
	}

	reservation := &model.Reservation{
		UserID:        principal.UserID,
		VehicleID:     vehicle.ID,
		ServiceID:     svc.ID,
		Status:        model.ReservationStatusPending,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		TotalAmount:   svc.Price,
		Address:       input.Address,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Notes:         strings.TrimSpace(input.Notes),
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	return s.reservations.GetByID(ctx, reservation.ID)
}

type ListReservationsOptions struct {
	Statuses []model.ReservationStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// List scopes results by role: clients see their bookings, washers their
// assigned jobs, admins everything.
func (s *ReservationService) List(ctx context.Context, principal model.Principal, opts ListReservationsOptions) ([]model.Reservation, error) {
	filter := repository.ReservationFilter{
		Statuses: opts.Statuses,
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}

	switch {
	case principal.IsClient():
		filter.UserID = &principal.UserID
	case principal.IsWasher():
		filter.WasherID = &principal.UserID
	case principal.IsAdmin():
	default:
		return nil, ErrPermissionDenied
	}

	return s.reservations.List(ctx, filter)
}

func (s *ReservationService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !s.canView(principal, reservation) {
		return nil, ErrPermissionDenied
	}
	return reservation, nil
}

// Cancel calls off a booking from PENDING or CONFIRMED only.
func (s *ReservationService) Cancel(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	reservation, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin() && reservation.UserID != principal.UserID {
		return ErrPermissionDenied
	}
	if !reservation.CanCancel() {
		return ErrInvalidStatus
	}

	affected, err := s.reservations.Cancel(ctx, reservation.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidStatus
	}

	if reservation.WasherID != nil {
		s.notifier.Notify(ctx, *reservation.WasherID, model.NotificationTypeJobCancelled,
			"Job cancelled",
			"A job assigned to you was cancelled by the client.",
			"/jobs", map[string]string{"reservation_id": reservation.ID.String()})
	}
	return nil
}

type UpdateScheduleInput struct {
	ScheduledDate time.Time
	ScheduledTime string
	Address       string
	Notes         string
}

func (s *ReservationService) UpdateSchedule(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateScheduleInput) (*model.Reservation, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	reservation, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if input.ScheduledDate.IsZero() || input.ScheduledTime == "" || strings.TrimSpace(input.Address) == "" {
		return nil, ErrInvalidInput
	}

	if err := s.reservations.UpdateSchedule(ctx, reservation.ID, input.ScheduledDate, input.ScheduledTime, strings.TrimSpace(input.Address), strings.TrimSpace(input.Notes)); err != nil {
		return nil, err
	}
	return s.reservations.GetByID(ctx, reservation.ID)
}

// Delete hard-removes a reservation, blocked once any completed payment
// exists for it.
func (s *ReservationService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	reservation, err := s.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin() && reservation.UserID != principal.UserID {
		return ErrPermissionDenied
	}

	paid, err := s.payments.CountCompletedByReservation(ctx, reservation.ID)
	if err != nil {
		return err
	}
	if paid > 0 {
		return ErrConflict
	}

	return s.reservations.Delete(ctx, reservation.ID)
}

func (s *ReservationService) canView(principal model.Principal, reservation *model.Reservation) bool {
	switch {
	case principal.IsAdmin():
		return true
	case principal.IsClient():
		return reservation.UserID == principal.UserID
	case principal.IsWasher():
		return reservation.WasherID != nil && *reservation.WasherID == principal.UserID
	default:
		return false
	}
}
