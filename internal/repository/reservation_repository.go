package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type ReservationFilter struct {
	UserID     *uuid.UUID
	WasherID   *uuid.UUID
	Statuses   []model.ReservationStatus
	Unassigned bool
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

func (r *ReservationRepository) List(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error) {
	query := r.db.WithContext(ctx).Model(&model.Reservation{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.WasherID != nil {
		query = query.Where("washer_id = ?", *filter.WasherID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Unassigned {
		query = query.Where("washer_id IS NULL")
	}
	if filter.DateFrom != nil {
		query = query.Where("scheduled_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("scheduled_date <= ?", *filter.DateTo)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	} else {
		query = query.Limit(200)
	}

	var reservations []model.Reservation
	if err := query.
		Order("created_at DESC").
		Preload("Vehicle").
		Preload("Service").
		Preload("Washer").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Service").
		Preload("Washer").
		First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// Assign claims an unassigned PENDING reservation for a washer in a single
// conditional UPDATE. The rows-affected count is the success signal: two
// washers racing on the same job cannot both see a row to update.
func (r *ReservationRepository) Assign(ctx context.Context, id, washerID uuid.UUID, estimatedArrival *string) (int64, error) {
	data := map[string]interface{}{
		"washer_id": washerID,
		"status":    model.ReservationStatusConfirmed,
	}
	if estimatedArrival != nil {
		data["estimated_arrival"] = *estimatedArrival
	}
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ? AND washer_id IS NULL AND status = ?", id, model.ReservationStatusPending).
		Updates(data)
	return result.RowsAffected, result.Error
}

// Start moves CONFIRMED to IN_PROGRESS, guarded on the assigned washer.
func (r *ReservationRepository) Start(ctx context.Context, id, washerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ? AND washer_id = ? AND status = ?", id, washerID, model.ReservationStatusConfirmed).
		Update("status", model.ReservationStatusInProgress)
	return result.RowsAffected, result.Error
}

// Complete moves IN_PROGRESS to COMPLETED and stamps completed_at, guarded
// on the assigned washer. Zero rows means the transition already happened
// or the guard failed.
func (r *ReservationRepository) Complete(ctx context.Context, id, washerID uuid.UUID, completedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ? AND washer_id = ? AND status = ?", id, washerID, model.ReservationStatusInProgress).
		Updates(map[string]interface{}{
			"status":       model.ReservationStatusCompleted,
			"completed_at": completedAt,
		})
	return result.RowsAffected, result.Error
}

// Cancel is conditional on the cancellable statuses so a concurrent start
// cannot be undone by a late cancellation.
func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ? AND status IN ?", id, []model.ReservationStatus{
			model.ReservationStatusPending,
			model.ReservationStatusConfirmed,
		}).
		Update("status", model.ReservationStatusCancelled)
	return result.RowsAffected, result.Error
}

// MarkCompletedByPayment flips the status when the paid total covers the
// reservation. Conditional on not-yet-completed so re-verifying a payment
// session never re-triggers side effects.
func (r *ReservationRepository) MarkCompletedByPayment(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ? AND status NOT IN ?", id, []model.ReservationStatus{
			model.ReservationStatusCompleted,
			model.ReservationStatusCancelled,
		}).
		Update("status", model.ReservationStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *ReservationRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, scheduledDate time.Time, scheduledTime, address, notes string) error {
	return r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scheduled_date": scheduledDate,
			"scheduled_time": scheduledTime,
			"address":        address,
			"notes":          notes,
		}).Error
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Reservation{}, "id = ?", id).Error
}

// CountActiveByVehicle counts reservations that still block vehicle removal.
func (r *ReservationRepository) CountActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("vehicle_id = ? AND status NOT IN ?", vehicleID, []model.ReservationStatus{
			model.ReservationStatusCompleted,
			model.ReservationStatusCancelled,
		}).
		Count(&count).Error
	return count, err
}

func (r *ReservationRepository) CountByService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	return count, err
}

// BusyWashers returns the subset of the given washers that currently have a
// reservation IN_PROGRESS (derived availability).
func (r *ReservationRepository) BusyWashers(ctx context.Context, washerIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	busy := make(map[uuid.UUID]bool)
	if len(washerIDs) == 0 {
		return busy, nil
	}

	type row struct {
		WasherID uuid.UUID
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Select("washer_id").
		Where("washer_id IN ? AND status = ?", washerIDs, model.ReservationStatusInProgress).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, item := range rows {
		busy[item.WasherID] = true
	}
	return busy, nil
}
