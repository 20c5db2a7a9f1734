package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carwash-service/internal/model"
	"carwash-service/internal/repository"
)

// Services depend on these narrow interfaces rather than the concrete gorm
// repositories so the business rules can be exercised against in-memory
// fakes. The repository package satisfies every one of them.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter repository.UserFilter) ([]model.User, error)
	ListAvailableWashers(ctx context.Context) ([]model.User, error)
	UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error
	UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error
	UpdateRating(ctx context.Context, washerID uuid.UUID, rating float64) error
	IncrementCompletedServices(ctx context.Context, washerID uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type ReservationStore interface {
	List(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	Assign(ctx context.Context, id, washerID uuid.UUID, estimatedArrival *string) (int64, error)
	Start(ctx context.Context, id, washerID uuid.UUID) (int64, error)
	Complete(ctx context.Context, id, washerID uuid.UUID, completedAt time.Time) (int64, error)
	Cancel(ctx context.Context, id uuid.UUID) (int64, error)
	MarkCompletedByPayment(ctx context.Context, id uuid.UUID) (int64, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, scheduledDate time.Time, scheduledTime, address, notes string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) (int64, error)
	CountByService(ctx context.Context, serviceID uuid.UUID) (int64, error)
	BusyWashers(ctx context.Context, washerIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type VehicleStore interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	ExistsByPlate(ctx context.Context, plate string, excludeID *uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]model.Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type CatalogStore interface {
	Create(ctx context.Context, svc *model.WashService) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.WashService, error)
	List(ctx context.Context, activeOnly bool, vehicleType *model.VehicleType) ([]model.WashService, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (int64, error)
	SumCompletedByReservation(ctx context.Context, reservationID uuid.UUID) (float64, error)
	CountCompletedByReservation(ctx context.Context, reservationID uuid.UUID) (int64, error)
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]model.Payment, error)
}

type RatingStore interface {
	Create(ctx context.Context, rating *model.Rating) error
	ExistsByReservation(ctx context.Context, reservationID uuid.UUID) (bool, error)
	AverageForWasher(ctx context.Context, washerID uuid.UUID) (float64, int64, error)
	ListByWasher(ctx context.Context, washerID uuid.UUID, limit int) ([]model.Rating, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type ProofStore interface {
	Upsert(ctx context.Context, proof *model.ServiceProof) error
	GetByReservation(ctx context.Context, reservationID uuid.UUID) (*model.ServiceProof, error)
}

type ChatStore interface {
	Create(ctx context.Context, message *model.ChatMessage) error
	Conversation(ctx context.Context, a, b uuid.UUID, limit int) ([]model.ChatMessage, error)
}
