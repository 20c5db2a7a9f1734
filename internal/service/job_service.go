package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/geo"
	"carwash-service/internal/model"
	"carwash-service/internal/repository"
)

// JobService drives the washer side of the workflow: job discovery,
// the first-acceptor-wins claim, and the status progression through
// IN_PROGRESS to COMPLETED with proof upload.
type JobService struct {
	reservations    ReservationStore
	users           UserStore
	proofs          ProofStore
	notifier        *Notifier
	defaultRadiusKm float64
}

func NewJobService(
	reservations ReservationStore,
	users UserStore,
	proofs ProofStore,
	notifier *Notifier,
	defaultRadiusKm float64,
) *JobService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 10
	}
	return &JobService{
		reservations:    reservations,
		users:           users,
		proofs:          proofs,
		notifier:        notifier,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// AvailableJobs lists unclaimed PENDING reservations for washers to poll.
func (s *JobService) AvailableJobs(ctx context.Context, principal model.Principal, limit, offset int) ([]model.Reservation, error) {
	if !principal.IsWasher() {
		return nil, ErrPermissionDenied
	}
	return s.reservations.List(ctx, repository.ReservationFilter{
		Statuses:   []model.ReservationStatus{model.ReservationStatusPending},
		Unassigned: true,
		Limit:      limit,
		Offset:     offset,
	})
}

// MyJobs lists the washer's own claimed reservations.
func (s *JobService) MyJobs(ctx context.Context, principal model.Principal, statuses []model.ReservationStatus, limit, offset int) ([]model.Reservation, error) {
	if !principal.IsWasher() {
		return nil, ErrPermissionDenied
	}
	return s.reservations.List(ctx, repository.ReservationFilter{
		WasherID: &principal.UserID,
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	})
}

// Accept claims a PENDING unassigned reservation for the calling washer.
// The claim is one conditional UPDATE; when it affects zero rows the
// reservation is re-read once to report the precise reason.
func (s *JobService) Accept(ctx context.Context, principal model.Principal, reservationID uuid.UUID, estimatedArrival *string) (*model.Reservation, error) {
	if !principal.IsWasher() {
		return nil, ErrPermissionDenied
	}
	if estimatedArrival != nil && strings.TrimSpace(*estimatedArrival) == "" {
		estimatedArrival = nil
	}

	affected, err := s.reservations.Assign(ctx, reservationID, principal.UserID, estimatedArrival)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		reservation, err := s.reservations.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if reservation.WasherID != nil {
			return nil, ErrConflict
		}
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, reservation.UserID, model.NotificationTypeJobAssigned,
		"Washer assigned",
		"A washer accepted your reservation and is on the way.",
		"/reservations/"+reservation.ID.String(),
		map[string]string{"reservation_id": reservation.ID.String(), "washer_id": principal.UserID.String()})
	s.notifier.Notify(ctx, principal.UserID, model.NotificationTypeJobAccepted,
		"Job confirmed",
		"You accepted the job. Head to the pickup address.",
		"/jobs/"+reservation.ID.String(),
		map[string]string{"reservation_id": reservation.ID.String()})

	return reservation, nil
}

// Start moves the washer's CONFIRMED job to IN_PROGRESS. Any other
// transition is rejected.
func (s *JobService) Start(ctx context.Context, principal model.Principal, reservationID uuid.UUID) (*model.Reservation, error) {
	if !principal.IsWasher() {
		return nil, ErrPermissionDenied
	}

	affected, err := s.reservations.Start(ctx, reservationID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		reservation, err := s.reservations.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if reservation.WasherID == nil || *reservation.WasherID != principal.UserID {
			return nil, ErrPermissionDenied
		}
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, reservation.UserID, model.NotificationTypeJobStarted,
		"Wash in progress",
		"Your washer has started working on your vehicle.",
		"/reservations/"+reservation.ID.String(),
		map[string]string{"reservation_id": reservation.ID.String()})

	return reservation, nil
}

type CompleteJobInput struct {
	BeforePhotos []string
	AfterPhotos  []string
	Notes        string
}

// Complete finishes the washer's IN_PROGRESS job: uploads proof, stamps
// completed_at, bumps the washer's completed counter once, and notifies
// the client. Re-uploading proof on an already COMPLETED job is allowed
// and only replaces the photos.
func (s *JobService) Complete(ctx context.Context, principal model.Principal, reservationID uuid.UUID, input CompleteJobInput) (*model.Reservation, error) {
	if !principal.IsWasher() {
		return nil, ErrPermissionDenied
	}

	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if reservation.WasherID == nil || *reservation.WasherID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if reservation.Status != model.ReservationStatusInProgress && reservation.Status != model.ReservationStatusCompleted {
		return nil, ErrInvalidStatus
	}

	proof := &model.ServiceProof{
		ReservationID: reservation.ID,
		BeforePhotos:  input.BeforePhotos,
		AfterPhotos:   input.AfterPhotos,
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.proofs.Upsert(ctx, proof); err != nil {
		return nil, err
	}

	// The conditional update only fires on the IN_PROGRESS→COMPLETED edge,
	// so counter increment and client notification happen exactly once.
	affected, err := s.reservations.Complete(ctx, reservation.ID, principal.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected > 0 {
		if err := s.users.IncrementCompletedServices(ctx, principal.UserID); err != nil {
			return nil, err
		}
		s.notifier.Notify(ctx, reservation.UserID, model.NotificationTypeJobCompleted,
			"Wash completed",
			"Your vehicle is ready. Before/after photos are attached.",
			"/reservations/"+reservation.ID.String(),
			map[string]string{"reservation_id": reservation.ID.String()})
	}

	return s.reservations.GetByID(ctx, reservation.ID)
}

func (s *JobService) Proof(ctx context.Context, principal model.Principal, reservationID uuid.UUID) (*model.ServiceProof, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	allowed := principal.IsAdmin() ||
		reservation.UserID == principal.UserID ||
		(reservation.WasherID != nil && *reservation.WasherID == principal.UserID)
	if !allowed {
		return nil, ErrPermissionDenied
	}

	proof, err := s.proofs.GetByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return proof, nil
}

// NearbyWashers returns available washers within radiusKm of the given
// point, closest first. Washers with a job IN_PROGRESS are flagged busy.
func (s *JobService) NearbyWashers(ctx context.Context, lat, lng float64, radiusKm float64) ([]model.NearbyWasher, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidInput
	}
	if radiusKm <= 0 {
		radiusKm = s.defaultRadiusKm
	}

	washers, err := s.users.ListAvailableWashers(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(washers))
	for _, w := range washers {
		ids = append(ids, w.ID)
	}
	busy, err := s.reservations.BusyWashers(ctx, ids)
	if err != nil {
		return nil, err
	}

	nearby := make([]model.NearbyWasher, 0, len(washers))
	for _, w := range washers {
		if !w.HasLocation() {
			continue
		}
		distance := geo.DistanceKm(lat, lng, *w.Latitude, *w.Longitude)
		if distance > radiusKm {
			continue
		}
		nearby = append(nearby, model.NearbyWasher{
			Washer: model.WasherBrief{
				ID:                w.ID,
				FullName:          w.FullName,
				Phone:             w.Phone,
				Rating:            w.Rating,
				CompletedServices: w.CompletedServices,
				Latitude:          w.Latitude,
				Longitude:         w.Longitude,
			},
			DistanceKm: geo.RoundDisplay(distance),
			Busy:       busy[w.ID],
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}

// SetAvailability toggles the washer's own availability flag.
func (s *JobService) SetAvailability(ctx context.Context, principal model.Principal, available bool) error {
	if !principal.IsWasher() {
		return ErrPermissionDenied
	}
	return s.users.UpdateAvailability(ctx, principal.UserID, available)
}

// SetLocation stores the washer's last reported coordinates. Client-supplied
// values are untrusted numeric input: range-check only.
func (s *JobService) SetLocation(ctx context.Context, principal model.Principal, lat, lng float64) error {
	if !principal.IsWasher() {
		return ErrPermissionDenied
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidInput
	}
	return s.users.UpdateLocation(ctx, principal.UserID, lat, lng)
}
