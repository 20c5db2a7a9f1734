package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type RatingService struct {
	ratings      RatingStore
	reservations ReservationStore
	users        UserStore
	notifier     *Notifier
}

func NewRatingService(ratings RatingStore, reservations ReservationStore, users UserStore, notifier *Notifier) *RatingService {
	return &RatingService{
		ratings:      ratings,
		reservations: reservations,
		users:        users,
		notifier:     notifier,
	}
}

type CreateRatingInput struct {
	ReservationID uuid.UUID
	Stars         int
	Comment       string
}

// Create rates a completed reservation: caller must be its client, a washer
// must be assigned, and only one rating per reservation is ever allowed.
// The washer's average is recomputed over their full rating set.
func (s *RatingService) Create(ctx context.Context, principal model.Principal, input CreateRatingInput) (*model.Rating, error) {
	if !principal.IsClient() {
		return nil, ErrPermissionDenied
	}
	if input.Stars < 1 || input.Stars > 5 {
		return nil, ErrInvalidInput
	}

	reservation, err := s.reservations.GetByID(ctx, input.ReservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if reservation.UserID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if reservation.Status != model.ReservationStatusCompleted {
		return nil, ErrInvalidStatus
	}
	if reservation.WasherID == nil {
		return nil, ErrInvalidStatus
	}

	exists, err := s.ratings.ExistsByReservation(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rating := &model.Rating{
		ReservationID: reservation.ID,
		UserID:        principal.UserID,
		WasherID:      *reservation.WasherID,
		Stars:         input.Stars,
		Comment:       strings.TrimSpace(input.Comment),
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}

	average, _, err := s.ratings.AverageForWasher(ctx, rating.WasherID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRating(ctx, rating.WasherID, average); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, rating.WasherID, model.NotificationTypeRating,
		"New rating",
		"A client rated your work.",
		"/ratings",
		map[string]string{"reservation_id": reservation.ID.String()})

	return rating, nil
}

func (s *RatingService) ForWasher(ctx context.Context, washerID uuid.UUID, limit int) (*model.RatingSummary, error) {
	washer, err := s.users.GetByID(ctx, washerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if washer.Role != model.UserRoleWasher {
		return nil, ErrNotFound
	}

	average, count, err := s.ratings.AverageForWasher(ctx, washerID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByWasher(ctx, washerID, limit)
	if err != nil {
		return nil, err
	}

	return &model.RatingSummary{
		WasherID: washerID,
		Average:  average,
		Count:    count,
		Ratings:  ratings,
	}, nil
}
