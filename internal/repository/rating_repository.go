package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carwash-service/internal/model"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) ExistsByReservation(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("reservation_id = ?", reservationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AverageForWasher computes the plain arithmetic mean over all of the
// washer's ratings.
func (r *RatingRepository) AverageForWasher(ctx context.Context, washerID uuid.UUID) (float64, int64, error) {
	type row struct {
		Average float64
		Count   int64
	}
	var result row
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Where("washer_id = ?", washerID).
		Select("COALESCE(AVG(stars), 0) AS average, COUNT(*) AS count").
		Scan(&result).Error
	return result.Average, result.Count, err
}

func (r *RatingRepository) ListByWasher(ctx context.Context, washerID uuid.UUID, limit int) ([]model.Rating, error) {
	if limit <= 0 {
		limit = 100
	}
	var ratings []model.Rating
	if err := r.db.WithContext(ctx).
		Where("washer_id = ?", washerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
