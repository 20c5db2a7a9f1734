package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carwash-service/internal/model"
)

type ProofRepository struct {
	db *gorm.DB
}

func NewProofRepository(db *gorm.DB) *ProofRepository {
	return &ProofRepository{db: db}
}

// Upsert keyed by reservation: re-uploading proof replaces the photos.
func (r *ProofRepository) Upsert(ctx context.Context, proof *model.ServiceProof) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reservation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"before_photos", "after_photos", "notes", "updated_at"}),
		}).
		Create(proof).Error
}

func (r *ProofRepository) GetByReservation(ctx context.Context, reservationID uuid.UUID) (*model.ServiceProof, error) {
	var proof model.ServiceProof
	if err := r.db.WithContext(ctx).First(&proof, "reservation_id = ?", reservationID).Error; err != nil {
		return nil, err
	}
	return &proof, nil
}
