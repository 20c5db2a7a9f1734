package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceProof holds before/after photo evidence for a completed job.
// Keyed by reservation; re-uploads overwrite (upsert).
type ServiceProof struct {
	ReservationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"reservation_id"`
	BeforePhotos  []string  `gorm:"serializer:json;type:jsonb" json:"before_photos"`
	AfterPhotos   []string  `gorm:"serializer:json;type:jsonb" json:"after_photos"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ServiceProof) TableName() string {
	return "service_proofs"
}
