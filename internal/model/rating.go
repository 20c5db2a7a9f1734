package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating is created at most once per reservation (unique index). Creating
// one recomputes the washer's average over all their ratings.
type Rating struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ReservationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"reservation_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	WasherID      uuid.UUID `gorm:"type:uuid;not null" json:"washer_id"`
	Stars         int       `gorm:"not null" json:"stars"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}
