package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// Payment records one (possibly partial) payment toward a reservation.
// Reconciliation sums COMPLETED amounts against the reservation total.
type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ReservationID uuid.UUID     `gorm:"type:uuid;not null" json:"reservation_id"`
	Amount        float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status        PaymentStatus `gorm:"type:payment_status;not null;default:'PENDING'" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(32);not null" json:"payment_method"`
	TransactionID *string       `gorm:"type:varchar(255)" json:"transaction_id,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
