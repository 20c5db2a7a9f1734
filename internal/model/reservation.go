package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "PENDING"
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMED"
	ReservationStatusInProgress ReservationStatus = "IN_PROGRESS"
	ReservationStatusCompleted  ReservationStatus = "COMPLETED"
	ReservationStatusCancelled  ReservationStatus = "CANCELLED"
)

// Reservation is the central entity. WasherID stays null until a washer
// accepts; once set it never changes. TotalAmount is the service price
// snapshotted at creation.
type Reservation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	VehicleID uuid.UUID  `gorm:"type:uuid;not null" json:"vehicle_id"`
	ServiceID uuid.UUID  `gorm:"type:uuid;not null" json:"service_id"`
	WasherID  *uuid.UUID `gorm:"type:uuid" json:"washer_id"`

	Status        ReservationStatus `gorm:"type:reservation_status;not null;default:'PENDING'" json:"status"`
	ScheduledDate time.Time         `gorm:"type:date;not null" json:"scheduled_date"`
	ScheduledTime string            `gorm:"type:varchar(8);not null" json:"scheduled_time"`
	TotalAmount   float64           `gorm:"type:numeric(10,2);not null" json:"total_amount"`

	Address          string   `gorm:"type:text;not null" json:"address"`
	Latitude         *float64 `gorm:"type:double precision" json:"latitude,omitempty"`
	Longitude        *float64 `gorm:"type:double precision" json:"longitude,omitempty"`
	Notes            string   `gorm:"type:text" json:"notes"`
	EstimatedArrival *string  `gorm:"type:varchar(64)" json:"estimated_arrival,omitempty"`

	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Client  *User        `gorm:"foreignKey:UserID" json:"client,omitempty"`
	Vehicle *Vehicle     `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Service *WashService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Washer  *User        `gorm:"foreignKey:WasherID" json:"washer,omitempty"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// CanCancel reports whether a reservation may still be called off.
func (r *Reservation) CanCancel() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}
