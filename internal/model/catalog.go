package model

import (
	"time"

	"github.com/google/uuid"
)

// WashService is a catalog entry. Reservations snapshot its price at
// creation time; editing the catalog never touches existing bookings.
type WashService struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name            string      `gorm:"type:varchar(255);not null" json:"name"`
	Description     string      `gorm:"type:text" json:"description"`
	Price           float64     `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationMinutes int         `gorm:"not null" json:"duration_minutes"`
	VehicleType     VehicleType `gorm:"type:vehicle_type;not null" json:"vehicle_type"`
	IsActive        bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WashService) TableName() string {
	return "services"
}
