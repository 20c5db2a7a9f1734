package model

import (
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleTypeSedan      VehicleType = "SEDAN"
	VehicleTypeSuv        VehicleType = "SUV"
	VehicleTypePickup     VehicleType = "PICKUP"
	VehicleTypeVan        VehicleType = "VAN"
	VehicleTypeMotorcycle VehicleType = "MOTORCYCLE"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeSedan, VehicleTypeSuv, VehicleTypePickup, VehicleTypeVan, VehicleTypeMotorcycle:
		return true
	}
	return false
}

type Vehicle struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OwnerID     uuid.UUID   `gorm:"type:uuid;not null" json:"owner_id"`
	Brand       string      `gorm:"type:varchar(64);not null" json:"brand"`
	Model       string      `gorm:"type:varchar(64);not null" json:"model"`
	Plate       string      `gorm:"type:varchar(32);not null;uniqueIndex" json:"plate"`
	VehicleType VehicleType `gorm:"type:vehicle_type;not null" json:"vehicle_type"`
	IsActive    bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
