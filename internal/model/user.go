package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleClient UserRole = "CLIENT"
	UserRoleWasher UserRole = "WASHER"
	UserRoleAdmin  UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleClient, UserRoleWasher, UserRoleAdmin:
		return true
	}
	return false
}

// User covers all three roles; the washer-only columns stay at their zero
// values for clients and admins.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Role         UserRole  `gorm:"type:user_role;not null" json:"role"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`

	Latitude          *float64 `gorm:"type:double precision" json:"latitude,omitempty"`
	Longitude         *float64 `gorm:"type:double precision" json:"longitude,omitempty"`
	IsAvailable       bool     `gorm:"not null;default:false" json:"is_available"`
	Rating            float64  `gorm:"not null;default:0" json:"rating"`
	CompletedServices int      `gorm:"not null;default:0" json:"completed_services"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
