package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeJobAssigned  NotificationType = "JOB_ASSIGNED"
	NotificationTypeJobAccepted  NotificationType = "JOB_ACCEPTED"
	NotificationTypeJobStarted   NotificationType = "JOB_STARTED"
	NotificationTypeJobCompleted NotificationType = "JOB_COMPLETED"
	NotificationTypeJobCancelled NotificationType = "JOB_CANCELLED"
	NotificationTypeRating       NotificationType = "RATING"
	NotificationTypePayment      NotificationType = "PAYMENT"
)

// Notification rows are append-only; only IsRead ever changes after insert.
type Notification struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null" json:"user_id"`
	Title     string            `gorm:"type:varchar(255);not null" json:"title"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	Type      NotificationType  `gorm:"type:varchar(32);not null" json:"type"`
	IsRead    bool              `gorm:"not null;default:false" json:"is_read"`
	ActionURL string            `gorm:"type:text" json:"action_url"`
	Metadata  map[string]string `gorm:"serializer:json;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
