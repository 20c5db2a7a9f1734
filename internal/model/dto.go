package model

import (
	"time"

	"github.com/google/uuid"
)

type WasherBrief struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Rating            float64   `json:"rating"`
	CompletedServices int       `json:"completed_services"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
}

// NearbyWasher is a directory entry with the computed great-circle distance.
// Busy means the washer currently has a job IN_PROGRESS even though their
// availability flag is still on.
type NearbyWasher struct {
	Washer     WasherBrief `json:"washer"`
	DistanceKm float64     `json:"distance_km"`
	Busy       bool        `json:"busy"`
}

type PaymentSummary struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TotalAmount   float64   `json:"total_amount"`
	TotalPaid     float64   `json:"total_paid"`
	Covered       bool      `json:"covered"`
	Payments      []Payment `json:"payments"`
}

type RatingSummary struct {
	WasherID uuid.UUID `json:"washer_id"`
	Average  float64   `json:"average"`
	Count    int64     `json:"count"`
	Ratings  []Rating  `json:"ratings"`
}

type ChatHistory struct {
	PeerID    uuid.UUID     `json:"peer_id"`
	Messages  []ChatMessage `json:"messages"`
	FetchedAt time.Time     `json:"fetched_at"`
}
