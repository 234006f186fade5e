package entities

import (
	"github.com/google/uuid"
	"time"
)

type Donation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"donor_id"`
	Title     string    `gorm:"not null" json:"title"`
	Type      string    `gorm:"not null;index" json:"type"`
	Quantity  float64   `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"not null" json:"unit"`
	PhotoKey  string    `json:"photo_key,omitempty"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Status    string    `gorm:"type:varchar(16);not null;default:OPEN;index" json:"status"` // OPEN, ACCEPTED, COMPLETED, DECLINED, EXPIRED
	Priority  string    `gorm:"type:varchar(8);not null;default:medium" json:"priority"`  // low, medium, high

	AssignedCollectorID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_collector_id,omitempty"`
	PickupTime          *time.Time `json:"pickup_time,omitempty"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	CompletedAt         *time.Time `gorm:"index" json:"completed_at,omitempty"`
	CompletedBy         *uuid.UUID `gorm:"type:uuid" json:"completed_by,omitempty"`

	Donor             *User `gorm:"foreignKey:DonorID"`
	AssignedCollector *User `gorm:"foreignKey:AssignedCollectorID"`
	Timestamp
}

// DonationDecline is the audit trail of collectors passing on a donation.
type DonationDecline struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"donation_id"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null;index" json:"collector_id"`
	Reason      string    `json:"reason,omitempty"`
	Released    bool      `json:"released"` // true when the collector gave back an accepted pickup

	Donation  *Donation `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
	Collector *User     `gorm:"foreignKey:CollectorID"`
	Timestamp
}
