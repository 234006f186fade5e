package entities

import (
	"github.com/google/uuid"
)

type PickupRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"donation_id"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null;index" json:"collector_id"`
	Note        string    `json:"note,omitempty"`
	Status      string    `gorm:"type:varchar(16);not null;default:PENDING" json:"status"` // PENDING, APPROVED, REJECTED

	Donation  *Donation `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
	Collector *User     `gorm:"foreignKey:CollectorID"`
	Timestamp
}
