package entities

import (
	"github.com/google/uuid"
	"time"
)

type Proof struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"donation_id"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null;index" json:"collector_id"`
	PhotoKeys   []string  `gorm:"serializer:json;type:text" json:"photo_keys"`
	VideoKey    string    `json:"video_key,omitempty"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	DeliveredAt time.Time `gorm:"not null" json:"delivered_at"`

	Donation  *Donation `gorm:"foreignKey:DonationID"`
	Collector *User     `gorm:"foreignKey:CollectorID"`
	Timestamp
}
