package entities

import (
	"github.com/google/uuid"
	"time"
)

type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonationID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_donation_reviewer" json:"donation_id"`
	ReviewerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_donation_reviewer" json:"reviewer_id"`
	CollectorID uuid.UUID `gorm:"type:uuid;not null;index:idx_feedback_collector_created,priority:1" json:"collector_id"`
	Rating      int       `gorm:"not null;check:chk_feedback_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment     string    `gorm:"size:400" json:"comment,omitempty"`
	CreatedAt   time.Time `gorm:"index:idx_feedback_collector_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Donation  *Donation `gorm:"foreignKey:DonationID"`
	Reviewer  *User     `gorm:"foreignKey:ReviewerID"`
	Collector *User     `gorm:"foreignKey:CollectorID"`
}
