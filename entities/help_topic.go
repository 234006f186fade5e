package entities

import (
	"github.com/google/uuid"
)

type HelpTopic struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Category string    `gorm:"not null;index" json:"category"` // Getting Started, Donors, Collectors, Account & Privacy, Troubleshooting
	Question string    `gorm:"not null" json:"question"`
	Answer   string    `gorm:"not null" json:"answer"`
	Views    int       `gorm:"not null;default:0" json:"views"`
	Timestamp
}
