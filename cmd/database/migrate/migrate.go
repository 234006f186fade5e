package migration

import (
	entities2 "Maitri-Dhatri-Backend/entities"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities2.User{}},
		{"donation", &entities2.Donation{}},
		{"donation decline", &entities2.DonationDecline{}},
		{"pickup request", &entities2.PickupRequest{}},
		{"proof", &entities2.Proof{}},
		{"feedback", &entities2.Feedback{}},
		{"help topic", &entities2.HelpTopic{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}
