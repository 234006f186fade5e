// Command backfill recomputes rating_avg and rating_count for every collector
// from the feedback table.
package main

import (
	"Maitri-Dhatri-Backend/cmd/config"
	"Maitri-Dhatri-Backend/internal/utils"
	"Maitri-Dhatri-Backend/pkg/donation"
	"Maitri-Dhatri-Backend/pkg/feedback"
	"Maitri-Dhatri-Backend/pkg/user"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feedbackService := feedback.NewFeedbackService(
		feedback.NewFeedbackRepository(db),
		donation.NewDonationRepository(db),
		user.NewUserRepository(db),
	)

	updated, err := feedbackService.BackfillRatings(ctx)
	if err != nil {
		log.Fatalf("backfill failed: %v", err)
	}
	log.Infof("backfill complete, %d collectors updated", updated)
}
