package config

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/handlers"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/internal/api/routes"
	"Maitri-Dhatri-Backend/internal/middleware"
	"Maitri-Dhatri-Backend/internal/utils"
	"Maitri-Dhatri-Backend/internal/utils/geocoding"
	"Maitri-Dhatri-Backend/internal/utils/mailing"
	"Maitri-Dhatri-Backend/internal/utils/storage"
	"Maitri-Dhatri-Backend/pkg/admin"
	"Maitri-Dhatri-Backend/pkg/donation"
	"Maitri-Dhatri-Backend/pkg/feedback"
	"Maitri-Dhatri-Backend/pkg/jwt"
	"Maitri-Dhatri-Backend/pkg/proof"
	"Maitri-Dhatri-Backend/pkg/request"
	"Maitri-Dhatri-Backend/pkg/support"
	"Maitri-Dhatri-Backend/pkg/user"
	"context"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// App bundles the HTTP server with the background work that shares its
// services.
type App struct {
	*fiber.App
	DonationService donation.DonationService
}

func errorHandler(c *fiber.Ctx, err error) error {
	return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
}

func appLocation() *time.Location {
	location, err := time.LoadLocation(utils.GetConfig("APP_TIMEZONE"))
	if err != nil {
		log.Warnf("invalid APP_TIMEZONE %q, using UTC: %v", utils.GetConfig("APP_TIMEZONE"), err)
		return time.UTC
	}
	return location
}

func NewApp(db *gorm.DB) (*App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("IsProd") != "true",
		ErrorHandler:      errorHandler,
		BodyLimit:         (domain.MaxProofPhotos + domain.MaxProofVideos) * domain.MaxProofMediaSize,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	location := appLocation()

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   location.String(),
		Output:     io.MultiWriter(os.Stdout, file),
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX"),
		Expiration: 1 * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageFailedProcessRequest, fiber.ErrTooManyRequests)
		},
	}))

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// utils
	s3 := storage.NewAwsS3()
	geocoder := geocoding.NewGeocoder()

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	requestRepository := request.NewRequestRepository(db)
	proofRepository := proof.NewProofRepository(db)
	feedbackRepository := feedback.NewFeedbackRepository(db)
	adminRepository := admin.NewAdminRepository(db)
	supportRepository := support.NewSupportRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	donationService := donation.NewDonationService(donationRepository, userRepository, s3, geocoder, location)
	requestService := request.NewRequestService(requestRepository, donationRepository)
	proofService := proof.NewProofService(proofRepository, donationRepository, s3)
	feedbackService := feedback.NewFeedbackService(feedbackRepository, donationRepository, userRepository)
	adminService := admin.NewAdminService(adminRepository)
	supportService := support.NewSupportService(supportRepository, mailing.SendMail, utils.GetConfig("SUPPORT_EMAIL"))

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := supportService.SeedHelpTopics(seedCtx); err != nil {
		log.Warnf("failed to seed help topics: %v", err)
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator, jwtService)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	requestHandler := handlers.NewRequestHandler(requestService, validator)
	proofHandler := handlers.NewProofHandler(proofService, validator)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, donationService, userService, feedbackService, validator)
	supportHandler := handlers.NewSupportHandler(supportService, validator, sqlDB)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		DonationHandler: donationHandler,
		RequestHandler:  requestHandler,
		ProofHandler:    proofHandler,
		FeedbackHandler: feedbackHandler,
		AdminHandler:    adminHandler,
		SupportHandler:  supportHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return &App{App: app, DonationService: donationService}, nil
}
