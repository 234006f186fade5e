package routes

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/handlers"
	"Maitri-Dhatri-Backend/internal/middleware"
	"Maitri-Dhatri-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	DonationHandler handlers.DonationHandler
	RequestHandler  handlers.RequestHandler
	ProofHandler    handlers.ProofHandler
	FeedbackHandler handlers.FeedbackHandler
	AdminHandler    handlers.AdminHandler
	SupportHandler  handlers.SupportHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Donations()
	c.Requests()
	c.Proofs()
	c.Feedback()
	c.Collector()
	c.Admin()
	c.Support()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/health", c.SupportHandler.Health)
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.UserHandler.Logout)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations")
	authed := c.Middleware.AuthMiddleware(c.JWTService)
	donor := c.Middleware.RoleMiddleware(domain.RoleDonor, domain.RoleAdmin)
	collector := c.Middleware.RoleMiddleware(domain.RoleCollector)

	// public listing
	donations.Get("/available", c.DonationHandler.GetAvailableDonations)

	donations.Post("", authed, donor, c.DonationHandler.CreateDonation)
	donations.Get("/mine", authed, donor, c.DonationHandler.GetMyDonations)
	donations.Get("/assigned", authed, collector, c.DonationHandler.GetAssignedDonations)
	donations.Get("/:id", authed, c.DonationHandler.GetDonationByID)
	donations.Put("/:id", authed, donor, c.DonationHandler.UpdateDonation)
	donations.Delete("/:id", authed, donor, c.DonationHandler.DeleteDonation)

	donations.Patch("/:id/accept", authed, collector, c.DonationHandler.ClaimDonation)
	donations.Post("/:id/accept", authed, collector, c.DonationHandler.ClaimDonation)
	donations.Patch("/:id/decline", authed, collector, c.DonationHandler.DeclineDonation)
	donations.Post("/:id/decline", authed, collector, c.DonationHandler.DeclineDonation)

	donations.Get("/:id/requests", authed, donor, c.RequestHandler.GetDonationRequests)
}

func (c *Config) Requests() {
	requests := c.App.Group("/api/v1/requests", c.Middleware.AuthMiddleware(c.JWTService))
	requests.Post("", c.Middleware.RoleMiddleware(domain.RoleCollector), c.RequestHandler.CreateRequest)
	requests.Get("/mine", c.Middleware.RoleMiddleware(domain.RoleCollector), c.RequestHandler.GetMyRequests)
	requests.Patch("/:id", c.Middleware.RoleMiddleware(domain.RoleDonor, domain.RoleAdmin), c.RequestHandler.UpdateRequest)
}

func (c *Config) Proofs() {
	proofs := c.App.Group("/api/v1/proofs", c.Middleware.AuthMiddleware(c.JWTService))
	proofs.Post("/upload", c.Middleware.RoleMiddleware(domain.RoleCollector), c.ProofHandler.UploadProof)
	proofs.Get("/:donationId", c.ProofHandler.GetProofs)
}

func (c *Config) Feedback() {
	feedback := c.App.Group("/api/v1/feedback")
	feedback.Get("/collectors/:collectorId/ratings", c.FeedbackHandler.GetCollectorRatings)

	authed := c.Middleware.AuthMiddleware(c.JWTService)
	feedback.Post("", authed, c.Middleware.RoleMiddleware(domain.RoleDonor), c.FeedbackHandler.CreateFeedback)
	feedback.Put("/:id", authed, c.FeedbackHandler.UpdateFeedback)
	feedback.Patch("/:id", authed, c.FeedbackHandler.UpdateFeedback)
}

func (c *Config) Collector() {
	collector := c.App.Group("/api/v1/collector",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleCollector),
	)
	collector.Get("/stats", c.DonationHandler.GetCollectorStats)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleAdmin),
	)
	{
		admin.Get("/stats", c.AdminHandler.GetStats)
		admin.Get("/analytics", c.AdminHandler.GetAnalytics)
		admin.Get("/donations", c.AdminHandler.GetDonations)
		admin.Get("/users", c.AdminHandler.GetUsers)
		admin.Get("/matches", c.AdminHandler.GetMatches)
		admin.Get("/feedback", c.AdminHandler.GetFeedback)
		admin.Delete("/feedback/:id", c.AdminHandler.DeleteFeedback)
		admin.Patch("/donations/:id/status", c.AdminHandler.UpdateDonationStatus)
		admin.Post("/donations/:id/assign", c.AdminHandler.AssignDonation)
	}
}

func (c *Config) Support() {
	support := c.App.Group("/api/v1/support")
	support.Post("/contact", c.SupportHandler.Contact)
	support.Get("/topics", c.SupportHandler.GetHelpTopics)
	support.Get("/topics/:id", c.SupportHandler.GetHelpTopic)
}
