package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/pkg/support"
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SupportHandler interface {
		Contact(c *fiber.Ctx) error
		GetHelpTopics(c *fiber.Ctx) error
		GetHelpTopic(c *fiber.Ctx) error
		Health(c *fiber.Ctx) error
	}

	// Pinger is satisfied by *sql.DB.
	Pinger interface {
		PingContext(ctx context.Context) error
	}

	supportHandler struct {
		supportService support.SupportService
		validator      *validator.Validate
		db             Pinger
	}
)

func NewSupportHandler(supportService support.SupportService, validator *validator.Validate, db Pinger) SupportHandler {
	return &supportHandler{
		supportService: supportService,
		validator:      validator,
		db:             db,
	}
}

func (h *supportHandler) Contact(c *fiber.Ctx) error {
	req := new(domain.ContactRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedContact, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.supportService.Contact(ctx, *req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedContact, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessContact)
}

func (h *supportHandler) GetHelpTopics(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	topics, err := h.supportService.GetHelpTopics(ctx, c.Query("category"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetTopics, err)
	}

	return presenters.SuccessResponse(c, topics, fiber.StatusOK, domain.MessageSuccessGetTopics)
}

func (h *supportHandler) GetHelpTopic(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	topic, err := h.supportService.GetHelpTopic(ctx, c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetTopics, err)
	}

	return presenters.SuccessResponse(c, topic, fiber.StatusOK, domain.MessageSuccessGetTopics)
}

func (h *supportHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if h.db == nil || h.db.PingContext(ctx) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "disconnected",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}
