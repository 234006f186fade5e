package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/pkg/request"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RequestHandler interface {
		CreateRequest(c *fiber.Ctx) error
		GetMyRequests(c *fiber.Ctx) error
		GetDonationRequests(c *fiber.Ctx) error
		UpdateRequest(c *fiber.Ctx) error
	}

	requestHandler struct {
		requestService request.RequestService
		validator      *validator.Validate
	}
)

func NewRequestHandler(requestService request.RequestService, validator *validator.Validate) RequestHandler {
	return &requestHandler{
		requestService: requestService,
		validator:      validator,
	}
}

func (h *requestHandler) CreateRequest(c *fiber.Ctx) error {
	req := new(domain.CreatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRequest, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.requestService.CreateRequest(ctx, *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRequest, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateRequest)
}

func (h *requestHandler) GetMyRequests(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	requests, pagination, err := h.requestService.GetMyRequests(ctx, actorFrom(c), page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"requests":   requests,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) GetDonationRequests(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	requests, err := h.requestService.GetDonationRequests(ctx, c.Params("id"), actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, requests, fiber.StatusOK, domain.MessageSuccessGetRequests)
}

func (h *requestHandler) UpdateRequest(c *fiber.Ctx) error {
	req := new(domain.UpdatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRequest, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.requestService.UpdateRequest(ctx, c.Params("id"), *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRequest, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateRequest)
}
