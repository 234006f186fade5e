package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetAvailableDonations(c *fiber.Ctx) error
		GetMyDonations(c *fiber.Ctx) error
		GetAssignedDonations(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		UpdateDonation(c *fiber.Ctx) error
		DeleteDonation(c *fiber.Ctx) error
		ClaimDonation(c *fiber.Ctx) error
		DeclineDonation(c *fiber.Ctx) error
		GetCollectorStats(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	req := new(domain.CreateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// photo is optional and only present on multipart requests
	req.Photo, _ = c.FormFile("photo")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	created, err := h.donationService.CreateDonation(ctx, *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetAvailableDonations(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	query := domain.ListDonationsQuery{
		Priority: c.Query("priority", c.Query("urgency")),
		Type:     c.Query("type"),
		Sort:     c.Query("sort", domain.SortRecent),
		Page:     page,
		Limit:    limit,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	donations, pagination, err := h.donationService.GetAvailableDonations(ctx, query)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetMyDonations(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	donations, pagination, err := h.donationService.GetDonorDonations(ctx, actorFrom(c), page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetAssignedDonations(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	donations, pagination, err := h.donationService.GetCollectorDonations(ctx, actorFrom(c), page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	found, err := h.donationService.GetDonationByID(ctx, c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, found, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) UpdateDonation(c *fiber.Ctx) error {
	req := new(domain.UpdateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.donationService.UpdateDonation(ctx, c.Params("id"), *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) DeleteDonation(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.donationService.DeleteDonation(ctx, c.Params("id"), actorFrom(c)); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}

func (h *donationHandler) ClaimDonation(c *fiber.Ctx) error {
	req := new(domain.ClaimDonationRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	claimed, err := h.donationService.ClaimDonation(ctx, c.Params("id"), *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedClaimDonation, err)
	}

	return presenters.SuccessResponse(c, claimed, fiber.StatusOK, domain.MessageSuccessClaimDonation)
}

func (h *donationHandler) DeclineDonation(c *fiber.Ctx) error {
	req := new(domain.DeclineDonationRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeclineDonation, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	declined, err := h.donationService.DeclineDonation(ctx, c.Params("id"), *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeclineDonation, err)
	}

	return presenters.SuccessResponse(c, declined, fiber.StatusOK, domain.MessageSuccessDeclineDonation)
}

func (h *donationHandler) GetCollectorStats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.donationService.GetCollectorStats(ctx, actorFrom(c), c.Query("tz"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetCollectorStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetCollectorStats)
}
