package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/pkg/admin"
	"Maitri-Dhatri-Backend/pkg/donation"
	"Maitri-Dhatri-Backend/pkg/feedback"
	"Maitri-Dhatri-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetStats(c *fiber.Ctx) error
		GetAnalytics(c *fiber.Ctx) error
		GetDonations(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		GetMatches(c *fiber.Ctx) error
		GetFeedback(c *fiber.Ctx) error
		DeleteFeedback(c *fiber.Ctx) error
		UpdateDonationStatus(c *fiber.Ctx) error
		AssignDonation(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService    admin.AdminService
		donationService donation.DonationService
		userService     user.UserService
		feedbackService feedback.FeedbackService
		validator       *validator.Validate
	}
)

func NewAdminHandler(
	adminService admin.AdminService,
	donationService donation.DonationService,
	userService user.UserService,
	feedbackService feedback.FeedbackService,
	validator *validator.Validate,
) AdminHandler {
	return &adminHandler{
		adminService:    adminService,
		donationService: donationService,
		userService:     userService,
		feedbackService: feedbackService,
		validator:       validator,
	}
}

func (h *adminHandler) GetStats(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.adminService.GetStats(ctx)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetAdminStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetAdminStats)
}

func (h *adminHandler) GetAnalytics(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	analytics, err := h.adminService.GetAnalytics(ctx)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetAdminAnalytics, err)
	}

	return presenters.SuccessResponse(c, analytics, fiber.StatusOK, domain.MessageSuccessGetAdminAnalytics)
}

func (h *adminHandler) GetDonations(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	donations, pagination, err := h.donationService.GetAllDonations(ctx, page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations":  donations,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	users, count, err := h.userService.GetUsers(ctx, page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetAdminUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"users":      users,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetAdminUsers)
}

func (h *adminHandler) GetMatches(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	matches, pagination, err := h.donationService.GetMatches(ctx, page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetMatches, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"matches":    matches,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetMatches)
}

func (h *adminHandler) GetFeedback(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	items, pagination, err := h.feedbackService.GetAllFeedback(ctx, page, limit)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFeedback, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"feedback":   items,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetFeedback)
}

func (h *adminHandler) DeleteFeedback(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.feedbackService.DeleteFeedback(ctx, c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteFeedback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteFeedback)
}

func (h *adminHandler) UpdateDonationStatus(c *fiber.Ctx) error {
	req := new(domain.AdminDonationStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	updated, err := h.donationService.OverrideStatus(ctx, c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *adminHandler) AssignDonation(c *fiber.Ctx) error {
	req := new(domain.AdminAssignDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedClaimDonation, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	assigned, err := h.donationService.AssignDonation(ctx, c.Params("id"), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedClaimDonation, err)
	}

	return presenters.SuccessResponse(c, assigned, fiber.StatusOK, domain.MessageSuccessClaimDonation)
}
