package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/pkg/feedback"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FeedbackHandler interface {
		CreateFeedback(c *fiber.Ctx) error
		UpdateFeedback(c *fiber.Ctx) error
		GetCollectorRatings(c *fiber.Ctx) error
	}

	feedbackHandler struct {
		feedbackService feedback.FeedbackService
		validator       *validator.Validate
	}
)

func NewFeedbackHandler(feedbackService feedback.FeedbackService, validator *validator.Validate) FeedbackHandler {
	return &feedbackHandler{
		feedbackService: feedbackService,
		validator:       validator,
	}
}

func (h *feedbackHandler) CreateFeedback(c *fiber.Ctx) error {
	req := new(domain.CreateFeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFeedback, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.feedbackService.CreateFeedback(ctx, *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateFeedback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFeedback)
}

func (h *feedbackHandler) UpdateFeedback(c *fiber.Ctx) error {
	req := new(domain.UpdateFeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFeedback, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.feedbackService.UpdateFeedback(ctx, c.Params("id"), *req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateFeedback, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFeedback)
}

func (h *feedbackHandler) GetCollectorRatings(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultReviewLimit)))
	if err != nil {
		limit = domain.DefaultReviewLimit
	}
	skip, err := strconv.Atoi(c.Query("skip", "0"))
	if err != nil {
		skip = 0
	}

	query := domain.RatingsQuery{
		Limit: limit,
		Skip:  skip,
		Sort:  c.Query("sort", domain.ReviewSortRecent),
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, err := h.feedbackService.GetCollectorRatings(ctx, c.Params("collectorId"), query)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRatings, err)
	}

	return presenters.SuccessResponse(c, ratings, fiber.StatusOK, domain.MessageSuccessGetRatings)
}
