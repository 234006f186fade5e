package presenters

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/utils/storage"
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

var errorStatus = []struct {
	err    error
	status int
}{
	// 400
	{domain.ErrValidation, fiber.StatusBadRequest},
	{domain.ErrParseUUID, fiber.StatusBadRequest},
	{domain.ErrRatingOutOfRange, fiber.StatusBadRequest},
	{domain.ErrDonationNotAvailable, fiber.StatusBadRequest},
	{domain.ErrInvalidDonationStatus, fiber.StatusBadRequest},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest},
	{domain.ErrInvalidExpiry, fiber.StatusBadRequest},
	{domain.ErrInvalidCoordinates, fiber.StatusBadRequest},
	{domain.ErrInvalidTimezone, fiber.StatusBadRequest},
	{domain.ErrMissingLocation, fiber.StatusBadRequest},
	{domain.ErrNotACollector, fiber.StatusBadRequest},
	{domain.ErrProofMissingFields, fiber.StatusBadRequest},
	{domain.ErrProofTooManyFiles, fiber.StatusBadRequest},
	{domain.ErrProofInvalidFile, fiber.StatusBadRequest},
	{domain.ErrProofFileTooLarge, fiber.StatusBadRequest},
	{domain.ErrRequestNotPending, fiber.StatusBadRequest},
	{storage.ErrFileTypeNotAllowed, fiber.StatusBadRequest},
	{storage.ErrFileTooLarge, fiber.StatusBadRequest},

	// 401
	{domain.ErrTokenNotFound, fiber.StatusUnauthorized},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},

	// 403
	{domain.ErrUserNotAllowed, fiber.StatusForbidden},
	{domain.ErrUnauthorizedDonationAccess, fiber.StatusForbidden},
	{domain.ErrDonationNotEditable, fiber.StatusForbidden},
	{domain.ErrNotAssignedCollector, fiber.StatusForbidden},
	{domain.ErrFeedbackNotAuthorized, fiber.StatusForbidden},
	{domain.ErrCollectorMismatch, fiber.StatusForbidden},
	{domain.ErrFeedbackForbidden, fiber.StatusForbidden},
	{domain.ErrEditWindowExpired, fiber.StatusForbidden},
	{domain.ErrProofAccessDenied, fiber.StatusForbidden},
	{domain.ErrRequestForbidden, fiber.StatusForbidden},

	// 404
	{domain.ErrDonationNotFound, fiber.StatusNotFound},
	{domain.ErrFeedbackNotFound, fiber.StatusNotFound},
	{domain.ErrCollectorNotFound, fiber.StatusNotFound},
	{domain.ErrUserNotFound, fiber.StatusNotFound},
	{domain.ErrRequestNotFound, fiber.StatusNotFound},
	{domain.ErrHelpTopicNotFound, fiber.StatusNotFound},

	// 409
	{domain.ErrFeedbackExists, fiber.StatusConflict},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict},
	{domain.ErrRequestAlreadyPending, fiber.StatusConflict},
}

// StatusFor returns the HTTP status for err, or 500 when err is not a known
// domain error.
func StatusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fiber.StatusBadRequest
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// HandleError writes the error envelope for err. Unknown errors are logged and
// reported to the client as a generic internal error.
func HandleError(c *fiber.Ctx, message string, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return ErrorResponse(c, status, message, errors.New(domain.MessageInternalError))
	}
	return ErrorResponse(c, status, message, err)
}
