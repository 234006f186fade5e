package handlers

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/internal/api/presenters"
	"Maitri-Dhatri-Backend/pkg/proof"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProofHandler interface {
		UploadProof(c *fiber.Ctx) error
		GetProofs(c *fiber.Ctx) error
	}

	proofHandler struct {
		proofService proof.ProofService
		validator    *validator.Validate
	}
)

func NewProofHandler(proofService proof.ProofService, validator *validator.Validate) ProofHandler {
	return &proofHandler{
		proofService: proofService,
		validator:    validator,
	}
}

func formValue(form *multipart.Form, key string) (string, bool) {
	values := form.Value[key]
	if len(values) == 0 {
		return "", false
	}
	value := strings.TrimSpace(values[0])
	return value, value != ""
}

// parseProofForm reads the multipart upload. lat and lng must be present;
// 0 is a valid coordinate so presence is checked separately from the value.
func parseProofForm(form *multipart.Form) (domain.UploadProofRequest, error) {
	var req domain.UploadProofRequest

	donationID, okDonation := formValue(form, "donation_id")
	location, okLocation := formValue(form, "location")
	rawLat, okLat := formValue(form, "lat")
	rawLng, okLng := formValue(form, "lng")
	if !okDonation || !okLocation || !okLat || !okLng || len(form.File["photos"]) == 0 {
		return req, domain.ErrProofMissingFields
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return req, domain.ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return req, domain.ErrInvalidCoordinates
	}

	videos := form.File["video"]
	if len(form.File["photos"]) > domain.MaxProofPhotos || len(videos) > domain.MaxProofVideos {
		return req, domain.ErrProofTooManyFiles
	}

	req = domain.UploadProofRequest{
		DonationID: donationID,
		Location:   location,
		Latitude:   lat,
		Longitude:  lng,
		Photos:     form.File["photos"],
	}
	if len(videos) == 1 {
		req.Video = videos[0]
	}
	return req, nil
}

func (h *proofHandler) UploadProof(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req, err := parseProofForm(form)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadProof, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadProof, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.proofService.UploadProof(ctx, req, actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadProof, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadProof)
}

func (h *proofHandler) GetProofs(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	proofs, err := h.proofService.GetProofs(ctx, c.Params("donationId"), actorFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetProofs, err)
	}

	return presenters.SuccessResponse(c, proofs, fiber.StatusOK, domain.MessageSuccessGetProofs)
}
