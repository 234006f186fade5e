package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	MaxProofPhotos    = 5
	MaxProofVideos    = 1
	MaxProofMediaSize = 50 * 1024 * 1024
)

var (
	MessageSuccessUploadProof = "proof uploaded, donation completed"
	MessageSuccessGetProofs   = "proofs retrieved successfully"
	MessageFailedUploadProof  = "failed to upload proof"
	MessageFailedGetProofs    = "failed to retrieve proofs"

	ErrProofMissingFields = errors.New("donation_id, location, lat, lng and at least one photo are required")
	ErrProofTooManyFiles  = errors.New("at most 5 photos and 1 video are allowed")
	ErrProofInvalidFile   = errors.New("invalid file type")
	ErrProofFileTooLarge  = errors.New("file exceeds 50MB")
	ErrProofAccessDenied  = errors.New("not authorized to view proofs for this donation")
)

type (
	UploadProofRequest struct {
		DonationID string  `form:"donation_id" validate:"required,uuid"`
		Location   string  `form:"location" validate:"required,max=255"`
		Latitude   float64 `form:"lat" validate:"latitude"`
		Longitude  float64 `form:"lng" validate:"longitude"`
		Photos     []*multipart.FileHeader
		Video      *multipart.FileHeader
	}

	Proof struct {
		ID          string    `json:"id"`
		DonationID  string    `json:"donation_id"`
		CollectorID string    `json:"collector_id"`
		Photos      []string  `json:"photos"`
		Video       string    `json:"video,omitempty"`
		Location    string    `json:"location"`
		Latitude    float64   `json:"latitude"`
		Longitude   float64   `json:"longitude"`
		DeliveredAt time.Time `json:"delivered_at"`
		CreatedAt   time.Time `json:"created_at"`
	}

	ProofResult struct {
		Proof    *Proof    `json:"proof"`
		Donation *Donation `json:"donation"`
	}
)
