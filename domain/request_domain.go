package domain

import (
	"errors"
	"time"
)

const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

var (
	MessageSuccessCreateRequest = "pickup request created successfully"
	MessageSuccessGetRequests   = "pickup requests retrieved successfully"
	MessageSuccessUpdateRequest = "pickup request updated successfully"
	MessageFailedCreateRequest  = "failed to create pickup request"
	MessageFailedGetRequests    = "failed to retrieve pickup requests"
	MessageFailedUpdateRequest  = "failed to update pickup request"

	ErrRequestNotFound       = errors.New("pickup request not found")
	ErrRequestAlreadyPending = errors.New("a pending request already exists for this donation")
	ErrRequestNotPending     = errors.New("pickup request is no longer pending")
	ErrRequestForbidden      = errors.New("not authorized to update this pickup request")
)

type (
	CreatePickupRequest struct {
		DonationID string `json:"donation_id" validate:"required,uuid"`
		Note       string `json:"note" validate:"omitempty,max=400"`
	}

	UpdatePickupRequest struct {
		Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	}

	PickupRequest struct {
		ID          string    `json:"id"`
		DonationID  string    `json:"donation_id"`
		Donation    *Donation `json:"donation,omitempty"`
		CollectorID string    `json:"collector_id"`
		Note        string    `json:"note,omitempty"`
		Status      string    `json:"status"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}
)
