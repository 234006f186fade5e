package domain

import (
	"errors"
	"mime/multipart"
	"slices"
	"time"
)

const (
	DonationStatusOpen      = "OPEN"
	DonationStatusAccepted  = "ACCEPTED"
	DonationStatusCompleted = "COMPLETED"
	DonationStatusDeclined  = "DECLINED"
	DonationStatusExpired   = "EXPIRED"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	MatchStatusAssigned  = "ASSIGNED"
	MatchStatusCompleted = "COMPLETED"

	SortRecent   = "recent"
	SortExpiring = "expiring"

	MaxDonationPhotoSize = 10 << 20
	DefaultPageLimit     = 20
	MaxPageLimit         = 100
)

var (
	MessageSuccessCreateDonation    = "donation created successfully"
	MessageSuccessGetDonations      = "donations retrieved successfully"
	MessageSuccessUpdateDonation    = "donation updated successfully"
	MessageSuccessDeleteDonation    = "donation deleted successfully"
	MessageSuccessClaimDonation     = "donation accepted successfully"
	MessageSuccessDeclineDonation   = "donation declined successfully"
	MessageSuccessGetCollectorStats = "collector stats retrieved successfully"
	MessageSuccessGetMatches        = "matches retrieved successfully"

	MessageFailedCreateDonation    = "failed to create donation"
	MessageFailedGetDonations      = "failed to retrieve donations"
	MessageFailedUpdateDonation    = "failed to update donation"
	MessageFailedDeleteDonation    = "failed to delete donation"
	MessageFailedClaimDonation     = "failed to accept donation"
	MessageFailedDeclineDonation   = "failed to decline donation"
	MessageFailedGetCollectorStats = "failed to retrieve collector stats"
	MessageFailedGetMatches        = "failed to retrieve matches"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrDonationNotAvailable       = errors.New("donation is no longer available")
	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrDonationNotEditable        = errors.New("donation is no longer editable")
	ErrNotAssignedCollector       = errors.New("donation is not assigned to this collector")
	ErrInvalidDonationStatus      = errors.New("invalid donation status")
	ErrInvalidTransition          = errors.New("invalid donation status transition")
	ErrInvalidExpiry              = errors.New("expires_at must be a future RFC3339 timestamp")
	ErrMissingLocation            = errors.New("address or coordinates are required")
	ErrInvalidCoordinates         = errors.New("invalid coordinates")
	ErrInvalidTimezone            = errors.New("invalid timezone")
	ErrNotACollector              = errors.New("user is not a collector")
)

// donationTransitions is the lifecycle graph. ACCEPTED -> OPEN is the release
// path taken when the assigned collector declines an accepted pickup.
var donationTransitions = map[string][]string{
	DonationStatusOpen:     {DonationStatusAccepted, DonationStatusDeclined, DonationStatusExpired},
	DonationStatusAccepted: {DonationStatusCompleted, DonationStatusOpen},
}

func CanTransition(from, to string) bool {
	return slices.Contains(donationTransitions[from], to)
}

// MatchStatusFor projects a donation status onto the match view.
func MatchStatusFor(status string) (string, bool) {
	switch status {
	case DonationStatusAccepted:
		return MatchStatusAssigned, true
	case DonationStatusCompleted:
		return MatchStatusCompleted, true
	default:
		return "", false
	}
}

type (
	CreateDonationRequest struct {
		Title     string                `json:"title" form:"title" validate:"required,max=120"`
		Type      string                `json:"type" form:"type" validate:"required,max=60"`
		Quantity  float64               `json:"quantity" form:"quantity" validate:"required,gt=0"`
		Unit      string                `json:"unit" form:"unit" validate:"required,max=30"`
		ExpiresAt string                `json:"expires_at" form:"expires_at" validate:"required"`
		Address   string                `json:"address" form:"address" validate:"omitempty,max=255"`
		Latitude  *float64              `json:"latitude" form:"latitude" validate:"omitempty,latitude"`
		Longitude *float64              `json:"longitude" form:"longitude" validate:"omitempty,longitude"`
		Priority  string                `json:"priority" form:"priority" validate:"omitempty,oneof=low medium high"`
		Photo     *multipart.FileHeader `json:"-" form:"photo"`
	}

	UpdateDonationRequest struct {
		Title     *string  `json:"title" validate:"omitempty,min=1,max=120"`
		Type      *string  `json:"type" validate:"omitempty,min=1,max=60"`
		Quantity  *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit      *string  `json:"unit" validate:"omitempty,min=1,max=30"`
		Address   *string  `json:"address" validate:"omitempty,max=255"`
		Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
		Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
		Priority  *string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	}

	ListDonationsQuery struct {
		Priority string
		Type     string
		Sort     string
		Page     int
		Limit    int
	}

	ClaimDonationRequest struct {
		PickupTime *time.Time `json:"pickup_time"`
	}

	DeclineDonationRequest struct {
		Reason string `json:"reason" validate:"omitempty,max=255"`
	}

	AdminDonationStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=OPEN DECLINED EXPIRED"`
	}

	AdminAssignDonationRequest struct {
		CollectorID string     `json:"collector_id" validate:"required,uuid"`
		PickupTime  *time.Time `json:"pickup_time"`
	}

	UserSummary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email,omitempty"`
	}

	Donation struct {
		ID                  string       `json:"id"`
		DonorID             string       `json:"donor_id"`
		Donor               *UserSummary `json:"donor,omitempty"`
		Title               string       `json:"title"`
		Type                string       `json:"type"`
		Quantity            float64      `json:"quantity"`
		Unit                string       `json:"unit"`
		PhotoURL            string       `json:"photo_url,omitempty"`
		Address             string       `json:"address"`
		Latitude            *float64     `json:"latitude,omitempty"`
		Longitude           *float64     `json:"longitude,omitempty"`
		ExpiresAt           time.Time    `json:"expires_at"`
		Status              string       `json:"status"`
		Priority            string       `json:"priority"`
		AssignedCollectorID *string      `json:"assigned_collector_id,omitempty"`
		PickupTime          *time.Time   `json:"pickup_time,omitempty"`
		AcceptedAt          *time.Time   `json:"accepted_at,omitempty"`
		CompletedAt         *time.Time   `json:"completed_at,omitempty"`
		CompletedBy         *string      `json:"completed_by,omitempty"`
		CreatedAt           time.Time    `json:"created_at"`
		UpdatedAt           time.Time    `json:"updated_at"`
	}

	CollectorStats struct {
		TodaysPickups    int64   `json:"todays_pickups"`
		TotalCollections int64   `json:"total_collections"`
		Rating           float64 `json:"rating"`
		ActivePickups    int64   `json:"active_pickups"`
	}

	Match struct {
		DonationID    string     `json:"donation_id"`
		DonationTitle string     `json:"donation_title"`
		CollectorID   string     `json:"collector_id"`
		CollectorName string     `json:"collector_name,omitempty"`
		PickupTime    *time.Time `json:"pickup_time,omitempty"`
		AcceptedAt    *time.Time `json:"accepted_at,omitempty"`
		CompletedAt   *time.Time `json:"completed_at,omitempty"`
		Status        string     `json:"status"`
	}
)
