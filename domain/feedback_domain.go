package domain

import (
	"errors"
	"math"
	"time"
)

const (
	FeedbackEditWindow = 24 * time.Hour

	MinRating = 1
	MaxRating = 5

	BadgeTrusted  = "Trusted"
	BadgeReliable = "Reliable"
	BadgeRising   = "Rising"

	ReviewSortRecent = "recent"
	ReviewSortTop    = "top"

	DefaultReviewLimit = 10
	MaxReviewLimit     = 50
)

var (
	MessageSuccessCreateFeedback   = "feedback submitted successfully"
	MessageSuccessUpdateFeedback   = "feedback updated successfully"
	MessageSuccessDeleteFeedback   = "feedback deleted successfully"
	MessageSuccessGetRatings       = "collector ratings retrieved successfully"
	MessageSuccessGetFeedback      = "feedback retrieved successfully"
	MessageFailedCreateFeedback    = "failed to submit feedback"
	MessageFailedUpdateFeedback    = "failed to update feedback"
	MessageFailedDeleteFeedback    = "failed to delete feedback"
	MessageFailedGetRatings        = "failed to retrieve collector ratings"
	MessageFailedGetFeedback       = "failed to retrieve feedback"
	MessageFailedRecomputeFeedback = "failed to recompute collector rating"

	ErrFeedbackNotAuthorized = errors.New("invalid donation or not authorized")
	ErrCollectorMismatch     = errors.New("collector mismatch")
	ErrRatingOutOfRange      = errors.New("rating must be between 1 and 5")
	ErrFeedbackExists        = errors.New("feedback already exists for this donation")
	ErrFeedbackNotFound      = errors.New("feedback not found")
	ErrFeedbackForbidden     = errors.New("not authorized to edit this feedback")
	ErrEditWindowExpired     = errors.New("edit window expired")
	ErrCollectorNotFound     = errors.New("collector not found")
)

type (
	CreateFeedbackRequest struct {
		DonationID  string `json:"donation_id" validate:"required,uuid"`
		CollectorID string `json:"collector_id" validate:"required,uuid"`
		Rating      int    `json:"rating"`
		Comment     string `json:"comment" validate:"max=400"`
	}

	UpdateFeedbackRequest struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment" validate:"omitempty,max=400"`
	}

	RatingsQuery struct {
		Limit int
		Skip  int
		Sort  string
	}

	RatingSummary struct {
		RatingAvg   float64 `json:"rating_avg"`
		RatingCount int     `json:"rating_count"`
	}

	Feedback struct {
		ID            string    `json:"id"`
		DonationID    string    `json:"donation_id"`
		DonationTitle string    `json:"donation_title,omitempty"`
		CollectorID   string    `json:"collector_id"`
		CollectorName string    `json:"collector_name,omitempty"`
		ReviewerID    string    `json:"reviewer_id"`
		ReviewerName  string    `json:"reviewer_name,omitempty"`
		Rating        int       `json:"rating"`
		Comment       string    `json:"comment,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	FeedbackResult struct {
		Feedback *Feedback     `json:"feedback,omitempty"`
		Summary  RatingSummary `json:"summary"`
	}

	CollectorRatingProfile struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		RatingAvg   float64 `json:"rating_avg"`
		RatingCount int     `json:"rating_count"`
		Badge       *string `json:"badge"`
	}

	Review struct {
		ID            string    `json:"id"`
		Rating        int       `json:"rating"`
		Comment       string    `json:"comment,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
		ReviewerID    string    `json:"reviewer_id"`
		ReviewerName  string    `json:"reviewer_name"`
		DonationID    string    `json:"donation_id"`
		DonationTitle string    `json:"donation_title"`
	}

	CollectorRatings struct {
		Collector CollectorRatingProfile `json:"collector"`
		Histogram map[int]int64          `json:"histogram"`
		Reviews   []Review               `json:"reviews"`
	}
)

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// RoundRating returns sum/count rounded half-up to one decimal place, or 0
// when there are no ratings.
func RoundRating(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Floor(float64(sum*10)/float64(count)+0.5) / 10
}

// BadgeFor derives the reputation tier; the first matching tier wins.
func BadgeFor(avg float64, count int) string {
	switch {
	case avg >= 4.8 && count >= 50:
		return BadgeTrusted
	case avg >= 4.5 && count >= 20:
		return BadgeReliable
	case count >= 5:
		return BadgeRising
	default:
		return ""
	}
}

// NewHistogram zero-fills every star bucket and copies the given counts.
func NewHistogram(counts map[int]int64) map[int]int64 {
	hist := make(map[int]int64, MaxRating)
	for star := MinRating; star <= MaxRating; star++ {
		hist[star] = counts[star]
	}
	return hist
}
