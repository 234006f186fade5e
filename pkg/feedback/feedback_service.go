package feedback

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var feedbackWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "md_feedback_writes_total",
	Help: "Committed feedback mutations by operation.",
}, []string{"op"})

type (
	// DonationReader is the slice of the donation store feedback needs.
	DonationReader interface {
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
	}

	// CollectorLister enumerates collectors for a full rating backfill.
	CollectorLister interface {
		GetUserIDsByRole(ctx context.Context, role string) ([]string, error)
	}

	FeedbackService interface {
		CreateFeedback(ctx context.Context, req domain.CreateFeedbackRequest, actor domain.Actor) (*domain.FeedbackResult, error)
		UpdateFeedback(ctx context.Context, id string, req domain.UpdateFeedbackRequest, actor domain.Actor) (*domain.FeedbackResult, error)
		DeleteFeedback(ctx context.Context, id string) (*domain.FeedbackResult, error)
		GetCollectorRatings(ctx context.Context, collectorID string, query domain.RatingsQuery) (*domain.CollectorRatings, error)
		GetAllFeedback(ctx context.Context, page, limit int) ([]*domain.Feedback, domain.Pagination, error)
		RecomputeCollectorRating(ctx context.Context, collectorID string) (*domain.RatingSummary, error)
		BackfillRatings(ctx context.Context) (int, error)
	}

	feedbackService struct {
		feedbackRepository FeedbackRepository
		donations          DonationReader
		collectors         CollectorLister
		now                func() time.Time
	}
)

func NewFeedbackService(feedbackRepository FeedbackRepository, donations DonationReader, collectors CollectorLister) FeedbackService {
	return &feedbackService{
		feedbackRepository: feedbackRepository,
		donations:          donations,
		collectors:         collectors,
		now:                time.Now,
	}
}

func toFeedbackDomain(feedback *entities.Feedback) *domain.Feedback {
	result := &domain.Feedback{
		ID:          feedback.ID.String(),
		DonationID:  feedback.DonationID.String(),
		CollectorID: feedback.CollectorID.String(),
		ReviewerID:  feedback.ReviewerID.String(),
		Rating:      feedback.Rating,
		Comment:     feedback.Comment,
		CreatedAt:   feedback.CreatedAt,
		UpdatedAt:   feedback.UpdatedAt,
	}
	if feedback.Donation != nil {
		result.DonationTitle = feedback.Donation.Title
	}
	if feedback.Collector != nil {
		result.CollectorName = feedback.Collector.Name
	}
	if feedback.Reviewer != nil {
		result.ReviewerName = feedback.Reviewer.Name
	}
	return result
}

// recompute is the single writer of a collector's rating_avg and
// rating_count. Callers must hold the collector row lock.
func recompute(ctx context.Context, repo FeedbackRepository, collectorID string) (domain.RatingSummary, error) {
	sum, count, err := repo.AggregateCollectorRatings(ctx, collectorID)
	if err != nil {
		return domain.RatingSummary{}, err
	}

	summary := domain.RatingSummary{
		RatingAvg:   domain.RoundRating(sum, count),
		RatingCount: int(count),
	}
	if err := repo.UpdateCollectorRating(ctx, collectorID, summary.RatingAvg, summary.RatingCount); err != nil {
		return domain.RatingSummary{}, err
	}
	return summary, nil
}

// CreateFeedback checks every precondition before writing, then inserts the
// row and refreshes the collector aggregate in one transaction.
func (s *feedbackService) CreateFeedback(ctx context.Context, req domain.CreateFeedbackRequest, actor domain.Actor) (*domain.FeedbackResult, error) {
	if !domain.ValidRating(req.Rating) {
		return nil, domain.ErrRatingOutOfRange
	}

	donation, err := s.donations.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		if errors.Is(err, domain.ErrDonationNotFound) {
			return nil, domain.ErrFeedbackNotAuthorized
		}
		return nil, err
	}
	if donation.Status != domain.DonationStatusCompleted || donation.DonorID.String() != actor.UserID {
		return nil, domain.ErrFeedbackNotAuthorized
	}
	if donation.AssignedCollectorID == nil || donation.AssignedCollectorID.String() != req.CollectorID {
		return nil, domain.ErrCollectorMismatch
	}

	exists, err := s.feedbackRepository.FeedbackExists(ctx, req.DonationID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrFeedbackExists
	}

	reviewerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	feedback := &entities.Feedback{
		ID:          uuid.New(),
		DonationID:  donation.ID,
		ReviewerID:  reviewerID,
		CollectorID: *donation.AssignedCollectorID,
		Rating:      req.Rating,
		Comment:     strings.TrimSpace(req.Comment),
	}

	var summary domain.RatingSummary
	err = s.feedbackRepository.Transaction(ctx, func(repo FeedbackRepository) error {
		if _, err := repo.LockCollector(ctx, req.CollectorID); err != nil {
			return err
		}
		exists, err := repo.FeedbackExists(ctx, req.DonationID, actor.UserID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrFeedbackExists
		}
		if err := repo.CreateFeedback(ctx, feedback); err != nil {
			return err
		}
		summary, err = recompute(ctx, repo, req.CollectorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	feedbackWritesTotal.WithLabelValues("create").Inc()
	return &domain.FeedbackResult{
		Feedback: toFeedbackDomain(feedback),
		Summary:  summary,
	}, nil
}

func (s *feedbackService) getFeedback(ctx context.Context, id string) (*entities.Feedback, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFeedbackNotFound
	}
	return s.feedbackRepository.GetFeedbackByID(ctx, id)
}

func (s *feedbackService) UpdateFeedback(ctx context.Context, id string, req domain.UpdateFeedbackRequest, actor domain.Actor) (*domain.FeedbackResult, error) {
	current, err := s.getFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ReviewerID.String() != actor.UserID {
		return nil, domain.ErrFeedbackForbidden
	}
	if s.now().Sub(current.CreatedAt) > domain.FeedbackEditWindow {
		return nil, domain.ErrEditWindowExpired
	}
	if req.Rating != nil && !domain.ValidRating(*req.Rating) {
		return nil, domain.ErrRatingOutOfRange
	}

	updates := map[string]any{}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		updates["comment"] = strings.TrimSpace(*req.Comment)
	}

	collectorID := current.CollectorID.String()
	var (
		summary domain.RatingSummary
		updated *entities.Feedback
	)
	err = s.feedbackRepository.Transaction(ctx, func(repo FeedbackRepository) error {
		if _, err := repo.LockCollector(ctx, collectorID); err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := repo.UpdateFeedback(ctx, id, updates); err != nil {
				return err
			}
		}
		var err error
		if summary, err = recompute(ctx, repo, collectorID); err != nil {
			return err
		}
		updated, err = repo.GetFeedbackByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	feedbackWritesTotal.WithLabelValues("update").Inc()
	return &domain.FeedbackResult{
		Feedback: toFeedbackDomain(updated),
		Summary:  summary,
	}, nil
}

func (s *feedbackService) DeleteFeedback(ctx context.Context, id string) (*domain.FeedbackResult, error) {
	current, err := s.getFeedback(ctx, id)
	if err != nil {
		return nil, err
	}

	collectorID := current.CollectorID.String()
	var summary domain.RatingSummary
	err = s.feedbackRepository.Transaction(ctx, func(repo FeedbackRepository) error {
		if _, err := repo.LockCollector(ctx, collectorID); err != nil {
			return err
		}
		if err := repo.DeleteFeedback(ctx, id); err != nil {
			return err
		}
		summary, err = recompute(ctx, repo, collectorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	feedbackWritesTotal.WithLabelValues("delete").Inc()
	return &domain.FeedbackResult{Summary: summary}, nil
}

func (s *feedbackService) GetCollectorRatings(ctx context.Context, collectorID string, query domain.RatingsQuery) (*domain.CollectorRatings, error) {
	if _, err := uuid.Parse(collectorID); err != nil {
		return nil, domain.ErrCollectorNotFound
	}

	if query.Limit < 1 {
		query.Limit = domain.DefaultReviewLimit
	}
	if query.Limit > domain.MaxReviewLimit {
		query.Limit = domain.MaxReviewLimit
	}
	if query.Skip < 0 {
		query.Skip = 0
	}
	if query.Sort != domain.ReviewSortTop {
		query.Sort = domain.ReviewSortRecent
	}

	collector, err := s.feedbackRepository.GetCollector(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	counts, err := s.feedbackRepository.GetRatingHistogram(ctx, collectorID)
	if err != nil {
		return nil, err
	}

	rows, err := s.feedbackRepository.GetCollectorReviews(ctx, collectorID, query)
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0, len(rows))
	for _, row := range rows {
		review := domain.Review{
			ID:         row.ID.String(),
			Rating:     row.Rating,
			Comment:    row.Comment,
			CreatedAt:  row.CreatedAt,
			ReviewerID: row.ReviewerID.String(),
			DonationID: row.DonationID.String(),
		}
		if row.Reviewer != nil {
			review.ReviewerName = row.Reviewer.Name
		}
		if row.Donation != nil {
			review.DonationTitle = row.Donation.Title
		}
		reviews = append(reviews, review)
	}

	profile := domain.CollectorRatingProfile{
		ID:          collector.ID.String(),
		Name:        collector.Name,
		RatingAvg:   collector.RatingAvg,
		RatingCount: collector.RatingCount,
	}
	if badge := domain.BadgeFor(collector.RatingAvg, collector.RatingCount); badge != "" {
		profile.Badge = &badge
	}

	return &domain.CollectorRatings{
		Collector: profile,
		Histogram: domain.NewHistogram(counts),
		Reviews:   reviews,
	}, nil
}

func (s *feedbackService) GetAllFeedback(ctx context.Context, page, limit int) ([]*domain.Feedback, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	rows, count, err := s.feedbackRepository.GetAllFeedback(ctx, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	result := make([]*domain.Feedback, 0, len(rows))
	for _, row := range rows {
		result = append(result, toFeedbackDomain(row))
	}
	return result, domain.NewPagination(page, limit, count), nil
}

func (s *feedbackService) RecomputeCollectorRating(ctx context.Context, collectorID string) (*domain.RatingSummary, error) {
	if _, err := uuid.Parse(collectorID); err != nil {
		return nil, domain.ErrCollectorNotFound
	}

	var summary domain.RatingSummary
	err := s.feedbackRepository.Transaction(ctx, func(repo FeedbackRepository) error {
		if _, err := repo.LockCollector(ctx, collectorID); err != nil {
			return err
		}
		var err error
		summary, err = recompute(ctx, repo, collectorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// BackfillRatings recomputes every collector's aggregate and returns how many
// were refreshed. A failure on one collector is logged and skipped.
func (s *feedbackService) BackfillRatings(ctx context.Context) (int, error) {
	ids, err := s.collectors.GetUserIDsByRole(ctx, domain.RoleCollector)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		summary, err := s.RecomputeCollectorRating(ctx, id)
		if err != nil {
			log.Errorf("recompute rating for collector %s: %v", id, err)
			continue
		}
		log.Debugf("collector %s: avg=%.1f count=%d", id, summary.RatingAvg, summary.RatingCount)
		refreshed++
	}
	return refreshed, nil
}
