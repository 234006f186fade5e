package feedback

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FeedbackRepository interface {
		Transaction(ctx context.Context, fn func(repo FeedbackRepository) error) error

		LockCollector(ctx context.Context, collectorID string) (*entities.User, error)
		GetCollector(ctx context.Context, collectorID string) (*entities.User, error)

		GetFeedbackByID(ctx context.Context, id string) (*entities.Feedback, error)
		FeedbackExists(ctx context.Context, donationID, reviewerID string) (bool, error)
		CreateFeedback(ctx context.Context, feedback *entities.Feedback) error
		UpdateFeedback(ctx context.Context, id string, updates map[string]any) error
		DeleteFeedback(ctx context.Context, id string) error

		AggregateCollectorRatings(ctx context.Context, collectorID string) (sum int64, count int64, err error)
		UpdateCollectorRating(ctx context.Context, collectorID string, avg float64, count int) error

		GetRatingHistogram(ctx context.Context, collectorID string) (map[int]int64, error)
		GetCollectorReviews(ctx context.Context, collectorID string, query domain.RatingsQuery) ([]*entities.Feedback, error)
		GetAllFeedback(ctx context.Context, page, limit int) ([]*entities.Feedback, int64, error)
	}

	feedbackRepository struct {
		db *gorm.DB
	}
)

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Transaction(ctx context.Context, fn func(repo FeedbackRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&feedbackRepository{db: tx})
	})
}

// LockCollector takes a row lock on the collector so that concurrent
// recomputations for the same collector serialize.
func (r *feedbackRepository) LockCollector(ctx context.Context, collectorID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND role = ?", collectorID, domain.RoleCollector).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectorNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *feedbackRepository) GetCollector(ctx context.Context, collectorID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", collectorID, domain.RoleCollector).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectorNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (*entities.Feedback, error) {
	var feedback entities.Feedback
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FeedbackExists(ctx context.Context, donationID, reviewerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Feedback{}).
		Where("donation_id = ? AND reviewer_id = ?", donationID, reviewerID).
		Count(&count).Error
	return count > 0, err
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, feedback *entities.Feedback) error {
	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrFeedbackExists
		}
		return err
	}
	return nil
}

func (r *feedbackRepository) UpdateFeedback(ctx context.Context, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Feedback{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

func (r *feedbackRepository) DeleteFeedback(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Feedback{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

func (r *feedbackRepository) AggregateCollectorRatings(ctx context.Context, collectorID string) (int64, int64, error) {
	var row struct {
		Total int64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Feedback{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("collector_id = ?", collectorID).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *feedbackRepository) UpdateCollectorRating(ctx context.Context, collectorID string, avg float64, count int) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", collectorID).
		Updates(map[string]any{
			"rating_avg":   avg,
			"rating_count": count,
		}).Error
}

func (r *feedbackRepository) GetRatingHistogram(ctx context.Context, collectorID string) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Feedback{}).
		Select("rating, COUNT(*) AS count").
		Where("collector_id = ?", collectorID).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

func (r *feedbackRepository) GetCollectorReviews(ctx context.Context, collectorID string, query domain.RatingsQuery) ([]*entities.Feedback, error) {
	var reviews []*entities.Feedback

	order := "created_at DESC"
	if query.Sort == domain.ReviewSortTop {
		order = "rating DESC, created_at DESC"
	}

	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Donation").
		Where("collector_id = ?", collectorID).
		Order(order).
		Offset(query.Skip).
		Limit(query.Limit).
		Find(&reviews).Error
	return reviews, err
}

func (r *feedbackRepository) GetAllFeedback(ctx context.Context, page, limit int) ([]*entities.Feedback, int64, error) {
	var feedback []*entities.Feedback
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Feedback{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Collector").
		Preload("Donation").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedback).Error; err != nil {
		return nil, 0, err
	}
	return feedback, count, nil
}
