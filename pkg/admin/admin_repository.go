package admin

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	GroupCount struct {
		Key   string `gorm:"column:group_key"`
		Count int64  `gorm:"column:count"`
	}

	AdminRepository interface {
		CountUsers(ctx context.Context) (int64, error)
		CountDonations(ctx context.Context) (int64, error)
		CountMatches(ctx context.Context) (int64, error)
		CountProofs(ctx context.Context) (int64, error)
		CountFeedback(ctx context.Context) (int64, error)

		DonationsByStatus(ctx context.Context) ([]GroupCount, error)
		DonationsByPriority(ctx context.Context) ([]GroupCount, error)
		TopDonationTypes(ctx context.Context, limit int) ([]GroupCount, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) count(ctx context.Context, model any, conds ...any) (int64, error) {
	var count int64
	scope := r.db.WithContext(ctx).Model(model)
	if len(conds) > 0 {
		scope = scope.Where(conds[0], conds[1:]...)
	}
	err := scope.Count(&count).Error
	return count, err
}

func (r *adminRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &entities.User{})
}

func (r *adminRepository) CountDonations(ctx context.Context) (int64, error) {
	return r.count(ctx, &entities.Donation{})
}

// CountMatches counts donations that reached a collector.
func (r *adminRepository) CountMatches(ctx context.Context) (int64, error) {
	return r.count(ctx, &entities.Donation{}, "status IN ?",
		[]string{domain.DonationStatusAccepted, domain.DonationStatusCompleted})
}

func (r *adminRepository) CountProofs(ctx context.Context) (int64, error) {
	return r.count(ctx, &entities.Proof{})
}

func (r *adminRepository) CountFeedback(ctx context.Context) (int64, error) {
	return r.count(ctx, &entities.Feedback{})
}

func (r *adminRepository) groupDonations(ctx context.Context, column string, limit int) ([]GroupCount, error) {
	var rows []GroupCount
	scope := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select(column + " AS group_key, COUNT(*) AS count").
		Group(column).
		Order("count DESC")
	if limit > 0 {
		scope = scope.Limit(limit)
	}
	err := scope.Scan(&rows).Error
	return rows, err
}

func (r *adminRepository) DonationsByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupDonations(ctx, "status", 0)
}

func (r *adminRepository) DonationsByPriority(ctx context.Context) ([]GroupCount, error) {
	return r.groupDonations(ctx, "priority", 0)
}

func (r *adminRepository) TopDonationTypes(ctx context.Context, limit int) ([]GroupCount, error) {
	return r.groupDonations(ctx, "type", limit)
}
