package donation

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DonationRepository interface {
		Transaction(ctx context.Context, fn func(repo DonationRepository) error) error

		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetAvailableDonations(ctx context.Context, query domain.ListDonationsQuery, now time.Time) ([]*entities.Donation, int64, error)
		GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error)
		GetCollectorDonations(ctx context.Context, collectorID string, page, limit int) ([]*entities.Donation, int64, error)
		GetAllDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error)
		GetMatchedDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error)

		UpdateOpenDonation(ctx context.Context, id string, updates map[string]any) (bool, error)
		DeleteOpenDonation(ctx context.Context, id string) (bool, error)

		ClaimDonation(ctx context.Context, id string, collectorID uuid.UUID, pickupTime *time.Time, now time.Time) (*entities.Donation, error)
		ReleaseDonation(ctx context.Context, id string, collectorID uuid.UUID) (bool, error)
		CompleteDonation(ctx context.Context, id string, collectorID uuid.UUID, now time.Time) (*entities.Donation, error)
		TransitionStatus(ctx context.Context, id string, from, to string) (bool, error)
		ExpireStaleDonations(ctx context.Context, now time.Time) (int64, error)

		CreateDecline(ctx context.Context, decline *entities.DonationDecline) error
		CountCollectorDonations(ctx context.Context, collectorID string, status string, from, to *time.Time) (int64, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Transaction(ctx context.Context, fn func(repo DonationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&donationRepository{db: tx})
	})
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// GetAvailableDonations filters on expires_at at read time so rows the expiry
// sweep has not reached yet are still excluded.
func (r *donationRepository) GetAvailableDonations(ctx context.Context, query domain.ListDonationsQuery, now time.Time) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (query.Page - 1) * query.Limit

	scope := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("status = ? AND expires_at > ?", domain.DonationStatusOpen, now)
	if query.Priority != "" {
		scope = scope.Where("priority = ?", query.Priority)
	}
	if query.Type != "" {
		scope = scope.Where("type = ?", query.Type)
	}

	if err := scope.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if query.Sort == domain.SortExpiring {
		order = "expires_at ASC"
	}

	if err := scope.
		Preload("Donor").
		Order(order).
		Offset(offset).
		Limit(query.Limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}
	return donations, count, nil
}

func (r *donationRepository) GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error) {
	return r.paginate(ctx, r.db.WithContext(ctx).Where("donor_id = ?", donorID), "created_at DESC", page, limit)
}

func (r *donationRepository) GetCollectorDonations(ctx context.Context, collectorID string, page, limit int) ([]*entities.Donation, int64, error) {
	scope := r.db.WithContext(ctx).
		Preload("Donor").
		Where("assigned_collector_id = ? AND status IN ?", collectorID,
			[]string{domain.DonationStatusAccepted, domain.DonationStatusCompleted})
	return r.paginate(ctx, scope, "accepted_at DESC", page, limit)
}

func (r *donationRepository) GetAllDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error) {
	return r.paginate(ctx, r.db.WithContext(ctx).Preload("Donor"), "created_at DESC", page, limit)
}

func (r *donationRepository) GetMatchedDonations(ctx context.Context, page, limit int) ([]*entities.Donation, int64, error) {
	scope := r.db.WithContext(ctx).
		Preload("AssignedCollector").
		Where("status IN ?", []string{domain.DonationStatusAccepted, domain.DonationStatusCompleted})
	return r.paginate(ctx, scope, "accepted_at DESC", page, limit)
}

func (r *donationRepository) paginate(ctx context.Context, scope *gorm.DB, order string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	if err := scope.Session(&gorm.Session{}).Model(&entities.Donation{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := scope.
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}
	return donations, count, nil
}

func (r *donationRepository) UpdateOpenDonation(ctx context.Context, id string, updates map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", id, domain.DonationStatusOpen).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *donationRepository) DeleteOpenDonation(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, domain.DonationStatusOpen).
		Delete(&entities.Donation{})
	return res.RowsAffected > 0, res.Error
}

// ClaimDonation moves an unexpired OPEN donation to ACCEPTED in a single
// conditional UPDATE. Of N concurrent callers exactly one matches the
// predicate; the rest get ErrDonationNotAvailable.
func (r *donationRepository) ClaimDonation(ctx context.Context, id string, collectorID uuid.UUID, pickupTime *time.Time, now time.Time) (*entities.Donation, error) {
	var donation entities.Donation
	res := r.db.WithContext(ctx).
		Model(&donation).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ? AND expires_at > ?", id, domain.DonationStatusOpen, now).
		Updates(map[string]any{
			"status":                domain.DonationStatusAccepted,
			"assigned_collector_id": collectorID,
			"accepted_at":           now,
			"pickup_time":           pickupTime,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.missingOr(ctx, id, domain.ErrDonationNotAvailable)
	}
	return &donation, nil
}

func (r *donationRepository) ReleaseDonation(ctx context.Context, id string, collectorID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ? AND assigned_collector_id = ?", id, domain.DonationStatusAccepted, collectorID).
		Updates(map[string]any{
			"status":                domain.DonationStatusOpen,
			"assigned_collector_id": nil,
			"accepted_at":           nil,
			"pickup_time":           nil,
		})
	return res.RowsAffected > 0, res.Error
}

// CompleteDonation is the only path to COMPLETED and requires the caller to be
// the assigned collector of an ACCEPTED donation.
func (r *donationRepository) CompleteDonation(ctx context.Context, id string, collectorID uuid.UUID, now time.Time) (*entities.Donation, error) {
	var donation entities.Donation
	res := r.db.WithContext(ctx).
		Model(&donation).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ? AND assigned_collector_id = ?", id, domain.DonationStatusAccepted, collectorID).
		Updates(map[string]any{
			"status":       domain.DonationStatusCompleted,
			"completed_at": now,
			"completed_by": collectorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return &donation, nil
	}

	current, err := r.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.AssignedCollectorID == nil || *current.AssignedCollectorID != collectorID {
		return nil, domain.ErrNotAssignedCollector
	}
	return nil, domain.ErrDonationNotAvailable
}

func (r *donationRepository) TransitionStatus(ctx context.Context, id string, from, to string) (bool, error) {
	updates := map[string]any{"status": to}
	if to == domain.DonationStatusOpen {
		updates["assigned_collector_id"] = nil
		updates["accepted_at"] = nil
		updates["pickup_time"] = nil
	}

	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *donationRepository) ExpireStaleDonations(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("status = ? AND expires_at <= ?", domain.DonationStatusOpen, now).
		Update("status", domain.DonationStatusExpired)
	return res.RowsAffected, res.Error
}

func (r *donationRepository) CreateDecline(ctx context.Context, decline *entities.DonationDecline) error {
	return r.db.WithContext(ctx).Create(decline).Error
}

func (r *donationRepository) CountCollectorDonations(ctx context.Context, collectorID string, status string, from, to *time.Time) (int64, error) {
	var count int64
	scope := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("assigned_collector_id = ? AND status = ?", collectorID, status)
	if from != nil {
		scope = scope.Where("completed_at >= ?", *from)
	}
	if to != nil {
		scope = scope.Where("completed_at < ?", *to)
	}
	err := scope.Count(&count).Error
	return count, err
}

func (r *donationRepository) missingOr(ctx context.Context, id string, err error) error {
	var count int64
	if e := r.db.WithContext(ctx).Model(&entities.Donation{}).Where("id = ?", id).Count(&count).Error; e != nil {
		return e
	}
	if count == 0 {
		return domain.ErrDonationNotFound
	}
	return err
}
