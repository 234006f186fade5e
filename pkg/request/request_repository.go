package request

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/pkg/donation"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type (
	RequestRepository interface {
		CreateRequest(ctx context.Context, request *entities.PickupRequest) error
		GetRequestByID(ctx context.Context, id string) (*entities.PickupRequest, error)
		HasPendingRequest(ctx context.Context, donationID, collectorID string) (bool, error)
		GetCollectorRequests(ctx context.Context, collectorID string, page, limit int) ([]*entities.PickupRequest, int64, error)
		GetDonationRequests(ctx context.Context, donationID string) ([]*entities.PickupRequest, error)
		ApproveRequest(ctx context.Context, request *entities.PickupRequest, now time.Time) (*entities.Donation, error)
		RejectRequest(ctx context.Context, id string) (bool, error)
	}

	requestRepository struct {
		db *gorm.DB
	}
)

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreateRequest(ctx context.Context, request *entities.PickupRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetRequestByID(ctx context.Context, id string) (*entities.PickupRequest, error) {
	var request entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) HasPendingRequest(ctx context.Context, donationID, collectorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("donation_id = ? AND collector_id = ? AND status = ?", donationID, collectorID, domain.RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *requestRepository) GetCollectorRequests(ctx context.Context, collectorID string, page, limit int) ([]*entities.PickupRequest, int64, error) {
	var requests []*entities.PickupRequest
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("collector_id = ?", collectorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Donation").
		Where("collector_id = ?", collectorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, count, nil
}

func (r *requestRepository) GetDonationRequests(ctx context.Context, donationID string) ([]*entities.PickupRequest, error) {
	var requests []*entities.PickupRequest
	err := r.db.WithContext(ctx).
		Preload("Collector").
		Where("donation_id = ?", donationID).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

// ApproveRequest claims the donation for the requesting collector, marks the
// request APPROVED and rejects every other pending request for the donation.
// A failed claim rolls everything back and leaves the request PENDING.
func (r *requestRepository) ApproveRequest(ctx context.Context, request *entities.PickupRequest, now time.Time) (*entities.Donation, error) {
	var claimed *entities.Donation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := donation.NewDonationRepository(tx).ClaimDonation(ctx, request.DonationID.String(), request.CollectorID, nil, now)
		if err != nil {
			return err
		}

		res := tx.Model(&entities.PickupRequest{}).
			Where("id = ? AND status = ?", request.ID, domain.RequestStatusPending).
			Update("status", domain.RequestStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRequestNotPending
		}

		if err := tx.Model(&entities.PickupRequest{}).
			Where("donation_id = ? AND id <> ? AND status = ?", request.DonationID, request.ID, domain.RequestStatusPending).
			Update("status", domain.RequestStatusRejected).Error; err != nil {
			return err
		}

		claimed = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *requestRepository) RejectRequest(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("id = ? AND status = ?", id, domain.RequestStatusPending).
		Update("status", domain.RequestStatusRejected)
	return res.RowsAffected > 0, res.Error
}
