package proof

import (
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/pkg/donation"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	ProofRepository interface {
		CreateProofAndComplete(ctx context.Context, proof *entities.Proof, now time.Time) (*entities.Donation, error)
		GetProofsByDonationID(ctx context.Context, donationID string) ([]*entities.Proof, error)
	}

	proofRepository struct {
		db *gorm.DB
	}
)

func NewProofRepository(db *gorm.DB) ProofRepository {
	return &proofRepository{db: db}
}

// CreateProofAndComplete completes the donation and stores its proof in one
// transaction. The completion is the donation store's conditional update, so
// only the assigned collector of an ACCEPTED donation gets through.
func (r *proofRepository) CreateProofAndComplete(ctx context.Context, proof *entities.Proof, now time.Time) (*entities.Donation, error) {
	var completed *entities.Donation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := donation.NewDonationRepository(tx).CompleteDonation(ctx, proof.DonationID.String(), proof.CollectorID, now)
		if err != nil {
			return err
		}
		if err := tx.Create(proof).Error; err != nil {
			return err
		}
		completed = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (r *proofRepository) GetProofsByDonationID(ctx context.Context, donationID string) ([]*entities.Proof, error) {
	var proofs []*entities.Proof
	err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		Order("created_at DESC").
		Find(&proofs).Error
	return proofs, err
}
