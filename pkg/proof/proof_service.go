package proof

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/internal/utils/storage"
	"Maitri-Dhatri-Backend/pkg/donation"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	DonationReader interface {
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
	}

	ProofService interface {
		UploadProof(ctx context.Context, req domain.UploadProofRequest, actor domain.Actor) (*domain.ProofResult, error)
		GetProofs(ctx context.Context, donationID string, actor domain.Actor) ([]*domain.Proof, error)
	}

	proofService struct {
		proofRepository ProofRepository
		donations       DonationReader
		s3              storage.AwsS3
		now             func() time.Time
	}
)

func NewProofService(proofRepository ProofRepository, donations DonationReader, s3 storage.AwsS3) ProofService {
	return &proofService{
		proofRepository: proofRepository,
		donations:       donations,
		s3:              s3,
		now:             time.Now,
	}
}

func checkMedia(file *multipart.FileHeader, allowed ...string) error {
	if !storage.ContentTypeAllowed(file.Header.Get("Content-Type"), allowed...) {
		return domain.ErrProofInvalidFile
	}
	if file.Size > domain.MaxProofMediaSize {
		return domain.ErrProofFileTooLarge
	}
	return nil
}

func validateUpload(req domain.UploadProofRequest) error {
	if req.DonationID == "" || strings.TrimSpace(req.Location) == "" || len(req.Photos) == 0 {
		return domain.ErrProofMissingFields
	}
	if len(req.Photos) > domain.MaxProofPhotos {
		return domain.ErrProofTooManyFiles
	}
	for _, photo := range req.Photos {
		if err := checkMedia(photo, storage.AllowImage...); err != nil {
			return err
		}
	}
	if req.Video != nil {
		if err := checkMedia(req.Video, storage.AllowVideo...); err != nil {
			return err
		}
	}
	return nil
}

// UploadProof stores the media, then completes the donation and records the
// proof atomically. Uploaded objects are removed if the database step fails.
func (s *proofService) UploadProof(ctx context.Context, req domain.UploadProofRequest, actor domain.Actor) (*domain.ProofResult, error) {
	if err := validateUpload(req); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(req.DonationID); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	collectorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// Fail fast before any upload; the conditional update decides for real.
	current, err := s.donations.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		return nil, err
	}
	if current.AssignedCollectorID == nil || *current.AssignedCollectorID != collectorID {
		return nil, domain.ErrNotAssignedCollector
	}
	if current.Status != domain.DonationStatusAccepted {
		return nil, domain.ErrDonationNotAvailable
	}

	proofID := uuid.New()
	folder := fmt.Sprintf("proofs/%s", req.DonationID)
	var uploaded []string

	for i, photo := range req.Photos {
		key, err := s.s3.UploadFile(ctx, fmt.Sprintf("%s-photo-%d", proofID, i+1), photo, folder, domain.MaxProofMediaSize, storage.AllowImage...)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, mapStorageError(err)
		}
		uploaded = append(uploaded, key)
	}
	photoKeys := append([]string(nil), uploaded...)

	var videoKey string
	if req.Video != nil {
		videoKey, err = s.s3.UploadFile(ctx, fmt.Sprintf("%s-video", proofID), req.Video, folder, domain.MaxProofMediaSize, storage.AllowVideo...)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, mapStorageError(err)
		}
		uploaded = append(uploaded, videoKey)
	}

	now := s.now()
	proof := &entities.Proof{
		ID:          proofID,
		DonationID:  current.ID,
		CollectorID: collectorID,
		PhotoKeys:   photoKeys,
		VideoKey:    videoKey,
		Location:    strings.TrimSpace(req.Location),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		DeliveredAt: now,
	}

	completed, err := s.proofRepository.CreateProofAndComplete(ctx, proof, now)
	if err != nil {
		s.cleanup(ctx, uploaded)
		return nil, err
	}
	log.Infof("donation %s completed by collector %s", completed.ID, collectorID)

	return &domain.ProofResult{
		Proof:    s.toDomain(ctx, proof),
		Donation: donation.ToDonationDomain(completed, s.s3.GetPublicLinkKey(ctx, completed.PhotoKey)),
	}, nil
}

func (s *proofService) GetProofs(ctx context.Context, donationID string, actor domain.Actor) ([]*domain.Proof, error) {
	if _, err := uuid.Parse(donationID); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	current, err := s.donations.GetDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	allowed := actor.IsAdmin() ||
		current.DonorID.String() == actor.UserID ||
		(current.AssignedCollectorID != nil && current.AssignedCollectorID.String() == actor.UserID)
	if !allowed {
		return nil, domain.ErrProofAccessDenied
	}

	proofs, err := s.proofRepository.GetProofsByDonationID(ctx, donationID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Proof, 0, len(proofs))
	for _, proof := range proofs {
		result = append(result, s.toDomain(ctx, proof))
	}
	return result, nil
}

func (s *proofService) toDomain(ctx context.Context, proof *entities.Proof) *domain.Proof {
	photos := make([]string, 0, len(proof.PhotoKeys))
	for _, key := range proof.PhotoKeys {
		photos = append(photos, s.s3.GetPublicLinkKey(ctx, key))
	}
	return &domain.Proof{
		ID:          proof.ID.String(),
		DonationID:  proof.DonationID.String(),
		CollectorID: proof.CollectorID.String(),
		Photos:      photos,
		Video:       s.s3.GetPublicLinkKey(ctx, proof.VideoKey),
		Location:    proof.Location,
		Latitude:    proof.Latitude,
		Longitude:   proof.Longitude,
		DeliveredAt: proof.DeliveredAt,
		CreatedAt:   proof.CreatedAt,
	}
}

func (s *proofService) cleanup(ctx context.Context, keys []string) {
	// The request context may already be done; cleanup still has to run.
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warnf("delete orphaned proof object %s: %v", key, err)
		}
	}
}

func mapStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTypeNotAllowed):
		return domain.ErrProofInvalidFile
	case errors.Is(err, storage.ErrFileTooLarge):
		return domain.ErrProofFileTooLarge
	default:
		return err
	}
}
