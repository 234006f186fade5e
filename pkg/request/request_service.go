package request

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/pkg/donation"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	DonationReader interface {
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
	}

	RequestService interface {
		CreateRequest(ctx context.Context, req domain.CreatePickupRequest, actor domain.Actor) (*domain.PickupRequest, error)
		GetMyRequests(ctx context.Context, actor domain.Actor, page, limit int) ([]*domain.PickupRequest, domain.Pagination, error)
		GetDonationRequests(ctx context.Context, donationID string, actor domain.Actor) ([]*domain.PickupRequest, error)
		UpdateRequest(ctx context.Context, id string, req domain.UpdatePickupRequest, actor domain.Actor) (*domain.PickupRequest, error)
	}

	requestService struct {
		requestRepository RequestRepository
		donations         DonationReader
		now               func() time.Time
	}
)

func NewRequestService(requestRepository RequestRepository, donations DonationReader) RequestService {
	return &requestService{
		requestRepository: requestRepository,
		donations:         donations,
		now:               time.Now,
	}
}

func toRequestDomain(request *entities.PickupRequest) *domain.PickupRequest {
	result := &domain.PickupRequest{
		ID:          request.ID.String(),
		DonationID:  request.DonationID.String(),
		CollectorID: request.CollectorID.String(),
		Note:        request.Note,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}
	if request.Donation != nil {
		result.Donation = donation.ToDonationDomain(request.Donation, "")
	}
	return result
}

func (s *requestService) CreateRequest(ctx context.Context, req domain.CreatePickupRequest, actor domain.Actor) (*domain.PickupRequest, error) {
	collectorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(req.DonationID); err != nil {
		return nil, domain.ErrDonationNotFound
	}

	current, err := s.donations.GetDonationByID(ctx, req.DonationID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.DonationStatusOpen || !current.ExpiresAt.After(s.now()) {
		return nil, domain.ErrDonationNotAvailable
	}

	pending, err := s.requestRepository.HasPendingRequest(ctx, req.DonationID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrRequestAlreadyPending
	}

	request := &entities.PickupRequest{
		ID:          uuid.New(),
		DonationID:  current.ID,
		CollectorID: collectorID,
		Note:        strings.TrimSpace(req.Note),
		Status:      domain.RequestStatusPending,
	}
	if err := s.requestRepository.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return toRequestDomain(request), nil
}

func (s *requestService) GetMyRequests(ctx context.Context, actor domain.Actor, page, limit int) ([]*domain.PickupRequest, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	requests, count, err := s.requestRepository.GetCollectorRequests(ctx, actor.UserID, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	result := make([]*domain.PickupRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, toRequestDomain(request))
	}
	return result, domain.NewPagination(page, limit, count), nil
}

func (s *requestService) GetDonationRequests(ctx context.Context, donationID string, actor domain.Actor) ([]*domain.PickupRequest, error) {
	if _, err := uuid.Parse(donationID); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	current, err := s.donations.GetDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if current.DonorID.String() != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrRequestForbidden
	}

	requests, err := s.requestRepository.GetDonationRequests(ctx, donationID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.PickupRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, toRequestDomain(request))
	}
	return result, nil
}

// UpdateRequest lets the donation's donor (or an admin) approve or reject a
// pending request. Approval claims the donation for the requester.
func (s *requestService) UpdateRequest(ctx context.Context, id string, req domain.UpdatePickupRequest, actor domain.Actor) (*domain.PickupRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrRequestNotFound
	}
	request, err := s.requestRepository.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Donation == nil {
		return nil, domain.ErrDonationNotFound
	}
	if request.Donation.DonorID.String() != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrRequestForbidden
	}
	if request.Status != domain.RequestStatusPending {
		return nil, domain.ErrRequestNotPending
	}

	switch req.Status {
	case domain.RequestStatusApproved:
		claimed, err := s.requestRepository.ApproveRequest(ctx, request, s.now())
		if err != nil {
			return nil, err
		}
		request.Donation = claimed
	case domain.RequestStatusRejected:
		ok, err := s.requestRepository.RejectRequest(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrRequestNotPending
		}
	default:
		return nil, domain.ErrValidation
	}

	request.Status = req.Status
	return toRequestDomain(request), nil
}
