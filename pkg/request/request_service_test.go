package request

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepository struct {
	donations map[string]*entities.Donation
	requests  map[string]*entities.PickupRequest
}

func newFakeRequestRepository() *fakeRequestRepository {
	return &fakeRequestRepository{
		donations: map[string]*entities.Donation{},
		requests:  map[string]*entities.PickupRequest{},
	}
}

func (r *fakeRequestRepository) GetDonationByID(_ context.Context, id string) (*entities.Donation, error) {
	d, ok := r.donations[id]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	return d, nil
}

func (r *fakeRequestRepository) CreateRequest(_ context.Context, request *entities.PickupRequest) error {
	request.CreatedAt = time.Now()
	r.requests[request.ID.String()] = request
	return nil
}

func (r *fakeRequestRepository) GetRequestByID(_ context.Context, id string) (*entities.PickupRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	cp := *request
	cp.Donation = r.donations[request.DonationID.String()]
	return &cp, nil
}

func (r *fakeRequestRepository) HasPendingRequest(_ context.Context, donationID, collectorID string) (bool, error) {
	for _, request := range r.requests {
		if request.DonationID.String() == donationID && request.CollectorID.String() == collectorID &&
			request.Status == domain.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepository) GetCollectorRequests(_ context.Context, collectorID string, _, _ int) ([]*entities.PickupRequest, int64, error) {
	var out []*entities.PickupRequest
	for _, request := range r.requests {
		if request.CollectorID.String() == collectorID {
			out = append(out, request)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRequestRepository) GetDonationRequests(_ context.Context, donationID string) ([]*entities.PickupRequest, error) {
	var out []*entities.PickupRequest
	for _, request := range r.requests {
		if request.DonationID.String() == donationID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepository) ApproveRequest(_ context.Context, request *entities.PickupRequest, now time.Time) (*entities.Donation, error) {
	d := r.donations[request.DonationID.String()]
	if d.Status != domain.DonationStatusOpen || !d.ExpiresAt.After(now) {
		return nil, domain.ErrDonationNotAvailable
	}
	d.Status = domain.DonationStatusAccepted
	d.AssignedCollectorID = &request.CollectorID
	d.AcceptedAt = &now
	for _, other := range r.requests {
		if other.DonationID != request.DonationID || other.Status != domain.RequestStatusPending {
			continue
		}
		if other.ID == request.ID {
			other.Status = domain.RequestStatusApproved
		} else {
			other.Status = domain.RequestStatusRejected
		}
	}
	return d, nil
}

func (r *fakeRequestRepository) RejectRequest(_ context.Context, id string) (bool, error) {
	request, ok := r.requests[id]
	if !ok || request.Status != domain.RequestStatusPending {
		return false, nil
	}
	request.Status = domain.RequestStatusRejected
	return true, nil
}

func seedOpenDonation(repo *fakeRequestRepository, donor uuid.UUID) *entities.Donation {
	d := &entities.Donation{
		ID:        uuid.New(),
		DonorID:   donor,
		Title:     "Poha",
		Status:    domain.DonationStatusOpen,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	repo.donations[d.ID.String()] = d
	return d
}

func TestCreateRequest(t *testing.T) {
	repo := newFakeRequestRepository()
	svc := NewRequestService(repo, repo)
	ctx := context.Background()
	donor := uuid.New()
	collector := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCollector}

	d := seedOpenDonation(repo, donor)
	res, err := svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: d.ID.String(), Note: " after 6pm "}, collector)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, res.Status)
	assert.Equal(t, "after 6pm", res.Note)

	_, err = svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: d.ID.String()}, collector)
	assert.ErrorIs(t, err, domain.ErrRequestAlreadyPending)

	_, err = svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: uuid.NewString()}, collector)
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)

	d.Status = domain.DonationStatusAccepted
	_, err = svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: d.ID.String()}, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCollector})
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
}

func TestApproveRequestClaimsAndRejectsOthers(t *testing.T) {
	repo := newFakeRequestRepository()
	svc := NewRequestService(repo, repo)
	ctx := context.Background()
	donor := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleDonor}
	d := seedOpenDonation(repo, uuid.MustParse(donor.UserID))

	first, err := svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: d.ID.String()}, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCollector})
	require.NoError(t, err)
	second, err := svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: d.ID.String()}, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCollector})
	require.NoError(t, err)

	_, err = svc.UpdateRequest(ctx, first.ID, domain.UpdatePickupRequest{Status: domain.RequestStatusApproved},
		domain.Actor{UserID: uuid.NewString(), Role: domain.RoleDonor})
	assert.ErrorIs(t, err, domain.ErrRequestForbidden)

	approved, err := svc.UpdateRequest(ctx, first.ID, domain.UpdatePickupRequest{Status: domain.RequestStatusApproved}, donor)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, approved.Status)
	assert.Equal(t, domain.DonationStatusAccepted, d.Status)
	assert.Equal(t, first.CollectorID, d.AssignedCollectorID.String())
	assert.Equal(t, domain.RequestStatusRejected, repo.requests[second.ID].Status)

	_, err = svc.UpdateRequest(ctx, second.ID, domain.UpdatePickupRequest{Status: domain.RequestStatusApproved}, donor)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

func TestApproveRequestOnClaimedDonationStaysPending(t *testing.T) {
	repo := newFakeRequestRepository()
	svc := NewRequestService(repo, repo)
	ctx := context.Background()
	admin := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	d := seedOpenDonation(repo, uuid.New())

	req, err := svc.CreateRequest(ctx, domain.CreatePickupRequest{DonationID: d.ID.String()}, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCollector})
	require.NoError(t, err)

	d.Status = domain.DonationStatusAccepted
	_, err = svc.UpdateRequest(ctx, req.ID, domain.UpdatePickupRequest{Status: domain.RequestStatusApproved}, admin)
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
	assert.Equal(t, domain.RequestStatusPending, repo.requests[req.ID].Status)

	rejected, err := svc.UpdateRequest(ctx, req.ID, domain.UpdatePickupRequest{Status: domain.RequestStatusRejected}, admin)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, rejected.Status)
}
