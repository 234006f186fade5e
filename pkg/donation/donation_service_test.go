package donation

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/pkg/user/usertest"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDonationRepository struct {
	mu        sync.Mutex
	donations map[string]*entities.Donation
	declines  []*entities.DonationDecline
}

func newFakeDonationRepository() *fakeDonationRepository {
	return &fakeDonationRepository{donations: map[string]*entities.Donation{}}
}

func (f *fakeDonationRepository) Transaction(_ context.Context, fn func(repo DonationRepository) error) error {
	f.mu.Lock()
	snapshot := make(map[string]entities.Donation, len(f.donations))
	for id, d := range f.donations {
		snapshot[id] = *d
	}
	declines := len(f.declines)
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.donations = map[string]*entities.Donation{}
		for id, d := range snapshot {
			d := d
			f.donations[id] = &d
		}
		f.declines = f.declines[:declines]
		return err
	}
	return nil
}

func (f *fakeDonationRepository) CreateDonation(_ context.Context, donation *entities.Donation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = donation.CreatedAt
	f.donations[donation.ID.String()] = donation
	return nil
}

func (f *fakeDonationRepository) get(id string) (*entities.Donation, error) {
	d, ok := f.donations[id]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDonationRepository) GetDonationByID(_ context.Context, id string) (*entities.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id)
}

func (f *fakeDonationRepository) filter(keep func(d *entities.Donation) bool) []*entities.Donation {
	var out []*entities.Donation
	for _, d := range f.donations {
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeDonationRepository) GetAvailableDonations(_ context.Context, query domain.ListDonationsQuery, now time.Time) ([]*entities.Donation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.filter(func(d *entities.Donation) bool {
		return d.Status == domain.DonationStatusOpen && d.ExpiresAt.After(now) &&
			(query.Priority == "" || d.Priority == query.Priority) &&
			(query.Type == "" || d.Type == query.Type)
	})
	if query.Sort == domain.SortExpiring {
		sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	}
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepository) GetDonorDonations(_ context.Context, donorID string, _, _ int) ([]*entities.Donation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.filter(func(d *entities.Donation) bool { return d.DonorID.String() == donorID })
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepository) GetCollectorDonations(_ context.Context, collectorID string, _, _ int) ([]*entities.Donation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.filter(func(d *entities.Donation) bool {
		return d.AssignedCollectorID != nil && d.AssignedCollectorID.String() == collectorID
	})
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepository) GetAllDonations(_ context.Context, _, _ int) ([]*entities.Donation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.filter(func(*entities.Donation) bool { return true })
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepository) GetMatchedDonations(_ context.Context, _, _ int) ([]*entities.Donation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.filter(func(d *entities.Donation) bool {
		return d.Status == domain.DonationStatusAccepted || d.Status == domain.DonationStatusCompleted
	})
	return out, int64(len(out)), nil
}

func (f *fakeDonationRepository) UpdateOpenDonation(_ context.Context, id string, updates map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok || d.Status != domain.DonationStatusOpen {
		return false, nil
	}
	for key, value := range updates {
		switch key {
		case "title":
			d.Title = value.(string)
		case "type":
			d.Type = value.(string)
		case "quantity":
			d.Quantity = value.(float64)
		case "unit":
			d.Unit = value.(string)
		case "priority":
			d.Priority = value.(string)
		case "address":
			d.Address = value.(string)
		case "latitude":
			v := value.(float64)
			d.Latitude = &v
		case "longitude":
			v := value.(float64)
			d.Longitude = &v
		}
	}
	return true, nil
}

func (f *fakeDonationRepository) DeleteOpenDonation(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok || d.Status != domain.DonationStatusOpen {
		return false, nil
	}
	delete(f.donations, id)
	return true, nil
}

func (f *fakeDonationRepository) ClaimDonation(_ context.Context, id string, collectorID uuid.UUID, pickupTime *time.Time, now time.Time) (*entities.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	if d.Status != domain.DonationStatusOpen || !d.ExpiresAt.After(now) {
		return nil, domain.ErrDonationNotAvailable
	}
	d.Status = domain.DonationStatusAccepted
	d.AssignedCollectorID = &collectorID
	d.AcceptedAt = &now
	d.PickupTime = pickupTime
	cp := *d
	return &cp, nil
}

func (f *fakeDonationRepository) ReleaseDonation(_ context.Context, id string, collectorID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok || d.Status != domain.DonationStatusAccepted || d.AssignedCollectorID == nil || *d.AssignedCollectorID != collectorID {
		return false, nil
	}
	d.Status = domain.DonationStatusOpen
	d.AssignedCollectorID = nil
	d.AcceptedAt = nil
	d.PickupTime = nil
	return true, nil
}

func (f *fakeDonationRepository) CompleteDonation(_ context.Context, id string, collectorID uuid.UUID, now time.Time) (*entities.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	if d.AssignedCollectorID == nil || *d.AssignedCollectorID != collectorID {
		return nil, domain.ErrNotAssignedCollector
	}
	if d.Status != domain.DonationStatusAccepted {
		return nil, domain.ErrDonationNotAvailable
	}
	d.Status = domain.DonationStatusCompleted
	d.CompletedAt = &now
	d.CompletedBy = &collectorID
	cp := *d
	return &cp, nil
}

func (f *fakeDonationRepository) TransitionStatus(_ context.Context, id string, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.donations[id]
	if !ok || d.Status != from {
		return false, nil
	}
	d.Status = to
	if to == domain.DonationStatusOpen {
		d.AssignedCollectorID = nil
		d.AcceptedAt = nil
		d.PickupTime = nil
	}
	return true, nil
}

func (f *fakeDonationRepository) ExpireStaleDonations(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, d := range f.donations {
		if d.Status == domain.DonationStatusOpen && !d.ExpiresAt.After(now) {
			d.Status = domain.DonationStatusExpired
			n++
		}
	}
	return n, nil
}

func (f *fakeDonationRepository) CreateDecline(_ context.Context, decline *entities.DonationDecline) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declines = append(f.declines, decline)
	return nil
}

func (f *fakeDonationRepository) CountCollectorDonations(_ context.Context, collectorID string, status string, from, to *time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, d := range f.donations {
		if d.AssignedCollectorID == nil || d.AssignedCollectorID.String() != collectorID || d.Status != status {
			continue
		}
		if from != nil && (d.CompletedAt == nil || d.CompletedAt.Before(*from)) {
			continue
		}
		if to != nil && (d.CompletedAt == nil || !d.CompletedAt.Before(*to)) {
			continue
		}
		n++
	}
	return n, nil
}

// seed stores an OPEN donation owned by donorID that expires in ttl.
func (f *fakeDonationRepository) seed(donorID uuid.UUID, ttl time.Duration) *entities.Donation {
	d := &entities.Donation{
		ID:        uuid.New(),
		DonorID:   donorID,
		Title:     "Rice and dal",
		Type:      "cooked",
		Quantity:  12,
		Unit:      "plates",
		Address:   "MG Road, Bengaluru",
		ExpiresAt: time.Now().Add(ttl),
		Status:    domain.DonationStatusOpen,
		Priority:  domain.PriorityMedium,
	}
	_ = f.CreateDonation(context.Background(), d)
	return d
}

type fakeGeocoder struct {
	address string
	err     error
}

func (g fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (string, error) {
	return g.address, g.err
}

type donationFixture struct {
	svc       *donationService
	repo      *fakeDonationRepository
	users     *usertest.Repository
	donor     *entities.User
	collector *entities.User
	admin     *entities.User
}

func newDonationFixture(t *testing.T) donationFixture {
	t.Helper()
	repo := newFakeDonationRepository()
	users := usertest.NewRepository()
	svc := NewDonationService(repo, users, nil, fakeGeocoder{address: "Indiranagar, Bengaluru"}, time.UTC).(*donationService)
	return donationFixture{
		svc:       svc,
		repo:      repo,
		users:     users,
		donor:     users.Add("donor", domain.RoleDonor),
		collector: users.Add("collector", domain.RoleCollector),
		admin:     users.Add("admin", domain.RoleAdmin),
	}
}

func actorOf(u *entities.User) domain.Actor {
	return domain.Actor{UserID: u.ID.String(), Role: u.Role}
}

func TestCreateDonation(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()
	lat, lng := 12.9716, 77.5946

	t.Run("geocodes blank address", func(t *testing.T) {
		d, err := fx.svc.CreateDonation(ctx, domain.CreateDonationRequest{
			Title: "Bread", Type: "bakery", Quantity: 10, Unit: "loaves",
			ExpiresAt: time.Now().Add(6 * time.Hour).Format(time.RFC3339),
			Latitude:  &lat, Longitude: &lng,
		}, actorOf(fx.donor))
		require.NoError(t, err)
		assert.Equal(t, "Indiranagar, Bengaluru", d.Address)
		assert.Equal(t, domain.DonationStatusOpen, d.Status)
		assert.Equal(t, domain.PriorityMedium, d.Priority)
	})

	t.Run("geocoder failure falls back to coordinates", func(t *testing.T) {
		fx.svc.geocoder = fakeGeocoder{err: errors.New("upstream down")}
		defer func() { fx.svc.geocoder = fakeGeocoder{address: "Indiranagar, Bengaluru"} }()

		d, err := fx.svc.CreateDonation(ctx, domain.CreateDonationRequest{
			Title: "Bread", Type: "bakery", Quantity: 10, Unit: "loaves",
			ExpiresAt: time.Now().Add(time.Hour).Format(time.RFC3339),
			Latitude:  &lat, Longitude: &lng,
		}, actorOf(fx.donor))
		require.NoError(t, err)
		assert.Equal(t, "12.971600, 77.594600", d.Address)
	})

	t.Run("rejects past expiry", func(t *testing.T) {
		_, err := fx.svc.CreateDonation(ctx, domain.CreateDonationRequest{
			Title: "Bread", Type: "bakery", Quantity: 1, Unit: "loaf", Address: "Somewhere",
			ExpiresAt: time.Now().Add(-time.Minute).Format(time.RFC3339),
		}, actorOf(fx.donor))
		assert.ErrorIs(t, err, domain.ErrInvalidExpiry)
	})

	t.Run("requires a location", func(t *testing.T) {
		_, err := fx.svc.CreateDonation(ctx, domain.CreateDonationRequest{
			Title: "Bread", Type: "bakery", Quantity: 1, Unit: "loaf",
			ExpiresAt: time.Now().Add(time.Hour).Format(time.RFC3339),
		}, actorOf(fx.donor))
		assert.ErrorIs(t, err, domain.ErrMissingLocation)
	})
}

func TestGetAvailableDonationsHidesExpired(t *testing.T) {
	fx := newDonationFixture(t)
	open := fx.repo.seed(fx.donor.ID, time.Hour)
	fx.repo.seed(fx.donor.ID, -time.Minute)

	donations, page, err := fx.svc.GetAvailableDonations(context.Background(), domain.ListDonationsQuery{})
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, open.ID.String(), donations[0].ID)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, domain.DefaultPageLimit, page.Limit)

	_, _, err = fx.svc.GetAvailableDonations(context.Background(), domain.ListDonationsQuery{Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClaimDonationConcurrent(t *testing.T) {
	fx := newDonationFixture(t)
	d := fx.repo.seed(fx.donor.ID, time.Hour)

	const callers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []string
		losers    int
		collector = make([]*entities.User, callers)
	)
	for i := range collector {
		collector[i] = fx.users.Add("collector", domain.RoleCollector)
	}

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(c *entities.User) {
			defer wg.Done()
			res, err := fx.svc.ClaimDonation(context.Background(), d.ID.String(), domain.ClaimDonationRequest{}, actorOf(c))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, *res.AssignedCollectorID)
				return
			}
			assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
			losers++
		}(collector[i])
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, callers-1, losers)

	stored, err := fx.repo.GetDonationByID(context.Background(), d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusAccepted, stored.Status)
	assert.Equal(t, winners[0], stored.AssignedCollectorID.String())
}

func TestClaimDonationErrors(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	_, err := fx.svc.ClaimDonation(ctx, uuid.NewString(), domain.ClaimDonationRequest{}, actorOf(fx.collector))
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)

	_, err = fx.svc.ClaimDonation(ctx, "not-a-uuid", domain.ClaimDonationRequest{}, actorOf(fx.collector))
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)

	expired := fx.repo.seed(fx.donor.ID, -time.Minute)
	_, err = fx.svc.ClaimDonation(ctx, expired.ID.String(), domain.ClaimDonationRequest{}, actorOf(fx.collector))
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
}

func TestDeclineDonation(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	t.Run("open donation stays open", func(t *testing.T) {
		d := fx.repo.seed(fx.donor.ID, time.Hour)
		res, err := fx.svc.DeclineDonation(ctx, d.ID.String(), domain.DeclineDonationRequest{Reason: " too far "}, actorOf(fx.collector))
		require.NoError(t, err)
		assert.Equal(t, domain.DonationStatusOpen, res.Status)
		last := fx.repo.declines[len(fx.repo.declines)-1]
		assert.Equal(t, "too far", last.Reason)
		assert.False(t, last.Released)
	})

	t.Run("assigned collector releases", func(t *testing.T) {
		d := fx.repo.seed(fx.donor.ID, time.Hour)
		_, err := fx.svc.ClaimDonation(ctx, d.ID.String(), domain.ClaimDonationRequest{}, actorOf(fx.collector))
		require.NoError(t, err)

		res, err := fx.svc.DeclineDonation(ctx, d.ID.String(), domain.DeclineDonationRequest{}, actorOf(fx.collector))
		require.NoError(t, err)
		assert.Equal(t, domain.DonationStatusOpen, res.Status)
		assert.Nil(t, res.AssignedCollectorID)
		assert.True(t, fx.repo.declines[len(fx.repo.declines)-1].Released)
	})

	t.Run("other collector cannot decline an accepted donation", func(t *testing.T) {
		d := fx.repo.seed(fx.donor.ID, time.Hour)
		_, err := fx.svc.ClaimDonation(ctx, d.ID.String(), domain.ClaimDonationRequest{}, actorOf(fx.collector))
		require.NoError(t, err)
		other := fx.users.Add("other", domain.RoleCollector)

		declines := len(fx.repo.declines)
		_, err = fx.svc.DeclineDonation(ctx, d.ID.String(), domain.DeclineDonationRequest{}, actorOf(other))
		assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
		assert.Len(t, fx.repo.declines, declines)
	})

	t.Run("missing donation", func(t *testing.T) {
		_, err := fx.svc.DeclineDonation(ctx, uuid.NewString(), domain.DeclineDonationRequest{}, actorOf(fx.collector))
		assert.ErrorIs(t, err, domain.ErrDonationNotFound)
	})
}

func TestUpdateAndDeleteDonation(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()
	title := "Fresh fruit"

	d := fx.repo.seed(fx.donor.ID, time.Hour)

	_, err := fx.svc.UpdateDonation(ctx, d.ID.String(), domain.UpdateDonationRequest{Title: &title}, actorOf(fx.collector))
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDonationAccess)

	res, err := fx.svc.UpdateDonation(ctx, d.ID.String(), domain.UpdateDonationRequest{Title: &title}, actorOf(fx.donor))
	require.NoError(t, err)
	assert.Equal(t, title, res.Title)

	_, err = fx.svc.ClaimDonation(ctx, d.ID.String(), domain.ClaimDonationRequest{}, actorOf(fx.collector))
	require.NoError(t, err)

	_, err = fx.svc.UpdateDonation(ctx, d.ID.String(), domain.UpdateDonationRequest{Title: &title}, actorOf(fx.donor))
	assert.ErrorIs(t, err, domain.ErrDonationNotEditable)
	assert.ErrorIs(t, fx.svc.DeleteDonation(ctx, d.ID.String(), actorOf(fx.donor)), domain.ErrDonationNotEditable)

	open := fx.repo.seed(fx.donor.ID, time.Hour)
	require.NoError(t, fx.svc.DeleteDonation(ctx, open.ID.String(), actorOf(fx.admin)))
	_, err = fx.repo.GetDonationByID(ctx, open.ID.String())
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestOverrideStatus(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()

	d := fx.repo.seed(fx.donor.ID, time.Hour)
	res, err := fx.svc.OverrideStatus(ctx, d.ID.String(), domain.AdminDonationStatusRequest{Status: domain.DonationStatusDeclined})
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusDeclined, res.Status)

	_, err = fx.svc.OverrideStatus(ctx, d.ID.String(), domain.AdminDonationStatusRequest{Status: domain.DonationStatusOpen})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	accepted := fx.repo.seed(fx.donor.ID, time.Hour)
	_, err = fx.svc.AssignDonation(ctx, accepted.ID.String(), domain.AdminAssignDonationRequest{CollectorID: fx.collector.ID.String()})
	require.NoError(t, err)
	res, err = fx.svc.OverrideStatus(ctx, accepted.ID.String(), domain.AdminDonationStatusRequest{Status: domain.DonationStatusOpen})
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusOpen, res.Status)
	assert.Nil(t, res.AssignedCollectorID)
}

func TestAssignDonationRequiresCollector(t *testing.T) {
	fx := newDonationFixture(t)
	d := fx.repo.seed(fx.donor.ID, time.Hour)

	_, err := fx.svc.AssignDonation(context.Background(), d.ID.String(), domain.AdminAssignDonationRequest{CollectorID: fx.donor.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotACollector)
}

func TestExpireStaleDonations(t *testing.T) {
	fx := newDonationFixture(t)
	stale := fx.repo.seed(fx.donor.ID, -time.Minute)
	fresh := fx.repo.seed(fx.donor.ID, time.Hour)

	n, err := fx.svc.ExpireStaleDonations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := fx.repo.GetDonationByID(context.Background(), stale.ID.String())
	assert.Equal(t, domain.DonationStatusExpired, got.Status)
	got, _ = fx.repo.GetDonationByID(context.Background(), fresh.ID.String())
	assert.Equal(t, domain.DonationStatusOpen, got.Status)
}

func TestGetMatches(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()
	fx.repo.seed(fx.donor.ID, time.Hour)
	d := fx.repo.seed(fx.donor.ID, time.Hour)
	_, err := fx.svc.ClaimDonation(ctx, d.ID.String(), domain.ClaimDonationRequest{}, actorOf(fx.collector))
	require.NoError(t, err)

	matches, page, err := fx.svc.GetMatches(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, domain.MatchStatusAssigned, matches[0].Status)
	assert.Equal(t, fx.collector.ID.String(), matches[0].CollectorID)
	assert.Equal(t, int64(1), page.Total)
}

func TestGetCollectorStats(t *testing.T) {
	fx := newDonationFixture(t)
	ctx := context.Background()
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 2024-03-10 20:00 UTC is 2024-03-11 01:30 in Kolkata.
	fx.svc.now = func() time.Time { return time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC) }
	fx.collector.RatingAvg = 4.7

	completeAt := func(at time.Time) {
		d := fx.repo.seed(fx.donor.ID, time.Hour)
		d.ExpiresAt = at.Add(time.Hour)
		_, err := fx.repo.ClaimDonation(ctx, d.ID.String(), fx.collector.ID, nil, at)
		require.NoError(t, err)
		_, err = fx.repo.CompleteDonation(ctx, d.ID.String(), fx.collector.ID, at)
		require.NoError(t, err)
	}
	completeAt(time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)) // 00:30 on the 11th in Kolkata
	completeAt(time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC))
	completeAt(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC))

	active := fx.repo.seed(fx.donor.ID, time.Hour)
	active.ExpiresAt = fx.svc.now().Add(time.Hour)
	_, err = fx.repo.ClaimDonation(ctx, active.ID.String(), fx.collector.ID, nil, fx.svc.now())
	require.NoError(t, err)

	stats, err := fx.svc.GetCollectorStats(ctx, actorOf(fx.collector), "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TodaysPickups)
	assert.Equal(t, int64(3), stats.TotalCollections)
	assert.Equal(t, int64(1), stats.ActivePickups)
	assert.Equal(t, 4.7, stats.Rating)

	stats, err = fx.svc.GetCollectorStats(ctx, actorOf(fx.collector), kolkata.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TodaysPickups)

	_, err = fx.svc.GetCollectorStats(ctx, actorOf(fx.collector), "Mars/Olympus")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
}
