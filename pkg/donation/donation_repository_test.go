package donation

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/internal/testdb"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, role string) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:           uuid.New(),
		Name:         role,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createDonation(t *testing.T, repo DonationRepository, donorID uuid.UUID, ttl time.Duration) *entities.Donation {
	t.Helper()
	d := &entities.Donation{
		ID:        uuid.New(),
		DonorID:   donorID,
		Title:     "Idli batter",
		Type:      "raw",
		Quantity:  5,
		Unit:      "kg",
		Address:   "Koramangala, Bengaluru",
		ExpiresAt: time.Now().Add(ttl),
		Status:    domain.DonationStatusOpen,
		Priority:  domain.PriorityHigh,
	}
	require.NoError(t, repo.CreateDonation(context.Background(), d))
	return d
}

func TestRepositoryClaimIsAtomic(t *testing.T) {
	db := testdb.New(t)
	repo := NewDonationRepository(db)
	ctx := context.Background()

	donor := createUser(t, db, domain.RoleDonor)
	d := createDonation(t, repo, donor.ID, time.Hour)

	const callers = 10
	collectors := make([]*entities.User, callers)
	for i := range collectors {
		collectors[i] = createUser(t, db, domain.RoleCollector)
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		accepted    int
		unavailable int
	)
	for _, c := range collectors {
		wg.Add(1)
		go func(collectorID uuid.UUID) {
			defer wg.Done()
			_, err := repo.ClaimDonation(ctx, d.ID.String(), collectorID, nil, time.Now())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domain.ErrDonationNotAvailable):
				unavailable++
			default:
				t.Errorf("unexpected claim error: %v", err)
			}
		}(c.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, callers-1, unavailable)

	_, err := repo.ClaimDonation(ctx, uuid.NewString(), collectors[0].ID, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestRepositoryCompleteRequiresAssignedCollector(t *testing.T) {
	db := testdb.New(t)
	repo := NewDonationRepository(db)
	ctx := context.Background()

	donor := createUser(t, db, domain.RoleDonor)
	assigned := createUser(t, db, domain.RoleCollector)
	other := createUser(t, db, domain.RoleCollector)
	d := createDonation(t, repo, donor.ID, time.Hour)

	_, err := repo.ClaimDonation(ctx, d.ID.String(), assigned.ID, nil, time.Now())
	require.NoError(t, err)

	_, err = repo.CompleteDonation(ctx, d.ID.String(), other.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotAssignedCollector)

	completed, err := repo.CompleteDonation(ctx, d.ID.String(), assigned.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedBy)
	assert.Equal(t, assigned.ID, *completed.CompletedBy)

	_, err = repo.CompleteDonation(ctx, d.ID.String(), assigned.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrDonationNotAvailable)
}

func TestRepositoryConditionalWrites(t *testing.T) {
	db := testdb.New(t)
	repo := NewDonationRepository(db)
	ctx := context.Background()

	donor := createUser(t, db, domain.RoleDonor)
	collector := createUser(t, db, domain.RoleCollector)

	d := createDonation(t, repo, donor.ID, time.Hour)
	ok, err := repo.UpdateOpenDonation(ctx, d.ID.String(), map[string]any{"title": "Sambar"})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.ClaimDonation(ctx, d.ID.String(), collector.ID, nil, time.Now())
	require.NoError(t, err)

	ok, err = repo.UpdateOpenDonation(ctx, d.ID.String(), map[string]any{"title": "Rasam"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteOpenDonation(ctx, d.ID.String())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ReleaseDonation(ctx, d.ID.String(), collector.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	released, err := repo.GetDonationByID(ctx, d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusOpen, released.Status)
	assert.Nil(t, released.AssignedCollectorID)

	stale := createDonation(t, repo, donor.ID, -time.Minute)
	n, err := repo.ExpireStaleDonations(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	expired, err := repo.GetDonationByID(ctx, stale.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusExpired, expired.Status)
}
