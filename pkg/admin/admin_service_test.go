package admin

import (
	"Maitri-Dhatri-Backend/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminRepository struct {
	counts     map[string]int64
	byStatus   []GroupCount
	byPriority []GroupCount
	byType     []GroupCount
	err        error
}

func (f *fakeAdminRepository) get(name string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[name], nil
}

func (f *fakeAdminRepository) CountUsers(context.Context) (int64, error)     { return f.get("users") }
func (f *fakeAdminRepository) CountDonations(context.Context) (int64, error) { return f.get("donations") }
func (f *fakeAdminRepository) CountMatches(context.Context) (int64, error)   { return f.get("matches") }
func (f *fakeAdminRepository) CountProofs(context.Context) (int64, error)    { return f.get("proofs") }
func (f *fakeAdminRepository) CountFeedback(context.Context) (int64, error)  { return f.get("feedback") }

func (f *fakeAdminRepository) DonationsByStatus(context.Context) ([]GroupCount, error) {
	return f.byStatus, f.err
}

func (f *fakeAdminRepository) DonationsByPriority(context.Context) ([]GroupCount, error) {
	return f.byPriority, f.err
}

func (f *fakeAdminRepository) TopDonationTypes(_ context.Context, limit int) ([]GroupCount, error) {
	if len(f.byType) > limit {
		return f.byType[:limit], f.err
	}
	return f.byType, f.err
}

func TestGetStats(t *testing.T) {
	svc := NewAdminService(&fakeAdminRepository{counts: map[string]int64{
		"users": 12, "donations": 40, "matches": 25, "proofs": 18, "feedback": 9,
	}})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AdminStats{
		TotalUsers: 12, TotalDonations: 40, TotalMatches: 25, TotalProofs: 18, TotalFeedback: 9,
	}, *stats)
}

func TestGetStatsPropagatesErrors(t *testing.T) {
	svc := NewAdminService(&fakeAdminRepository{err: errors.New("db down")})

	_, err := svc.GetStats(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestGetAnalytics(t *testing.T) {
	svc := NewAdminService(&fakeAdminRepository{
		byStatus:   []GroupCount{{domain.DonationStatusOpen, 7}, {domain.DonationStatusCompleted, 3}},
		byPriority: []GroupCount{{domain.PriorityHigh, 4}, {"", 2}},
		byType: []GroupCount{
			{"cooked", 9}, {"bakery", 5}, {"", 4}, {"fruit", 3}, {"dairy", 2}, {"raw", 1},
		},
	})

	analytics, err := svc.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), analytics.StatusDistribution[domain.DonationStatusOpen])
	assert.Equal(t, int64(2), analytics.PriorityBreakdown[domain.UnspecifiedBucket])
	require.Len(t, analytics.TopTypes, domain.TopTypesLimit)
	assert.Equal(t, domain.TypeCount{Type: "cooked", Count: 9}, analytics.TopTypes[0])
	assert.Equal(t, domain.UnspecifiedBucket, analytics.TopTypes[2].Type)
}
