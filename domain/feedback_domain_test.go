package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		avg   float64
		count int
		want  string
	}{
		{4.9, 60, BadgeTrusted},
		{4.8, 50, BadgeTrusted},
		{4.6, 25, BadgeReliable},
		{4.9, 49, BadgeReliable},
		{4.9, 10, BadgeRising},
		{3.0, 5, BadgeRising},
		{4.9, 2, ""},
		{0, 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeFor(tt.avg, tt.count), "avg=%v count=%d", tt.avg, tt.count)
	}
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 0.0, RoundRating(0, 0))
	assert.Equal(t, 4.4, RoundRating(22, 5))
	assert.Equal(t, 3.3, RoundRating(13, 4))
	assert.Equal(t, 4.7, RoundRating(14, 3))
	assert.Equal(t, 4.5, RoundRating(89, 20))
}

func TestNewHistogramZeroFills(t *testing.T) {
	hist := NewHistogram(map[int]int64{5: 3, 4: 1, 3: 1})
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 1, 4: 1, 5: 3}, hist)
	assert.Len(t, NewHistogram(nil), 5)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(DonationStatusOpen, DonationStatusAccepted))
	assert.True(t, CanTransition(DonationStatusAccepted, DonationStatusCompleted))
	assert.True(t, CanTransition(DonationStatusAccepted, DonationStatusOpen))
	assert.False(t, CanTransition(DonationStatusOpen, DonationStatusCompleted))
	assert.False(t, CanTransition(DonationStatusCompleted, DonationStatusOpen))
	assert.False(t, CanTransition(DonationStatusExpired, DonationStatusAccepted))
}
