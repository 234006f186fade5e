package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocodeCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Andheri East, Mumbai"}`))
	}))
	defer srv.Close()

	g := NewNominatim(srv.URL, "test-agent", 16, time.Minute)

	address, err := g.ReverseGeocode(context.Background(), 19.11361, 72.86971)
	require.NoError(t, err)
	assert.Equal(t, "Andheri East, Mumbai", address)

	// same ~11m bucket
	address, err = g.ReverseGeocode(context.Background(), 19.11364, 72.86969)
	require.NoError(t, err)
	assert.Equal(t, "Andheri East, Mumbai", address)
	assert.Equal(t, int32(1), calls.Load())
}

func TestReverseGeocodeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "0.000000" {
			_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewNominatim(srv.URL, "test-agent", 16, time.Minute)

	_, err := g.ReverseGeocode(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrNoAddress)

	_, err = g.ReverseGeocode(context.Background(), 12.97, 77.59)
	assert.Error(t, err)
}
