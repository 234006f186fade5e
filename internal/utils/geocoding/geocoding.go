package geocoding

import (
	"Maitri-Dhatri-Backend/internal/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "md_geocoder_cache_hits_total",
		Help: "Reverse geocoding lookups served from the cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "md_geocoder_cache_misses_total",
		Help: "Reverse geocoding lookups that went to the upstream service.",
	})

	ErrNoAddress = errors.New("geocoder returned no address")
)

type (
	Geocoder interface {
		ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	}

	nominatim struct {
		baseURL    string
		userAgent  string
		httpClient *http.Client
		cache      *expirable.LRU[string, string]
	}

	reverseResponse struct {
		DisplayName string `json:"display_name"`
		Error       string `json:"error"`
	}
)

func NewGeocoder() Geocoder {
	return NewNominatim(
		utils.GetConfig("GEOCODER_URL"),
		utils.GetConfig("GEOCODER_USER_AGENT"),
		utils.GetConfigInt("GEOCODER_CACHE_SIZE"),
		utils.GetConfigDuration("GEOCODER_CACHE_TTL"),
	)
}

func NewNominatim(baseURL, userAgent string, cacheSize int, ttl time.Duration) Geocoder {
	return &nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cache:      expirable.NewLRU[string, string](cacheSize, nil, ttl),
	}
}

// cacheKey buckets coordinates to roughly 11m so nearby lookups share an entry.
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

func (g *nominatim) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	key := cacheKey(lat, lng)
	if address, ok := g.cache.Get(key); ok {
		cacheHitsTotal.Inc()
		return address, nil
	}
	cacheMissesTotal.Inc()

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Error != "" || body.DisplayName == "" {
		return "", ErrNoAddress
	}

	g.cache.Add(key, body.DisplayName)
	return body.DisplayName, nil
}
