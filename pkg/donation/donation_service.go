package donation

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"Maitri-Dhatri-Backend/internal/utils/geocoding"
	"Maitri-Dhatri-Backend/internal/utils/storage"
	"Maitri-Dhatri-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var claimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "md_donation_claims_total",
	Help: "Donation claim attempts by outcome.",
}, []string{"result"})

var priorities = []string{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.CreateDonationRequest, actor domain.Actor) (*domain.Donation, error)
		GetDonationByID(ctx context.Context, id string) (*domain.Donation, error)
		GetAvailableDonations(ctx context.Context, query domain.ListDonationsQuery) ([]*domain.Donation, domain.Pagination, error)
		GetDonorDonations(ctx context.Context, actor domain.Actor, page, limit int) ([]*domain.Donation, domain.Pagination, error)
		GetCollectorDonations(ctx context.Context, actor domain.Actor, page, limit int) ([]*domain.Donation, domain.Pagination, error)
		GetAllDonations(ctx context.Context, page, limit int) ([]*domain.Donation, domain.Pagination, error)
		UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, actor domain.Actor) (*domain.Donation, error)
		DeleteDonation(ctx context.Context, id string, actor domain.Actor) error

		ClaimDonation(ctx context.Context, id string, req domain.ClaimDonationRequest, actor domain.Actor) (*domain.Donation, error)
		DeclineDonation(ctx context.Context, id string, req domain.DeclineDonationRequest, actor domain.Actor) (*domain.Donation, error)
		AssignDonation(ctx context.Context, id string, req domain.AdminAssignDonationRequest) (*domain.Donation, error)
		OverrideStatus(ctx context.Context, id string, req domain.AdminDonationStatusRequest) (*domain.Donation, error)
		ExpireStaleDonations(ctx context.Context) (int64, error)
		RunExpirySweeper(ctx context.Context, interval time.Duration)

		GetMatches(ctx context.Context, page, limit int) ([]*domain.Match, domain.Pagination, error)
		GetCollectorStats(ctx context.Context, actor domain.Actor, tz string) (*domain.CollectorStats, error)
	}

	donationService struct {
		donationRepository DonationRepository
		userRepository     user.UserRepository
		s3                 storage.AwsS3
		geocoder           geocoding.Geocoder
		location           *time.Location
		now                func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
	geocoder geocoding.Geocoder,
	location *time.Location,
) DonationService {
	if location == nil {
		location = time.UTC
	}
	return &donationService{
		donationRepository: donationRepository,
		userRepository:     userRepository,
		s3:                 s3,
		geocoder:           geocoder,
		location:           location,
		now:                time.Now,
	}
}

func ToDonationDomain(donation *entities.Donation, photoURL string) *domain.Donation {
	result := &domain.Donation{
		ID:          donation.ID.String(),
		DonorID:     donation.DonorID.String(),
		Title:       donation.Title,
		Type:        donation.Type,
		Quantity:    donation.Quantity,
		Unit:        donation.Unit,
		PhotoURL:    photoURL,
		Address:     donation.Address,
		Latitude:    donation.Latitude,
		Longitude:   donation.Longitude,
		ExpiresAt:   donation.ExpiresAt,
		Status:      donation.Status,
		Priority:    donation.Priority,
		PickupTime:  donation.PickupTime,
		AcceptedAt:  donation.AcceptedAt,
		CompletedAt: donation.CompletedAt,
		CreatedAt:   donation.CreatedAt,
		UpdatedAt:   donation.UpdatedAt,
	}
	if donation.Donor != nil {
		result.Donor = &domain.UserSummary{
			ID:    donation.Donor.ID.String(),
			Name:  donation.Donor.Name,
			Email: donation.Donor.Email,
		}
	}
	if donation.AssignedCollectorID != nil {
		id := donation.AssignedCollectorID.String()
		result.AssignedCollectorID = &id
	}
	if donation.CompletedBy != nil {
		id := donation.CompletedBy.String()
		result.CompletedBy = &id
	}
	return result
}

func (s *donationService) toDomain(ctx context.Context, donation *entities.Donation) *domain.Donation {
	var photoURL string
	if donation.PhotoKey != "" && s.s3 != nil {
		photoURL = s.s3.GetPublicLinkKey(ctx, donation.PhotoKey)
	}
	return ToDonationDomain(donation, photoURL)
}

func (s *donationService) toDomainList(ctx context.Context, donations []*entities.Donation) []*domain.Donation {
	result := make([]*domain.Donation, 0, len(donations))
	for _, donation := range donations {
		result = append(result, s.toDomain(ctx, donation))
	}
	return result
}

// resolveAddress never fails: a geocoder error falls back to the raw coordinates.
func (s *donationService) resolveAddress(ctx context.Context, lat, lng float64) string {
	if s.geocoder != nil {
		geoCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		address, err := s.geocoder.ReverseGeocode(geoCtx, lat, lng)
		if err == nil {
			return address
		}
		log.Warnf("reverse geocode %.5f,%.5f: %v", lat, lng, err)
	}
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return page, limit
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.CreateDonationRequest, actor domain.Actor) (*domain.Donation, error) {
	donorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := s.now()
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil || !expiresAt.After(now) {
		return nil, domain.ErrInvalidExpiry
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, domain.ErrInvalidCoordinates
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		if req.Latitude == nil {
			return nil, domain.ErrMissingLocation
		}
		address = s.resolveAddress(ctx, *req.Latitude, *req.Longitude)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	donationID := uuid.New()

	var photoKey string
	if req.Photo != nil {
		photoKey, err = s.s3.UploadFile(
			ctx,
			fmt.Sprintf("donation-%s", donationID.String()),
			req.Photo,
			"donations",
			domain.MaxDonationPhotoSize,
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
	}

	donation := &entities.Donation{
		ID:        donationID,
		DonorID:   donorID,
		Title:     strings.TrimSpace(req.Title),
		Type:      strings.TrimSpace(req.Type),
		Quantity:  req.Quantity,
		Unit:      strings.TrimSpace(req.Unit),
		PhotoKey:  photoKey,
		Address:   address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		ExpiresAt: expiresAt,
		Status:    domain.DonationStatusOpen,
		Priority:  priority,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		if photoKey != "" {
			s.removeObject(ctx, photoKey)
		}
		return nil, err
	}

	return s.toDomain(ctx, donation), nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string) (*domain.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDomain(ctx, donation), nil
}

func (s *donationService) GetAvailableDonations(ctx context.Context, query domain.ListDonationsQuery) ([]*domain.Donation, domain.Pagination, error) {
	query.Page, query.Limit = normalizePage(query.Page, query.Limit)
	if query.Priority != "" && !slices.Contains(priorities, query.Priority) {
		return nil, domain.Pagination{}, domain.ErrValidation
	}
	if query.Sort != domain.SortExpiring {
		query.Sort = domain.SortRecent
	}

	donations, count, err := s.donationRepository.GetAvailableDonations(ctx, query, s.now())
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return s.toDomainList(ctx, donations), domain.NewPagination(query.Page, query.Limit, count), nil
}

func (s *donationService) GetDonorDonations(ctx context.Context, actor domain.Actor, page, limit int) ([]*domain.Donation, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	donations, count, err := s.donationRepository.GetDonorDonations(ctx, actor.UserID, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return s.toDomainList(ctx, donations), domain.NewPagination(page, limit, count), nil
}

func (s *donationService) GetCollectorDonations(ctx context.Context, actor domain.Actor, page, limit int) ([]*domain.Donation, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	donations, count, err := s.donationRepository.GetCollectorDonations(ctx, actor.UserID, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return s.toDomainList(ctx, donations), domain.NewPagination(page, limit, count), nil
}

func (s *donationService) GetAllDonations(ctx context.Context, page, limit int) ([]*domain.Donation, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	donations, count, err := s.donationRepository.GetAllDonations(ctx, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return s.toDomainList(ctx, donations), domain.NewPagination(page, limit, count), nil
}

// getOwned loads a donation the actor may edit: its donor or an admin.
func (s *donationService) getOwned(ctx context.Context, id string, actor domain.Actor) (*entities.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	donation, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.DonorID.String() != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrUnauthorizedDonationAccess
	}
	return donation, nil
}

func (s *donationService) UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest, actor domain.Actor) (*domain.Donation, error) {
	current, err := s.getOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.DonationStatusOpen {
		return nil, domain.ErrDonationNotEditable
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, domain.ErrInvalidCoordinates
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		updates["type"] = strings.TrimSpace(*req.Type)
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Unit != nil {
		updates["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
		updates["longitude"] = *req.Longitude
		if req.Address == nil || strings.TrimSpace(*req.Address) == "" {
			updates["address"] = s.resolveAddress(ctx, *req.Latitude, *req.Longitude)
		}
	}
	if address, ok := updates["address"]; ok && address == "" && current.Latitude == nil {
		return nil, domain.ErrMissingLocation
	}

	if len(updates) == 0 {
		return s.toDomain(ctx, current), nil
	}

	ok, err := s.donationRepository.UpdateOpenDonation(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrDonationNotEditable
	}

	updated, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDomain(ctx, updated), nil
}

func (s *donationService) DeleteDonation(ctx context.Context, id string, actor domain.Actor) error {
	current, err := s.getOwned(ctx, id, actor)
	if err != nil {
		return err
	}
	if current.Status != domain.DonationStatusOpen {
		return domain.ErrDonationNotEditable
	}

	ok, err := s.donationRepository.DeleteOpenDonation(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDonationNotEditable
	}

	if current.PhotoKey != "" {
		s.removeObject(ctx, current.PhotoKey)
	}
	return nil
}

func claimResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, domain.ErrDonationNotAvailable):
		return "unavailable"
	case errors.Is(err, domain.ErrDonationNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *donationService) claim(ctx context.Context, id string, collectorID uuid.UUID, pickupTime *time.Time) (*domain.Donation, error) {
	donation, err := s.donationRepository.ClaimDonation(ctx, id, collectorID, pickupTime, s.now())
	claimsTotal.WithLabelValues(claimResult(err)).Inc()
	if err != nil {
		return nil, err
	}
	return s.toDomain(ctx, donation), nil
}

func (s *donationService) ClaimDonation(ctx context.Context, id string, req domain.ClaimDonationRequest, actor domain.Actor) (*domain.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	collectorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.claim(ctx, id, collectorID, req.PickupTime)
}

func (s *donationService) AssignDonation(ctx context.Context, id string, req domain.AdminAssignDonationRequest) (*domain.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	collectorID, err := uuid.Parse(req.CollectorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	collector, err := s.userRepository.GetUserByID(ctx, req.CollectorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotACollector
		}
		return nil, err
	}
	if collector.Role != domain.RoleCollector {
		return nil, domain.ErrNotACollector
	}

	return s.claim(ctx, id, collectorID, req.PickupTime)
}

// DeclineDonation records a collector passing on a donation. An OPEN donation
// stays OPEN; an ACCEPTED one held by the caller is released back to OPEN.
func (s *donationService) DeclineDonation(ctx context.Context, id string, req domain.DeclineDonationRequest, actor domain.Actor) (*domain.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	collectorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	now := s.now()
	var result *entities.Donation
	err = s.donationRepository.Transaction(ctx, func(repo DonationRepository) error {
		donation, err := repo.GetDonationByID(ctx, id)
		if err != nil {
			return err
		}

		released := false
		switch {
		case donation.Status == domain.DonationStatusAccepted &&
			donation.AssignedCollectorID != nil && *donation.AssignedCollectorID == collectorID:
			ok, err := repo.ReleaseDonation(ctx, id, collectorID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrDonationNotAvailable
			}
			released = true
		case donation.Status == domain.DonationStatusOpen && donation.ExpiresAt.After(now):
		default:
			return domain.ErrDonationNotAvailable
		}

		if err := repo.CreateDecline(ctx, &entities.DonationDecline{
			ID:          uuid.New(),
			DonationID:  donation.ID,
			CollectorID: collectorID,
			Reason:      strings.TrimSpace(req.Reason),
			Released:    released,
		}); err != nil {
			return err
		}

		result, err = repo.GetDonationByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.toDomain(ctx, result), nil
}

func (s *donationService) OverrideStatus(ctx context.Context, id string, req domain.AdminDonationStatusRequest) (*domain.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrDonationNotFound
	}
	current, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, req.Status) {
		return nil, domain.ErrInvalidTransition
	}

	ok, err := s.donationRepository.TransitionStatus(ctx, id, current.Status, req.Status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrDonationNotAvailable
	}

	updated, err := s.donationRepository.GetDonationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDomain(ctx, updated), nil
}

func (s *donationService) ExpireStaleDonations(ctx context.Context) (int64, error) {
	return s.donationRepository.ExpireStaleDonations(ctx, s.now())
}

// RunExpirySweeper blocks until ctx is cancelled.
func (s *donationService) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Info("expiry sweep disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := s.ExpireStaleDonations(ctx)
			if err != nil {
				log.Errorf("expiry sweep: %v", err)
				continue
			}
			if expired > 0 {
				log.Infof("expiry sweep: %d donations expired", expired)
			}
		}
	}
}

func (s *donationService) GetMatches(ctx context.Context, page, limit int) ([]*domain.Match, domain.Pagination, error) {
	page, limit = normalizePage(page, limit)
	donations, count, err := s.donationRepository.GetMatchedDonations(ctx, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	matches := make([]*domain.Match, 0, len(donations))
	for _, donation := range donations {
		status, ok := domain.MatchStatusFor(donation.Status)
		if !ok || donation.AssignedCollectorID == nil {
			continue
		}
		match := &domain.Match{
			DonationID:    donation.ID.String(),
			DonationTitle: donation.Title,
			CollectorID:   donation.AssignedCollectorID.String(),
			PickupTime:    donation.PickupTime,
			AcceptedAt:    donation.AcceptedAt,
			CompletedAt:   donation.CompletedAt,
			Status:        status,
		}
		if donation.AssignedCollector != nil {
			match.CollectorName = donation.AssignedCollector.Name
		}
		matches = append(matches, match)
	}
	return matches, domain.NewPagination(page, limit, count), nil
}

// GetCollectorStats computes every figure fresh. "Today" is the calendar day
// in tz, or the configured application zone when tz is empty.
func (s *donationService) GetCollectorStats(ctx context.Context, actor domain.Actor, tz string) (*domain.CollectorStats, error) {
	location := s.location
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, domain.ErrInvalidTimezone
		}
		location = loc
	}

	now := s.now().In(location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, location)
	end := start.AddDate(0, 0, 1)

	today, err := s.donationRepository.CountCollectorDonations(ctx, actor.UserID, domain.DonationStatusCompleted, &start, &end)
	if err != nil {
		return nil, err
	}
	total, err := s.donationRepository.CountCollectorDonations(ctx, actor.UserID, domain.DonationStatusCompleted, nil, nil)
	if err != nil {
		return nil, err
	}
	active, err := s.donationRepository.CountCollectorDonations(ctx, actor.UserID, domain.DonationStatusAccepted, nil, nil)
	if err != nil {
		return nil, err
	}

	collector, err := s.userRepository.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	return &domain.CollectorStats{
		TodaysPickups:    today,
		TotalCollections: total,
		Rating:           collector.RatingAvg,
		ActivePickups:    active,
	}, nil
}

func (s *donationService) removeObject(ctx context.Context, key string) {
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnf("delete object %s: %v", key, err)
	}
}
