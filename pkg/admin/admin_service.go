package admin

import (
	"Maitri-Dhatri-Backend/domain"
	"context"

	"golang.org/x/sync/errgroup"
)

type (
	AdminService interface {
		GetStats(ctx context.Context) (*domain.AdminStats, error)
		GetAnalytics(ctx context.Context) (*domain.AdminAnalytics, error)
	}

	adminService struct {
		adminRepository AdminRepository
	}
)

func NewAdminService(adminRepository AdminRepository) AdminService {
	return &adminService{adminRepository: adminRepository}
}

func (s *adminService) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	g, ctx := errgroup.WithContext(ctx)

	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&stats.TotalUsers, s.adminRepository.CountUsers},
		{&stats.TotalDonations, s.adminRepository.CountDonations},
		{&stats.TotalMatches, s.adminRepository.CountMatches},
		{&stats.TotalProofs, s.adminRepository.CountProofs},
		{&stats.TotalFeedback, s.adminRepository.CountFeedback},
	}
	for _, c := range counters {
		c := c
		g.Go(func() error {
			n, err := c.fn(ctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

func bucketMap(rows []GroupCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := row.Key
		if key == "" {
			key = domain.UnspecifiedBucket
		}
		out[key] += row.Count
	}
	return out
}

func (s *adminService) GetAnalytics(ctx context.Context) (*domain.AdminAnalytics, error) {
	var byStatus, byPriority, byType []GroupCount
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		byStatus, err = s.adminRepository.DonationsByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		byPriority, err = s.adminRepository.DonationsByPriority(ctx)
		return err
	})
	g.Go(func() (err error) {
		byType, err = s.adminRepository.TopDonationTypes(ctx, domain.TopTypesLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	topTypes := make([]domain.TypeCount, 0, len(byType))
	for _, row := range byType {
		name := row.Key
		if name == "" {
			name = domain.UnspecifiedBucket
		}
		topTypes = append(topTypes, domain.TypeCount{Type: name, Count: row.Count})
	}

	return &domain.AdminAnalytics{
		StatusDistribution: bucketMap(byStatus),
		PriorityBreakdown:  bucketMap(byPriority),
		TopTypes:           topTypes,
	}, nil
}
