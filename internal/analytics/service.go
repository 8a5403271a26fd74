package analytics

import (
	"context"
	"math"
	"time"

	"busgo/internal/shared/constants"
	"busgo/pkg/cache"
)

const (
	defaultDays      = 30
	maxDays          = 365
	defaultTopRoutes = 10
)

// Service defines the analytics service interface
type Service interface {
	GetBookingOverview(ctx context.Context) (*BookingOverview, error)
	GetDailyBookingStats(ctx context.Context, days int, now time.Time) ([]DailyBookingStats, error)
	GetTopRoutes(ctx context.Context, limit int) ([]RoutePerformance, error)
	GetCancellationOverview(ctx context.Context) (*CancellationOverview, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new analytics service. Overviews are cached briefly.
func NewService(repo Repository, c cache.Service) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) GetBookingOverview(ctx context.Context) (*BookingOverview, error) {
	var overview BookingOverview
	err := s.cached(ctx, constants.CACHE_KEY_ANALYTICS_OVERVIEW, &overview, func() (interface{}, error) {
		o, err := s.repo.GetBookingOverview(ctx)
		if err != nil {
			return nil, err
		}
		if o.TotalBookings > 0 {
			o.CancellationRate = round2(float64(o.CancelledBookings) / float64(o.TotalBookings) * 100)
		}
		if o.ConfirmedBookings > 0 {
			o.AverageValue = round2(o.Revenue / float64(o.ConfirmedBookings))
		}
		return o, nil
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *service) GetDailyBookingStats(ctx context.Context, days int, now time.Time) ([]DailyBookingStats, error) {
	if days <= 0 {
		days = defaultDays
	}
	if days > maxDays {
		days = maxDays
	}
	y, m, d := now.UTC().Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	stats, err := s.repo.GetDailyBookingStats(ctx, since)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		if stats[i].TotalBookings > 0 {
			stats[i].AverageValue = round2(stats[i].Revenue / float64(stats[i].TotalBookings))
		}
	}
	return stats, nil
}

func (s *service) GetTopRoutes(ctx context.Context, limit int) ([]RoutePerformance, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultTopRoutes
	}
	return s.repo.GetTopRoutes(ctx, limit)
}

func (s *service) GetCancellationOverview(ctx context.Context) (*CancellationOverview, error) {
	var overview CancellationOverview
	err := s.cached(ctx, constants.CACHE_KEY_ANALYTICS_CANCELLATIONS, &overview, func() (interface{}, error) {
		o, err := s.repo.GetCancellationOverview(ctx)
		if err != nil {
			return nil, err
		}
		o.AvgDeductionPercentage = round2(o.AvgDeductionPercentage)
		return o, nil
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (s *service) cached(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	return s.cache.GetOrSet(ctx, key, constants.TTL_ANALYTICS, fetch, dest)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
