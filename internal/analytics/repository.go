package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository runs aggregate queries over the ledger tables
type Repository interface {
	GetBookingOverview(ctx context.Context) (*BookingOverview, error)
	GetDailyBookingStats(ctx context.Context, since time.Time) ([]DailyBookingStats, error)
	GetTopRoutes(ctx context.Context, limit int) ([]RoutePerformance, error)
	GetCancellationOverview(ctx context.Context) (*CancellationOverview, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingOverview(ctx context.Context) (*BookingOverview, error) {
	var overview BookingOverview
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE status = 'Confirmed') AS confirmed_bookings,
			COUNT(*) FILTER (WHERE status = 'Cancelled') AS cancelled_bookings,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'Confirmed'), 0) AS revenue,
			COALESCE(SUM(refund_amount) FILTER (WHERE status = 'Cancelled'), 0) AS refunded
		FROM bookings`).Scan(&overview).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get booking overview: %w", err)
	}
	return &overview, nil
}

func (r *repository) GetDailyBookingStats(ctx context.Context, since time.Time) ([]DailyBookingStats, error) {
	var stats []DailyBookingStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE status = 'Cancelled') AS cancelled_bookings,
			COALESCE(SUM(total_price), 0) AS revenue
		FROM bookings
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)`, since).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}
	return stats, nil
}

func (r *repository) GetTopRoutes(ctx context.Context, limit int) ([]RoutePerformance, error) {
	var routes []RoutePerformance
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			bus->>'route_no' AS route_no,
			bus->>'from' AS from_city,
			bus->>'to' AS to_city,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'Confirmed'), 0) AS revenue
		FROM bookings
		GROUP BY 1, 2, 3
		ORDER BY bookings DESC, route_no
		LIMIT ?`, limit).Scan(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get route performance: %w", err)
	}
	return routes, nil
}

func (r *repository) GetCancellationOverview(ctx context.Context) (*CancellationOverview, error) {
	var overview CancellationOverview
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_cancellations,
			COALESCE(SUM(refund_amount), 0) AS refund_amount,
			COALESCE(SUM(cancellation_fee), 0) AS fees_retained,
			COALESCE(AVG(deduction_percentage), 0) AS avg_deduction_percentage
		FROM cancellations
		WHERE status = 'PROCESSED'`).Scan(&overview).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cancellation overview: %w", err)
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT deduction_percentage, COUNT(*) AS count
		FROM cancellations
		WHERE status = 'PROCESSED'
		GROUP BY deduction_percentage
		ORDER BY deduction_percentage`).Scan(&overview.ByTier).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cancellation tiers: %w", err)
	}
	return &overview, nil
}
