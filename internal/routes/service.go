package routes

import (
	"context"
	"fmt"
	"strings"

	"busgo/internal/inventory"
	"busgo/internal/shared/constants"
	"busgo/pkg/cache"
	"busgo/pkg/logger"
)

type Service interface {
	ListRoutes(ctx context.Context) ([]inventory.RouteTemplate, error)
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*inventory.RouteTemplate, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, c cache.Service) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) ListRoutes(ctx context.Context) ([]inventory.RouteTemplate, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	var templates []inventory.RouteTemplate
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_ROUTE_LIST, constants.TTL_ROUTE_LIST, func() (interface{}, error) {
		return s.repo.List(ctx)
	}, &templates)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return templates, nil
}

// CreateRoute adds a catalogue entry and drops the cached listings.
func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*inventory.RouteTemplate, error) {
	tpl := &inventory.RouteTemplate{
		RouteNo:          strings.TrimSpace(req.RouteNo),
		From:             strings.TrimSpace(req.From),
		To:               strings.TrimSpace(req.To),
		DepartureTimings: req.DepartureTimings,
		Duration:         req.Duration,
		Price:            req.Price,
		Rating:           req.Rating,
		Type:             req.Type,
	}
	if strings.EqualFold(tpl.From, tpl.To) {
		return nil, inventory.ErrSameCity
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid route: %w", err)
	}

	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, constants.CACHE_KEY_ROUTE_LIST, constants.CACHE_KEY_ROUTE_CITIES)
	}

	logger.GetDefault().InfoWithContext(ctx, "Route created", map[string]interface{}{
		"route_no": tpl.RouteNo,
		"from":     tpl.From,
		"to":       tpl.To,
		"timings":  tpl.DepartureTimings,
	})
	return tpl, nil
}
