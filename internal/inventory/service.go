package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"busgo/internal/shared/constants"
	"busgo/pkg/cache"
	"busgo/pkg/logger"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

var (
	ErrSameCity       = errors.New("origin and destination must differ")
	ErrPastDate       = errors.New("journey date cannot be in the past")
	ErrInvalidDate    = errors.New("journey date must be YYYY-MM-DD")
	ErrSearchNotFound = errors.New("search not found or expired")
	ErrTripNotFound   = errors.New("trip not found in search")
)

// RouteSource is the catalogue the search expands from (to avoid circular dependency)
type RouteSource interface {
	FindByCities(ctx context.Context, from, to string) ([]RouteTemplate, error)
	Cities(ctx context.Context) ([]string, error)
}

type SearchParams struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
	Date string `json:"date" binding:"required"`
}

// Search is the inventory generated for one set of params. It is stored
// once and every later filter reads the same seat layouts.
type Search struct {
	ID        string         `json:"id"`
	Params    SearchParams   `json:"params"`
	Trips     []TripInstance `json:"trips"`
	CreatedAt time.Time      `json:"created_at"`
}

// JourneyDate parses the search date in loc.
func (p SearchParams) JourneyDate(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, p.Date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

type Service interface {
	Search(ctx context.Context, params SearchParams, now time.Time) (*Search, error)
	Trips(ctx context.Context, searchID string, filters Filters) ([]TripInstance, error)
	GetSearch(ctx context.Context, searchID string) (*Search, error)
	Trip(ctx context.Context, searchID, tripID string) (*TripInstance, *SearchParams, error)
	Cities(ctx context.Context) ([]string, error)
}

type service struct {
	routes   RouteSource
	cache    cache.Service
	ttl      time.Duration
	location *time.Location
	newRand  func() *rand.Rand
	log      *logger.Logger
}

type Option func(*service)

// WithRandSource replaces the per-search random source, for reproducible
// seat layouts.
func WithRandSource(fn func() *rand.Rand) Option {
	return func(s *service) { s.newRand = fn }
}

func NewService(routes RouteSource, c cache.Service, ttl time.Duration, loc *time.Location, opts ...Option) Service {
	if ttl <= 0 {
		ttl = constants.TTL_SEARCH_DEFAULT
	}
	if loc == nil {
		loc = time.Local
	}
	s := &service{
		routes:   routes,
		cache:    c,
		ttl:      ttl,
		location: loc,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		log: logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Search(ctx context.Context, params SearchParams, now time.Time) (*Search, error) {
	params.From = strings.TrimSpace(params.From)
	params.To = strings.TrimSpace(params.To)
	if strings.EqualFold(params.From, params.To) {
		return nil, ErrSameCity
	}

	date, err := params.JourneyDate(s.location)
	if err != nil {
		return nil, err
	}
	y, m, d := now.In(s.location).Date()
	if date.Before(time.Date(y, m, d, 0, 0, 0, 0, s.location)) {
		return nil, ErrPastDate
	}

	templates, err := s.routes.FindByCities(ctx, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	rng := s.newRand()
	trips := make([]TripInstance, 0, len(templates))
	for i, tpl := range templates {
		expanded, err := ExpandRouteToTrips(tpl, i, rng)
		if err != nil {
			return nil, fmt.Errorf("failed to expand route: %w", err)
		}
		trips = append(trips, expanded...)
	}

	search := &Search{
		ID:        uuid.New().String(),
		Params:    params,
		Trips:     trips,
		CreatedAt: now,
	}
	if err := s.cache.Set(ctx, constants.BuildSearchKey(search.ID, constants.SESSION_FIELD_INVENTORY), search, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store search: %w", err)
	}

	s.log.LogSearchCreated(ctx, search.ID, params.From, params.To, len(trips))
	return search, nil
}

func (s *service) GetSearch(ctx context.Context, searchID string) (*Search, error) {
	var search Search
	if err := s.cache.Get(ctx, constants.BuildSearchKey(searchID, constants.SESSION_FIELD_INVENTORY), &search); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSearchNotFound
		}
		return nil, fmt.Errorf("failed to load search: %w", err)
	}
	return &search, nil
}

func (s *service) Trips(ctx context.Context, searchID string, filters Filters) ([]TripInstance, error) {
	search, err := s.GetSearch(ctx, searchID)
	if err != nil {
		return nil, err
	}
	trips := FilterTrips(search.Trips, filters)
	s.log.DebugWithContext(ctx, "Trips filtered", map[string]interface{}{
		"search_id":  searchID,
		"max_price":  filters.MaxPrice,
		"bus_types":  filters.BusTypes,
		"time_slots": filters.TimeSlots,
		"min_rating": filters.MinRating,
		"matched":    len(trips),
		"total":      len(search.Trips),
	})
	return trips, nil
}

func (s *service) Trip(ctx context.Context, searchID, tripID string) (*TripInstance, *SearchParams, error) {
	search, err := s.GetSearch(ctx, searchID)
	if err != nil {
		return nil, nil, err
	}
	for i := range search.Trips {
		if search.Trips[i].ID == tripID {
			return &search.Trips[i], &search.Params, nil
		}
	}
	return nil, nil, ErrTripNotFound
}

func (s *service) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_ROUTE_CITIES, constants.TTL_ROUTE_CITIES, func() (interface{}, error) {
		return s.routes.Cities(ctx)
	}, &cities)
	if err != nil {
		return nil, fmt.Errorf("failed to load cities: %w", err)
	}
	return cities, nil
}
