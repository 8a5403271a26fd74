package routes

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"busgo/internal/inventory"

	"gorm.io/gorm"
)

// Repository is the route catalogue. It satisfies inventory.RouteSource.
type Repository interface {
	FindByCities(ctx context.Context, from, to string) ([]inventory.RouteTemplate, error)
	Cities(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]inventory.RouteTemplate, error)
	Create(ctx context.Context, tpl *inventory.RouteTemplate) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new route repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByCities matches case-insensitive substrings of both city names
func (r *repository) FindByCities(ctx context.Context, from, to string) ([]inventory.RouteTemplate, error) {
	var templates []inventory.RouteTemplate
	err := r.db.WithContext(ctx).
		Where("LOWER(from_city) LIKE ? AND LOWER(to_city) LIKE ?", likePattern(from), likePattern(to)).
		Order("id ASC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find routes: %w", err)
	}
	return templates, nil
}

func (r *repository) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).
		Raw("SELECT from_city AS city FROM route_templates UNION SELECT to_city FROM route_templates ORDER BY city").
		Scan(&cities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func (r *repository) List(ctx context.Context) ([]inventory.RouteTemplate, error) {
	var templates []inventory.RouteTemplate
	if err := r.db.WithContext(ctx).Order("route_no ASC").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return templates, nil
}

func (r *repository) Create(ctx context.Context, tpl *inventory.RouteTemplate) error {
	if err := r.db.WithContext(ctx).Create(tpl).Error; err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return "%" + s + "%"
}

// MemoryRepository keeps the catalogue in process.
type MemoryRepository struct {
	mu        sync.RWMutex
	templates []inventory.RouteTemplate
	nextID    uint
}

// NewMemoryRepository starts from a copy of seed.
func NewMemoryRepository(seed []inventory.RouteTemplate) *MemoryRepository {
	r := &MemoryRepository{}
	for _, tpl := range seed {
		t := tpl
		r.nextID++
		t.ID = r.nextID
		r.templates = append(r.templates, t)
	}
	return r
}

func (r *MemoryRepository) FindByCities(_ context.Context, from, to string) ([]inventory.RouteTemplate, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []inventory.RouteTemplate
	for _, tpl := range r.templates {
		if strings.Contains(strings.ToLower(tpl.From), from) && strings.Contains(strings.ToLower(tpl.To), to) {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Cities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var cities []string
	for _, tpl := range r.templates {
		cities = append(cities, tpl.From, tpl.To)
	}
	slices.Sort(cities)
	return slices.Compact(cities), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]inventory.RouteTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.templates)
	slices.SortStableFunc(out, func(a, b inventory.RouteTemplate) int {
		return strings.Compare(a.RouteNo, b.RouteNo)
	})
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, tpl *inventory.RouteTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tpl.ID = r.nextID
	r.templates = append(r.templates, *tpl)
	return nil
}
