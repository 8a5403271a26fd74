package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"busgo/internal/inventory"
	"busgo/internal/shared/constants"
	"busgo/pkg/cache"
)

func TestCreateRoute(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(nil)
	mem := cache.NewMemoryService()
	svc := NewService(repo, mem)

	if err := mem.Set(ctx, constants.CACHE_KEY_ROUTE_CITIES, []string{"Stale"}, time.Hour); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	before, err := svc.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	tpl, err := svc.CreateRoute(ctx, CreateRouteRequest{
		RouteNo: "900", From: "Erode", To: "Chennai",
		DepartureTimings: "21.30", Duration: "7h 10m", Price: 540, Type: "A/C",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tpl.ID == 0 {
		t.Fatalf("expected an id")
	}
	if mem.Exists(ctx, constants.CACHE_KEY_ROUTE_CITIES) {
		t.Fatalf("city cache should be invalidated")
	}
	after, err := svc.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected the new route in the listing, got %d after %d", len(after), len(before))
	}

	_, err = svc.CreateRoute(ctx, CreateRouteRequest{RouteNo: "901", From: "Erode", To: "erode", DepartureTimings: "6.00", Price: 100})
	if !errors.Is(err, inventory.ErrSameCity) {
		t.Fatalf("expected ErrSameCity, got %v", err)
	}

	_, err = svc.CreateRoute(ctx, CreateRouteRequest{RouteNo: "902", From: "Erode", To: "Salem", DepartureTimings: "25.00", Price: 100})
	if !errors.Is(err, inventory.ErrInvalidTiming) {
		t.Fatalf("expected ErrInvalidTiming, got %v", err)
	}
}
