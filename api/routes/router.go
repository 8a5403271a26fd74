// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"busgo/internal/analytics"
	"busgo/internal/auth"
	"busgo/internal/bookings"
	"busgo/internal/cancellation"
	"busgo/internal/checkout"
	"busgo/internal/inventory"
	"busgo/internal/notifications"
	catalogue "busgo/internal/routes"
	"busgo/internal/shared/config"
	"busgo/internal/shared/database"
	"busgo/internal/tickets"
	"busgo/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB // nil with the memory storage driver
	cache     cache.Service
	publisher notifications.Publisher

	// shared between route groups
	userRepo       auth.Repository
	routeRepo      catalogue.Repository
	inventory      inventory.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance. A nil db selects in-process
// repositories for every store.
func NewRouter(cfg *config.Config, db *database.DB, c cache.Service, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     c,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Catalogue and search must come before checkout, which resolves trips
		// from stored searches
		r.setupCatalogueRoutes(api)
		r.setupInventoryRoutes(api)

		// Ledger before its consumers
		r.setupBookingRoutes(api)
		r.setupCancellationRoutes(api)
		r.setupCheckoutRoutes(api)

		// Reports run SQL aggregates and need Postgres
		if r.db != nil {
			r.setupAnalyticsRoutes(api)
		}
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if r.db != nil {
			if err := r.db.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"error":     err.Error(),
					"timestamp": time.Now(),
					"service":   "busgo-backend",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "busgo-backend",
			"storage":   r.config.Booking.StorageDriver,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	if r.db != nil {
		r.userRepo = auth.NewRepository(r.db.PostgreSQL)
	} else {
		r.userRepo = auth.NewMemoryRepository()
	}
	authService := auth.NewService(r.userRepo, r.config)
	authController := auth.NewController(authService)
	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

// setupCatalogueRoutes configures route template listing and admin creation
func (r *Router) setupCatalogueRoutes(rg *gin.RouterGroup) {
	if r.db != nil {
		r.routeRepo = catalogue.NewRepository(r.db.PostgreSQL)
	} else {
		r.routeRepo = catalogue.NewMemoryRepository(catalogue.DefaultCatalogue())
	}
	routeService := catalogue.NewService(r.routeRepo, r.cache)
	catalogue.SetupRouteRoutes(rg, catalogue.NewController(routeService), r.config)
}

// setupInventoryRoutes configures search and trip listing
func (r *Router) setupInventoryRoutes(rg *gin.RouterGroup) {
	r.inventory = inventory.NewService(r.routeRepo, r.cache, r.config.Booking.SearchTTL, r.config.Location())
	inventory.SetupInventoryRoutes(rg, inventory.NewController(r.inventory))
}

// setupBookingRoutes configures the booking ledger routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	var (
		store   bookings.BookingStore
		ratings bookings.RatingRepository
	)
	if r.db != nil {
		store = bookings.NewGormStore(r.db.PostgreSQL)
		ratings = bookings.NewRatingRepository(r.db.PostgreSQL)
	} else {
		store = bookings.NewMemoryStore()
		ratings = bookings.NewMemoryRatingRepository()
	}

	r.bookingService = bookings.NewService(store, ratings, r.publisher)
	renderer := tickets.NewPDFRenderer(r.config.Location())
	bookings.SetupBookingRoutes(rg, bookings.NewController(r.bookingService, renderer), r.config)
}

// setupCancellationRoutes configures refund quotes and cancellations
func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	var repo cancellation.Repository
	if r.db != nil {
		repo = cancellation.NewRepository(r.db.PostgreSQL)
	} else {
		repo = cancellation.NewMemoryRepository()
	}
	cancellationService := cancellation.NewService(repo, r.bookingService, r.publisher)
	cancellation.SetupCancellationRoutes(rg, cancellation.NewController(cancellationService), r.config)
}

// setupCheckoutRoutes configures the session-backed booking flow
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	checkoutService := checkout.NewService(
		r.inventory,
		r.bookingService,
		auth.NewUserServiceAdapter(r.userRepo),
		r.cache,
		r.publisher,
		checkout.Config{
			SessionTTL: r.config.Booking.SessionTTL,
			Location:   r.config.Location(),
			Coupons:    r.config.Booking.Coupons,
		},
	)
	checkout.SetupCheckoutRoutes(rg, checkout.NewController(checkoutService), r.config)
}

// setupAnalyticsRoutes configures admin reporting over the ledger
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.PostgreSQL)
	analyticsService := analytics.NewService(analyticsRepo, r.cache)
	analytics.SetupAnalyticsRoutes(rg, analytics.NewController(analyticsService), r.config)
}
