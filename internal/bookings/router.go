package bookings

import (
	"busgo/internal/shared/config"
	"busgo/internal/shared/middleware"
	"busgo/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Booking routes
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleUser, users.RoleAdmin))
	{
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/rate", controller.RateBooking)     // POST /api/v1/bookings/:id/rate
		bookings.GET("/:id/ticket", controller.DownloadTicket) // GET /api/v1/bookings/:id/ticket
	}

	// User-specific booking routes
	userRoutes := rg.Group("/users")
	userRoutes.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleUser, users.RoleAdmin))
	{
		userRoutes.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}
}

// Route definitions for reference:
//
// DASHBOARD
// GET    /api/v1/users/bookings                       - All bookings, newest first, with
//                                                        display state, actions and refund preview
// GET    /api/v1/bookings/:id                         - Single booking view
//
// RATING (expired, unrated journeys only)
// POST   /api/v1/bookings/:id/rate
// Request body: { "stars": 4, "review": "Clean bus, on time" }
//
// PRINT (confirmed or expired)
// GET    /api/v1/bookings/:id/ticket                  - PDF ticket
//
// Bookings are created by POST /api/v1/checkout/pay and cancelled through
// the cancellation routes.
