package cancellation

import (
	"busgo/internal/shared/config"
	"busgo/internal/shared/middleware"
	"busgo/internal/users"

	"github.com/gin-gonic/gin"
)

func SetupCancellationRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Public refund rules
	rg.GET("/refund-policy", controller.GetRefundPolicy) // GET /api/v1/refund-policy

	// Booking cancellation routes (Users and Admins)
	bookingRoutes := rg.Group("/bookings")
	bookingRoutes.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleUser, users.RoleAdmin))
	{
		bookingRoutes.GET("/:id/cancellation-quote", controller.GetQuote) // GET /api/v1/bookings/:id/cancellation-quote
		bookingRoutes.POST("/:id/cancel", controller.CancelBooking)       // POST /api/v1/bookings/:id/cancel
	}

	// Cancellation management routes
	cancellations := rg.Group("/cancellations")
	cancellations.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleUser, users.RoleAdmin))
	{
		cancellations.GET("/:id", controller.GetCancellation) // GET /api/v1/cancellations/:id
	}

	// User-specific cancellation routes
	userRoutes := rg.Group("/users")
	userRoutes.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleUser, users.RoleAdmin))
	{
		userRoutes.GET("/cancellations", controller.GetUserCancellations) // GET /api/v1/users/cancellations
	}
}

// Route definitions for reference:
//
// GET    /api/v1/refund-policy                         - Deduction tiers by hours to departure
// GET    /api/v1/bookings/:id/cancellation-quote       - Fare, deduction and refund if cancelled now
// POST   /api/v1/bookings/:id/cancel                   - Commit the cancellation
// Request body: { "confirm": true, "reason": "Change of plans" }
// GET    /api/v1/cancellations/:id                     - Audit record
// GET    /api/v1/users/cancellations                   - All cancellations, latest first
