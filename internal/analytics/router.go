package analytics

import (
	"busgo/internal/shared/config"
	"busgo/internal/shared/middleware"
	"busgo/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes registers the admin reporting endpoints
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	admin := rg.Group("/admin/analytics")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleAdmin))
	{
		admin.GET("/bookings", controller.GetBookingOverview)         // Ledger totals and revenue
		admin.GET("/bookings/daily", controller.GetDailyBookingStats) // Per-day counts (?days=30)
		admin.GET("/routes", controller.GetTopRoutes)                 // Busiest routes (?limit=10)
		admin.GET("/cancellations", controller.GetCancellationOverview)
	}
}
