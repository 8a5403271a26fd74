package routes

import (
	"busgo/internal/shared/config"
	"busgo/internal/shared/middleware"
	"busgo/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupRouteRoutes registers the catalogue endpoints
func SetupRouteRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	rg.GET("/routes", controller.ListRoutes) // GET /api/v1/routes

	admin := rg.Group("/admin/routes")
	admin.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleAdmin))
	{
		admin.POST("", controller.CreateRoute) // POST /api/v1/admin/routes
	}
}

// Route definitions for reference:
//
// GET    /api/v1/routes                  - Full catalogue
// POST   /api/v1/admin/routes            - Add a route template (admin)
// Request body: { "route_no": "101", "from": "Chennai", "to": "Madurai",
//                 "departure_timings": "6.30, 21.00", "duration": "8h 45m",
//                 "price": 650, "rating": 4.3, "type": "A/C" }
