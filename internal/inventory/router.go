package inventory

import "github.com/gin-gonic/gin"

// SetupInventoryRoutes configures search and catalogue routes
func SetupInventoryRoutes(rg *gin.RouterGroup, controller *Controller) {
	searches := rg.Group("/searches")
	{
		searches.POST("", controller.CreateSearch)      // POST /api/v1/searches
		searches.GET("/:id/trips", controller.GetTrips) // GET /api/v1/searches/:id/trips
	}

	rg.GET("/routes/cities", controller.GetCities) // GET /api/v1/routes/cities
}

// Route definitions for reference:
//
// POST   /api/v1/searches                      - Expand matching routes into trips
// Request body: { "from": "Chennai", "to": "Madurai", "date": "2025-12-01" }
//
// GET    /api/v1/searches/:id/trips?max_price=800&bus_type=AC+Buses&slot=2&min_rating=4
//        Filters the stored inventory. Seat layouts do not change between calls.
