package analytics

import (
	"net/http"
	"strconv"
	"time"

	"busgo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetBookingOverview handles GET /api/v1/admin/analytics/bookings
func (ctrl *Controller) GetBookingOverview(c *gin.Context) {
	overview, err := ctrl.service.GetBookingOverview(c.Request.Context())
	if err != nil {
		response.RespondServerError(c, "Failed to load booking analytics", err, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking analytics retrieved successfully", overview, nil)
}

// GetDailyBookingStats handles GET /api/v1/admin/analytics/bookings/daily?days=30
func (ctrl *Controller) GetDailyBookingStats(c *gin.Context) {
	days, err := intQuery(c, "days", defaultDays)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid days parameter", nil, err.Error())
		return
	}

	stats, err := ctrl.service.GetDailyBookingStats(c.Request.Context(), days, time.Now())
	if err != nil {
		response.RespondServerError(c, "Failed to load daily stats", err, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Daily booking stats retrieved successfully", stats, nil)
}

// GetTopRoutes handles GET /api/v1/admin/analytics/routes?limit=10
func (ctrl *Controller) GetTopRoutes(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultTopRoutes)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid limit parameter", nil, err.Error())
		return
	}

	routes, err := ctrl.service.GetTopRoutes(c.Request.Context(), limit)
	if err != nil {
		response.RespondServerError(c, "Failed to load route performance", err, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Route performance retrieved successfully", routes, nil)
}

// GetCancellationOverview handles GET /api/v1/admin/analytics/cancellations
func (ctrl *Controller) GetCancellationOverview(c *gin.Context) {
	overview, err := ctrl.service.GetCancellationOverview(c.Request.Context())
	if err != nil {
		response.RespondServerError(c, "Failed to load cancellation analytics", err, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Cancellation analytics retrieved successfully", overview, nil)
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
