package inventory

import (
	"errors"
	"net/http"
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

// tripQuery is the query form of Filters.
type tripQuery struct {
	MaxPrice  float64  `form:"max_price" binding:"gte=0"`
	BusTypes  []string `form:"bus_type"`
	Slots     []int    `form:"slot"`
	MinRating float64  `form:"min_rating" binding:"gte=0,lte=5"`
}

// CreateSearch handles POST /api/v1/searches
func (c *Controller) CreateSearch(ctx *gin.Context) {
	var req SearchParams
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	search, err := c.service.Search(ctx.Request.Context(), req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrSameCity), errors.Is(err, ErrPastDate), errors.Is(err, ErrInvalidDate):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondServerError(ctx, "Failed to search routes", err, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Search created successfully", search, nil)
}

// GetTrips handles GET /api/v1/searches/:id/trips
func (c *Controller) GetTrips(ctx *gin.Context) {
	var q tripQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid filters", nil, err.Error())
		return
	}

	filters := Filters{
		MaxPrice:  q.MaxPrice,
		BusTypes:  q.BusTypes,
		MinRating: q.MinRating,
	}
	for _, v := range q.Slots {
		slot := TimeSlot(v)
		if !slot.IsValid() {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid departure time slot", nil, nil)
			return
		}
		filters.TimeSlots = append(filters.TimeSlots, slot)
	}

	trips, err := c.service.Trips(ctx.Request.Context(), ctx.Param("id"), filters)
	if err != nil {
		if errors.Is(err, ErrSearchNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
			return
		}
		response.RespondServerError(ctx, "Failed to load trips", err, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trips retrieved successfully", gin.H{
		"trips": trips,
		"count": len(trips),
	}, nil)
}

// GetCities handles GET /api/v1/routes/cities
func (c *Controller) GetCities(ctx *gin.Context) {
	cities, err := c.service.Cities(ctx.Request.Context())
	if err != nil {
		response.RespondServerError(ctx, "Failed to load cities", err, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Cities retrieved successfully", cities, nil)
}
