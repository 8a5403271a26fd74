package routes

import (
	"errors"
	"net/http"

	"busgo/internal/inventory"
	"busgo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListRoutes handles GET /api/v1/routes
func (c *Controller) ListRoutes(ctx *gin.Context) {
	templates, err := c.service.ListRoutes(ctx.Request.Context())
	if err != nil {
		response.RespondServerError(ctx, "Failed to list routes", err, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Routes retrieved successfully", templates, nil)
}

// CreateRoute handles POST /api/v1/admin/routes
func (c *Controller) CreateRoute(ctx *gin.Context) {
	var req CreateRouteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tpl, err := c.service.CreateRoute(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, inventory.ErrSameCity) || errors.Is(err, inventory.ErrInvalidTiming) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		response.RespondServerError(ctx, "Failed to create route", err, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Route created successfully", tpl, nil)
}
