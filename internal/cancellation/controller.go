package cancellation

import (
	"errors"
	"net/http"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/shared/middleware"
	"busgo/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for cancellations
type Controller struct {
	service Service
}

// NewController creates a new cancellation controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetQuote handles GET /api/v1/bookings/:id/cancellation-quote
func (c *Controller) GetQuote(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	quote, err := c.service.Quote(ctx.Request.Context(), userID, ctx.Param("id"), time.Now())
	if err != nil {
		c.handleError(ctx, err, "Failed to quote cancellation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cancellation quote generated",
		"data":    quote,
	})
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	// Parse request body
	var req CancellationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	cancellation, err := c.service.Confirm(ctx.Request.Context(), userID, ctx.Param("id"), req, time.Now())
	if err != nil {
		c.handleError(ctx, err, "Failed to cancel booking")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cancellation successful",
		"data":    cancellation,
	})
}

// GetCancellation handles GET /api/v1/cancellations/:id
func (c *Controller) GetCancellation(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	cancellationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cancellation ID"})
		return
	}

	cancellation, err := c.service.GetCancellation(ctx.Request.Context(), userID, cancellationID)
	if err != nil {
		c.handleError(ctx, err, "Failed to get cancellation")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cancellation retrieved successfully",
		"data":    cancellation,
	})
}

// GetUserCancellations handles GET /api/v1/users/cancellations
func (c *Controller) GetUserCancellations(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	cancellations, err := c.service.GetUserCancellations(ctx.Request.Context(), userID)
	if err != nil {
		c.handleError(ctx, err, "Failed to get cancellations")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User cancellations retrieved successfully",
		"data":    cancellations,
		"count":   len(cancellations),
	})
}

// GetRefundPolicy handles GET /api/v1/refund-policy
func (c *Controller) GetRefundPolicy(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Refund policy retrieved successfully",
		"data":    c.service.RefundPolicy(),
	})
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	var rejected *bookings.RejectedError
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, ErrCancellationNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotConfirmed):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &rejected):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Cancellation not allowed",
			"details": rejected.Reason,
		})
	default:
		logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   fallback,
			"details": err.Error(),
		})
	}
}
