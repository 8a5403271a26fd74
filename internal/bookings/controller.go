package bookings

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"busgo/internal/shared/middleware"
	"busgo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// TicketRenderer turns a printable booking into a document.
type TicketRenderer interface {
	Render(b *Booking) ([]byte, error)
	ContentType() string
}

type Controller struct {
	service  Service
	renderer TicketRenderer
}

func NewController(service Service, renderer TicketRenderer) *Controller {
	return &Controller{service: service, renderer: renderer}
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	views, err := c.service.List(ctx.Request.Context(), userID, time.Now())
	if err != nil {
		response.RespondServerError(ctx, "Failed to get bookings", err, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": views,
		"count":    len(views),
	}, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	view, err := c.service.Get(ctx.Request.Context(), userID, ctx.Param("id"), time.Now())
	if err != nil {
		c.handleError(ctx, err, "Failed to get booking")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", view, nil)
}

// RateBooking handles POST /api/v1/bookings/:id/rate
func (c *Controller) RateBooking(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	rating, err := c.service.Rate(ctx.Request.Context(), userID, ctx.Param("id"), req, time.Now())
	if err != nil {
		c.handleError(ctx, err, "Failed to rate booking")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Thank you for rating your journey", rating, nil)
}

// DownloadTicket handles GET /api/v1/bookings/:id/ticket
func (c *Controller) DownloadTicket(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.Ticket(ctx.Request.Context(), userID, ctx.Param("id"), time.Now())
	if err != nil {
		c.handleError(ctx, err, "Failed to print ticket")
		return
	}

	doc, err := c.renderer.Render(booking)
	if err != nil {
		response.RespondServerError(ctx, "Failed to render ticket", err, err.Error())
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, booking.BookingID))
	ctx.Data(http.StatusOK, c.renderer.ContentType(), doc)
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrAlreadyRated):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrNotRateable), errors.Is(err, ErrNotPrintable):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	default:
		response.RespondServerError(ctx, fallback, err, err.Error())
	}
}
