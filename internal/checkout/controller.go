package checkout

import (
	"errors"
	"net/http"
	"time"

	"busgo/internal/bookings"
	"busgo/internal/inventory"
	"busgo/internal/shared/middleware"
	"busgo/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SelectTrip handles POST /api/v1/checkout/trip
func (c *Controller) SelectTrip(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req SelectTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	trip, err := c.service.SelectTrip(ctx.Request.Context(), userID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to select bus")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Bus selected", trip, nil)
}

// SelectSeats handles POST /api/v1/checkout/seats
func (c *Controller) SelectSeats(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req SelectSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	selection, err := c.service.SelectSeats(ctx.Request.Context(), userID, req)
	if err != nil {
		c.handleError(ctx, err, "Failed to select seats")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seats selected", selection, nil)
}

// SubmitDetails handles POST /api/v1/checkout/details
func (c *Controller) SubmitDetails(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req DetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	draft, err := c.service.SubmitDetails(ctx.Request.Context(), userID, req, time.Now())
	if err != nil {
		c.handleError(ctx, err, "Failed to save passenger details")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Passenger details saved", draft, nil)
}

// ApplyCoupon handles POST /api/v1/checkout/coupon
func (c *Controller) ApplyCoupon(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req CouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	draft, err := c.service.ApplyCoupon(ctx.Request.Context(), userID, req.Code)
	if err != nil {
		c.handleError(ctx, err, "Failed to apply coupon")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon applied", draft, nil)
}

// RemoveCoupon handles DELETE /api/v1/checkout/coupon
func (c *Controller) RemoveCoupon(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	draft, err := c.service.RemoveCoupon(ctx.Request.Context(), userID)
	if err != nil {
		c.handleError(ctx, err, "Failed to remove coupon")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Coupon removed", draft, nil)
}

// GetPaymentIntent handles GET /api/v1/checkout/payment-intent
func (c *Controller) GetPaymentIntent(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	intent, err := c.service.PaymentIntent(ctx.Request.Context(), userID)
	if err != nil {
		c.handleError(ctx, err, "Failed to create payment intent")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Payment intent created", intent, nil)
}

// Pay handles POST /api/v1/checkout/pay
func (c *Controller) Pay(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.Pay(ctx.Request.Context(), userID, req, time.Now())
	if err != nil {
		c.handleError(ctx, err, "Payment failed")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

// GetState handles GET /api/v1/checkout
func (c *Controller) GetState(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}

	state, err := c.service.State(ctx.Request.Context(), userID)
	if err != nil {
		c.handleError(ctx, err, "Failed to load checkout")
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout retrieved", state, nil)
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	var (
		validationErrs validator.ValidationErrors
		genderErr      *inventory.GenderMismatchError
		countErr       *inventory.PassengerCountMismatchError
	)

	switch {
	case errors.As(err, &validationErrs):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, validationErrs.Error())
	case errors.Is(err, inventory.ErrSearchNotFound), errors.Is(err, inventory.ErrTripNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrNoTripSelected), errors.Is(err, ErrNoSeatsSelected), errors.Is(err, ErrNoDraft):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.As(err, &genderErr):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, gin.H{
			"seat":         genderErr.SeatNumber,
			"reserved_for": genderErr.ReservedFor,
		})
	case errors.As(err, &countErr):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, countErr)
	case errors.Is(err, inventory.ErrSeatNotFound),
		errors.Is(err, inventory.ErrSeatUnavailable),
		errors.Is(err, inventory.ErrNoSeatsSelected),
		errors.Is(err, inventory.ErrUnaccompaniedMinor),
		errors.Is(err, ErrSeatCountMismatch),
		errors.Is(err, ErrInvalidCoupon),
		errors.Is(err, ErrCouponApplied):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, bookings.ErrDuplicateID):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Booking already recorded, retry payment", nil, nil)
	default:
		response.RespondServerError(ctx, fallback, err, err.Error())
	}
}
