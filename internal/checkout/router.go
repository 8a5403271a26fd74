package checkout

import (
	"busgo/internal/shared/config"
	"busgo/internal/shared/middleware"
	"busgo/internal/users"

	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes configures the booking flow from trip selection to payment
func SetupCheckoutRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.JWTAuth(cfg), middleware.RequireRoles(users.RoleUser, users.RoleAdmin))
	{
		checkout.GET("", controller.GetState)                        // GET /api/v1/checkout
		checkout.POST("/trip", controller.SelectTrip)                // POST /api/v1/checkout/trip
		checkout.POST("/seats", controller.SelectSeats)              // POST /api/v1/checkout/seats
		checkout.POST("/details", controller.SubmitDetails)          // POST /api/v1/checkout/details
		checkout.POST("/coupon", controller.ApplyCoupon)             // POST /api/v1/checkout/coupon
		checkout.DELETE("/coupon", controller.RemoveCoupon)          // DELETE /api/v1/checkout/coupon
		checkout.GET("/payment-intent", controller.GetPaymentIntent) // GET /api/v1/checkout/payment-intent
		checkout.POST("/pay", controller.Pay)                        // POST /api/v1/checkout/pay
	}
}

// Route definitions for reference:
//
// POST   /api/v1/checkout/trip
// Request body: { "search_id": "...", "trip_id": "101-0-2" }
//        Starts a new checkout and drops anything left from an earlier one.
//
// POST   /api/v1/checkout/seats
// Request body: { "seat_ids": [5, 6], "adults": 1, "children": 1 }
//
// POST   /api/v1/checkout/details
// Request body: {
//   "passengers": [{ "name": "Asha", "age": 34, "gender": "Female" }, ...],
//   "primary_contact": { "name": "Asha", "mobile": "9876543210" }
// }
//        primary_contact falls back to the account profile when omitted.
//
// POST   /api/v1/checkout/coupon          { "code": "FIRST10" }
// DELETE /api/v1/checkout/coupon
//
// GET    /api/v1/checkout/payment-intent  - UPI deep link for the QR code, valid 5 minutes
//
// POST   /api/v1/checkout/pay
// Request body: { "method": "upi", "upi_id": "asha@okbank" }
//        Appends the booking to the ledger and clears the session.
