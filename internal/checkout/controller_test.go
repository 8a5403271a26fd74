package checkout

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"busgo/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewController(f.svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, f.userID.String())
		c.Next()
	})
	r.GET("/checkout", controller.GetState)
	r.POST("/checkout/trip", controller.SelectTrip)
	r.POST("/checkout/seats", controller.SelectSeats)
	r.POST("/checkout/details", controller.SubmitDetails)
	r.POST("/checkout/coupon", controller.ApplyCoupon)
	r.POST("/checkout/pay", controller.Pay)
	return r
}

func TestCheckoutEndpoints(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f)

	steps := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"pay before details", http.MethodPost, "/checkout/pay", `{"method":"upi","upi_id":"a@b"}`, http.StatusConflict},
		{"unknown search", http.MethodPost, "/checkout/trip", `{"search_id":"other","trip_id":"101-0-0"}`, http.StatusNotFound},
		{"missing trip id", http.MethodPost, "/checkout/trip", `{"search_id":"search-1"}`, http.StatusBadRequest},
		{"select trip", http.MethodPost, "/checkout/trip", `{"search_id":"search-1","trip_id":"101-0-0"}`, http.StatusOK},
		{"count mismatch", http.MethodPost, "/checkout/seats", `{"seat_ids":[2,3],"adults":1}`, http.StatusUnprocessableEntity},
		{"select seats", http.MethodPost, "/checkout/seats", `{"seat_ids":[2],"adults":1}`, http.StatusOK},
		{"bad passenger", http.MethodPost, "/checkout/details", `{"passengers":[{"name":"X","age":30,"gender":"Male"}]}`, http.StatusBadRequest},
		{"details", http.MethodPost, "/checkout/details", `{"passengers":[{"name":"Ravi","age":30,"gender":"Male"}]}`, http.StatusOK},
		{"bad coupon", http.MethodPost, "/checkout/coupon", `{"code":"NOPE"}`, http.StatusUnprocessableEntity},
		{"unknown method", http.MethodPost, "/checkout/pay", `{"method":"cash"}`, http.StatusBadRequest},
		{"pay", http.MethodPost, "/checkout/pay", `{"method":"netbanking","bank":"State Bank"}`, http.StatusCreated},
		{"pay twice", http.MethodPost, "/checkout/pay", `{"method":"netbanking","bank":"State Bank"}`, http.StatusConflict},
	}

	for _, step := range steps {
		req := httptest.NewRequest(step.method, step.path, strings.NewReader(step.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != step.want {
			t.Fatalf("%s: expected %d, got %d: %s", step.name, step.want, w.Code, w.Body.String())
		}
	}
}

func TestGetStateRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture()
	r := gin.New()
	r.GET("/checkout", NewController(f.svc).GetState)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/checkout", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
