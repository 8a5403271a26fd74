// Command smoke walks a seeded user through search, checkout and
// cancellation against a running server and reports each step.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"busgo/internal/inventory"
	"busgo/internal/shared/config"
	"busgo/internal/shared/constants"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type StepResult struct {
	Step         string        `json:"step"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

type SmokeSuite struct {
	BaseURL string
	Token   string
	Results []StepResult
	client  *http.Client
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	baseURL := flag.String("base", "http://localhost:"+cfg.Port+cfg.GetAPIBasePath(), "API base URL")
	phone := flag.String("phone", "9876543210", "seeded user phone")
	password := flag.String("password", "qwerty", "seeded user password")
	report := flag.String("report", "", "write JSON results to this file")
	flag.Parse()

	suite := &SmokeSuite{
		BaseURL: *baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	fmt.Println("🧪 Starting booking flow smoke test...")
	fmt.Println("=====================================")

	var rdb *redis.Client
	if !cfg.UseMemoryStorage() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		fmt.Println("✅ Redis connection: OK")
	}

	// City list is cached on first read
	var cities []string
	suite.call("Cities (cold)", http.MethodGet, "/routes/cities", nil, &cities)
	suite.call("Cities (warm)", http.MethodGet, "/routes/cities", nil, &cities)
	if rdb != nil {
		n, err := rdb.Exists(context.Background(), constants.CACHE_KEY_ROUTE_CITIES).Result()
		if err != nil || n == 0 {
			fmt.Println("   ❌ city list was not cached in Redis")
		} else {
			fmt.Println("   🔥 city list cached in Redis")
		}
	}

	var templates []inventory.RouteTemplate
	if !suite.call("List routes", http.MethodGet, "/routes", nil, &templates) || len(templates) == 0 {
		suite.finish(*report)
		log.Fatal("❌ no routes in catalogue, run the seeder first")
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if !suite.call("Login", http.MethodPost, "/auth/login", map[string]string{"identifier": *phone, "password": *password}, &auth) {
		suite.finish(*report)
		log.Fatal("❌ login failed, run the seeder first")
	}
	suite.Token = auth.AccessToken

	tomorrow := time.Now().In(cfg.Location()).AddDate(0, 0, 1).Format(inventory.DateLayout)
	var search inventory.Search
	suite.call("Search", http.MethodPost, "/searches", inventory.SearchParams{From: templates[0].From, To: templates[0].To, Date: tomorrow}, &search)

	trip, seat, ok := pickSeat(search.Trips)
	if !ok {
		suite.finish(*report)
		log.Fatal("❌ no open seat in any trip")
	}
	fmt.Printf("   🚌 %s at %s, seat %s\n", trip.Name, trip.DepartureTime, seat.Number)

	var booking struct {
		BookingID  string  `json:"booking_id"`
		TotalPrice float64 `json:"total_price"`
	}
	steps := []struct {
		name   string
		method string
		path   string
		body   interface{}
		dest   interface{}
	}{
		{"Select trip", http.MethodPost, "/checkout/trip", map[string]string{"search_id": search.ID, "trip_id": trip.ID}, nil},
		{"Select seats", http.MethodPost, "/checkout/seats", map[string]interface{}{"seat_ids": []int{seat.ID}, "adults": 1}, nil},
		{"Passenger details", http.MethodPost, "/checkout/details", map[string]interface{}{
			"passengers": []inventory.Passenger{{Name: "Smoke Tester", Age: 30, Gender: "Male"}},
		}, nil},
		{"Apply coupon", http.MethodPost, "/checkout/coupon", map[string]string{"code": "FIRST10"}, nil},
		{"Payment intent", http.MethodGet, "/checkout/payment-intent", nil, nil},
		{"Pay", http.MethodPost, "/checkout/pay", map[string]string{"method": "upi", "upi_id": "smoke@upi"}, &booking},
	}
	for _, step := range steps {
		if !suite.call(step.name, step.method, step.path, step.body, step.dest) {
			suite.finish(*report)
			os.Exit(1)
		}
	}
	fmt.Printf("   🎫 booked %s for ₹%.2f\n", booking.BookingID, booking.TotalPrice)

	suite.call("My bookings", http.MethodGet, "/users/bookings", nil, nil)
	suite.call("Cancellation quote", http.MethodGet, "/bookings/"+booking.BookingID+"/cancellation-quote", nil, nil)
	suite.call("Cancel", http.MethodPost, "/bookings/"+booking.BookingID+"/cancel", map[string]interface{}{"confirm": true, "reason": "smoke test"}, nil)

	suite.finish(*report)
}

// pickSeat returns the first open seat a male passenger may take.
func pickSeat(trips []inventory.TripInstance) (inventory.TripInstance, inventory.Seat, bool) {
	for _, trip := range trips {
		for _, seat := range trip.Seats {
			if seat.IsAvailable && seat.ReservedFor == "" {
				return trip, seat, true
			}
		}
	}
	return inventory.TripInstance{}, inventory.Seat{}, false
}

func (s *SmokeSuite) call(step, method, path string, body, dest interface{}) bool {
	result := StepResult{Step: step}
	start := time.Now()
	defer func() {
		result.ResponseTime = time.Since(start)
		s.Results = append(s.Results, result)

		statusIcon := "✅"
		if !result.Success {
			statusIcon = "❌"
		}
		fmt.Printf("%s %-20s %3d %v %s\n", statusIcon, step, result.StatusCode, result.ResponseTime, result.Error)
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			result.Error = err.Error()
			return false
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	if err != nil {
		result.Error = err.Error()
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return false
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = err.Error()
		return false
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)
	if resp.StatusCode >= 400 {
		result.Error = env.Message
		return false
	}
	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			result.Error = "decode: " + err.Error()
			return false
		}
	}
	result.Success = true
	return true
}

func (s *SmokeSuite) finish(reportPath string) {
	fmt.Println("\n📊 SMOKE TEST REPORT")
	fmt.Println("====================")

	passed := 0
	var total time.Duration
	for _, r := range s.Results {
		if r.Success {
			passed++
		}
		total += r.ResponseTime
	}
	fmt.Printf("Steps: %d\n", len(s.Results))
	fmt.Printf("Passed: %d\n", passed)
	if len(s.Results) > 0 {
		fmt.Printf("Average response time: %v\n", total/time.Duration(len(s.Results)))
	}

	if reportPath == "" {
		return
	}
	data, err := json.MarshalIndent(map[string]interface{}{
		"summary": map[string]int{"steps": len(s.Results), "passed": passed},
		"results": s.Results,
	}, "", "  ")
	if err != nil {
		log.Printf("failed to encode report: %v", err)
		return
	}
	if err := os.WriteFile(reportPath, data, 0o644); err != nil {
		log.Printf("failed to write report: %v", err)
		return
	}
	fmt.Printf("💾 Detailed results saved to %s\n", reportPath)
}
