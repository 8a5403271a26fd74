package constants

import (
	"fmt"
	"time"
)

// Redis key layout for BusGo.
// Pattern: busgo:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // route catalogue
	TTL_STATIC_SHORT = 6 * time.Hour  // city lists
)

// Session Data (lives for one booking journey)
const (
	TTL_SESSION_DEFAULT = 30 * time.Minute
	TTL_SEARCH_DEFAULT  = 30 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "busgo"
)

// ================== ROUTES MODULE ==================

const (
	CACHE_KEY_ROUTE_LIST   = CACHE_PREFIX + ":routes:list:all"
	CACHE_KEY_ROUTE_CITIES = CACHE_PREFIX + ":routes:cities:all"
)

const (
	TTL_ROUTE_LIST   = TTL_STATIC_LONG
	TTL_ROUTE_CITIES = TTL_STATIC_SHORT
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_OVERVIEW      = CACHE_PREFIX + ":analytics:bookings:overview"
	CACHE_KEY_ANALYTICS_CANCELLATIONS = CACHE_PREFIX + ":analytics:cancellations:overview"
)

const (
	TTL_ANALYTICS = 5 * time.Minute
)

// ================== SEARCH / SESSION ==================

const (
	SESSION_KEY_SEARCH = CACHE_PREFIX + ":search:"  // + search-id:{field}
	SESSION_KEY_USER   = CACHE_PREFIX + ":session:" // + user-id:{field}
)

// Checkout session fields, one key each.
const (
	SESSION_FIELD_SEARCH_PARAMS    = "searchParams"
	SESSION_FIELD_SELECTED_BUS     = "selectedBusData"
	SESSION_FIELD_SELECTED_SEATS   = "selectedSeats"
	SESSION_FIELD_PASSENGER_COUNTS = "passengerCounts"
	SESSION_FIELD_BOOKING_DETAILS  = "bookingDetails"
	SESSION_FIELD_INVENTORY        = "inventory"
)

// ================== RATE LIMIT ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit"
)

// ================== KEY BUILDERS ==================

func BuildSearchKey(searchID, field string) string {
	return fmt.Sprintf("%s%s:%s", SESSION_KEY_SEARCH, searchID, field)
}

func BuildUserSessionKey(userID, field string) string {
	return fmt.Sprintf("%s%s:%s", SESSION_KEY_USER, userID, field)
}

func BuildRateLimitKey(limitType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", RATE_LIMIT_PREFIX, limitType, identifier)
}
