package inventory

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// SeatsPerTrip is the fixed layout size of every bus.
const SeatsPerTrip = 40

const (
	availabilityThreshold = 0.4
	femaleReservedSeats   = 4
)

var durationPattern = regexp.MustCompile(`(\d+)h\s*(\d+)m`)

// ExpandRouteToTrips produces one trip per departure timing of the template,
// each with its own seat layout drawn from rng. Arrival wraps at midnight and
// ArrivalDayOffset counts the days crossed.
func ExpandRouteToTrips(tpl RouteTemplate, index int, rng *rand.Rand) ([]TripInstance, error) {
	timings := strings.Split(tpl.DepartureTimings, ",")
	durationMinutes := parseDuration(tpl.Duration)

	busType := BusTypeUltraDeluxe
	if tpl.Type == "A/C" {
		busType = BusTypeAC
	}

	trips := make([]TripInstance, 0, len(timings))
	for slot, raw := range timings {
		raw = strings.TrimSpace(raw)
		depMinutes, err := parseTiming(raw)
		if err != nil {
			return nil, fmt.Errorf("route %s timing %q: %w", tpl.RouteNo, raw, err)
		}

		arrival := depMinutes + durationMinutes
		trips = append(trips, TripInstance{
			ID:               fmt.Sprintf("%s-%d-%d", tpl.RouteNo, index, slot),
			RouteNo:          tpl.RouteNo,
			Name:             "SETC Route " + tpl.RouteNo,
			From:             tpl.From,
			To:               tpl.To,
			DepartureTime:    strings.Replace(raw, ".", ":", 1),
			DepartureMinutes: depMinutes,
			ArrivalTime:      clock(arrival % (24 * 60)),
			ArrivalDayOffset: arrival / (24 * 60),
			Duration:         tpl.Duration,
			Price:            tpl.Price,
			Rating:           tpl.Rating,
			BusType:          busType,
			Seats:            generateSeats(rng),
		})
	}
	return trips, nil
}

func generateSeats(rng *rand.Rand) []Seat {
	seats := make([]Seat, SeatsPerTrip)
	for i := range seats {
		seat := Seat{
			ID:          i + 1,
			Number:      fmt.Sprintf("S%d", i+1),
			IsAvailable: rng.Float64() > availabilityThreshold,
		}
		if !seat.IsAvailable {
			seat.Gender = GenderMale
			if rng.Float64() <= 0.5 {
				seat.Gender = GenderFemale
			}
		} else if i < femaleReservedSeats {
			seat.ReservedFor = GenderFemale
		}
		seats[i] = seat
	}
	return seats
}

// parseTiming reads "H.MM" (or a bare hour) into minutes after midnight.
func parseTiming(s string) (int, error) {
	hourPart, minutePart, _ := strings.Cut(s, ".")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidTiming
	}
	minute := 0
	if minutePart != "" {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return 0, ErrInvalidTiming
		}
	}
	return hour*60 + minute, nil
}

// parseDuration yields zero when the string does not match "<h>h <m>m".
func parseDuration(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return h*60 + mins
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Validate checks that every departure timing parses and the fare is positive.
func (tpl RouteTemplate) Validate() error {
	if strings.TrimSpace(tpl.DepartureTimings) == "" {
		return ErrInvalidTiming
	}
	for _, raw := range strings.Split(tpl.DepartureTimings, ",") {
		if _, err := parseTiming(strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("timing %q: %w", raw, err)
		}
	}
	if tpl.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	return nil
}
