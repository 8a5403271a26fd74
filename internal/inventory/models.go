package inventory

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"

	BusTypeAC          = "AC Buses"
	BusTypeUltraDeluxe = "Ultra Deluxe Buses"
)

// Seat is one position in a trip's layout. Gender is only set on occupied
// seats and ReservedFor only on available ones.
type Seat struct {
	ID          int    `json:"id"`
	Number      string `json:"number"`
	IsAvailable bool   `json:"is_available"`
	Gender      string `json:"gender,omitempty"`
	ReservedFor string `json:"reserved_for,omitempty"`
}

// TripInstance is a bus on one scheduled departure of a route template.
type TripInstance struct {
	ID               string  `json:"id"`
	RouteNo          string  `json:"route_no"`
	Name             string  `json:"name"`
	From             string  `json:"from"`
	To               string  `json:"to"`
	DepartureTime    string  `json:"departure_time"`
	DepartureMinutes int     `json:"departure_minutes"`
	ArrivalTime      string  `json:"arrival_time"`
	ArrivalDayOffset int     `json:"arrival_day_offset"`
	Duration         string  `json:"duration"`
	Price            float64 `json:"price"`
	Rating           float64 `json:"rating"`
	BusType          string  `json:"bus_type"`
	Seats            []Seat  `json:"seats"`
}

// DepartureHour is the hour of day the trip leaves.
func (t TripInstance) DepartureHour() int {
	return t.DepartureMinutes / 60
}

// DepartureOn returns the absolute departure instant for a journey date
// interpreted in loc.
func (t TripInstance) DepartureOn(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(t.DepartureMinutes) * time.Minute)
}

// Seat looks up a seat by id.
func (t TripInstance) Seat(id int) (Seat, bool) {
	for _, s := range t.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// RouteTemplate is a catalogue entry that expands into trip instances.
// DepartureTimings is a comma separated list of H.MM values and Duration
// follows "<h>h <m>m".
type RouteTemplate struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RouteNo          string    `gorm:"type:varchar(20);index;not null" json:"route_no"`
	From             string    `gorm:"column:from_city;type:varchar(100);index;not null" json:"from"`
	To               string    `gorm:"column:to_city;type:varchar(100);index;not null" json:"to"`
	DepartureTimings string    `gorm:"type:varchar(255);not null" json:"departure_timings"`
	Duration         string    `gorm:"type:varchar(20);not null" json:"duration"`
	Price            float64   `gorm:"not null" json:"price"`
	Rating           float64   `gorm:"default:0" json:"rating"`
	Type             string    `gorm:"type:varchar(30)" json:"type"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (RouteTemplate) TableName() string {
	return "route_templates"
}

type Passenger struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Age        int    `json:"age" validate:"gte=0,lte=120"`
	Gender     string `json:"gender" validate:"required,oneof=Male Female Other male female other"`
	SeatNumber string `json:"seat_number"`
	SeatID     int    `json:"seat_id"`
}

// PassengerCounts are the declared category counts from seat selection.
type PassengerCounts struct {
	Adults   int `json:"adults" validate:"gte=0"`
	Children int `json:"children" validate:"gte=0"`
}

func (c PassengerCounts) Total() int {
	return c.Adults + c.Children
}

type TimeSlot int

const (
	SlotNight TimeSlot = iota + 1
	SlotMorning
	SlotAfternoon
	SlotEvening
)

// SlotForHour buckets an hour of day into night [0,6), morning [6,12),
// afternoon [12,18) and evening [18,24).
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour < 6:
		return SlotNight
	case hour < 12:
		return SlotMorning
	case hour < 18:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

func (s TimeSlot) IsValid() bool {
	return s >= SlotNight && s <= SlotEvening
}

// Filters narrow a trip list. Zero values and empty sets do not restrict.
type Filters struct {
	MaxPrice  float64    `json:"max_price"`
	BusTypes  []string   `json:"bus_types"`
	TimeSlots []TimeSlot `json:"time_slots"`
	MinRating float64    `json:"min_rating"`
}
