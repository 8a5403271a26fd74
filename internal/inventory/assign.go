package inventory

import (
	"fmt"
	"strings"
)

const (
	childMinAge = 5
	adultMinAge = 12
)

// IsChildFare reports whether a passenger of this age pays the child fare.
// Infants under five travel on an adult-equivalent count.
func IsChildFare(age int) bool {
	return age >= childMinAge && age < adultMinAge
}

// AssignSeatsToPassengers pairs passengers with seats by position and checks
// them against the declared counts. Passengers are only stamped with their
// seat once every check has passed.
func AssignSeatsToPassengers(seats []Seat, passengers []Passenger, counts PassengerCounts) error {
	if counts.Adults == 0 && counts.Children > 0 {
		return ErrUnaccompaniedMinor
	}
	if len(passengers) != len(seats) || counts.Total() != len(seats) {
		adults, children := tally(passengers)
		return &PassengerCountMismatchError{
			ExpectedAdults:   counts.Adults,
			ExpectedChildren: counts.Children,
			ActualAdults:     adults,
			ActualChildren:   children,
		}
	}

	for i, seat := range seats {
		gender := strings.ToLower(strings.TrimSpace(passengers[i].Gender))
		if seat.ReservedFor != "" && seat.ReservedFor != gender {
			return &GenderMismatchError{
				SeatNumber:  seat.Number,
				ReservedFor: seat.ReservedFor,
				Gender:      gender,
			}
		}
	}

	adults, children := tally(passengers)
	if adults != counts.Adults || children != counts.Children {
		return &PassengerCountMismatchError{
			ExpectedAdults:   counts.Adults,
			ExpectedChildren: counts.Children,
			ActualAdults:     adults,
			ActualChildren:   children,
		}
	}

	for i := range passengers {
		passengers[i].SeatID = seats[i].ID
		passengers[i].SeatNumber = seats[i].Number
	}
	return nil
}

func tally(passengers []Passenger) (adults, children int) {
	for _, p := range passengers {
		if IsChildFare(p.Age) {
			children++
		} else {
			adults++
		}
	}
	return adults, children
}

// ValidateSelection resolves seat ids against the trip and requires every
// seat to exist, be available and be picked once.
func ValidateSelection(trip TripInstance, seatIDs []int) ([]Seat, error) {
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}
	seen := make(map[int]bool, len(seatIDs))
	selected := make([]Seat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := trip.Seat(id)
		if !ok {
			return nil, fmt.Errorf("seat %d: %w", id, ErrSeatNotFound)
		}
		if !seat.IsAvailable || seen[id] {
			return nil, fmt.Errorf("seat %s: %w", seat.Number, ErrSeatUnavailable)
		}
		seen[id] = true
		selected = append(selected, seat)
	}
	return selected, nil
}
