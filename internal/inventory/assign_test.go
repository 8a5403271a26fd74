package inventory

import (
	"errors"
	"testing"
)

func seatsFixture() []Seat {
	return []Seat{
		{ID: 2, Number: "S2", IsAvailable: true, ReservedFor: GenderFemale},
		{ID: 10, Number: "S10", IsAvailable: true},
	}
}

func TestAssignSeatsToPassengersGenderMismatch(t *testing.T) {
	passengers := []Passenger{
		{Name: "Ravi", Age: 30, Gender: "Male"},
		{Name: "Meena", Age: 28, Gender: "Female"},
	}
	err := AssignSeatsToPassengers(seatsFixture(), passengers, PassengerCounts{Adults: 2})

	var mismatch *GenderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected GenderMismatchError, got %v", err)
	}
	if mismatch.SeatNumber != "S2" {
		t.Fatalf("expected seat S2, got %s", mismatch.SeatNumber)
	}
	if passengers[0].SeatNumber != "" {
		t.Fatalf("passengers must not be stamped on failure")
	}
}

func TestAssignSeatsToPassengersUnaccompaniedMinor(t *testing.T) {
	seats := []Seat{{ID: 10, Number: "S10", IsAvailable: true}}
	passengers := []Passenger{{Name: "Kid", Age: 8, Gender: "male"}}
	err := AssignSeatsToPassengers(seats, passengers, PassengerCounts{Children: 1})
	if !errors.Is(err, ErrUnaccompaniedMinor) {
		t.Fatalf("expected ErrUnaccompaniedMinor, got %v", err)
	}
}

func TestAssignSeatsToPassengersCountMismatch(t *testing.T) {
	passengers := []Passenger{
		{Name: "Meena", Age: 28, Gender: "female"},
		{Name: "Arun", Age: 40, Gender: "male"},
	}
	err := AssignSeatsToPassengers(seatsFixture(), passengers, PassengerCounts{Adults: 1, Children: 1})

	var mismatch *PassengerCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected PassengerCountMismatchError, got %v", err)
	}
	if mismatch.ActualAdults != 2 || mismatch.ActualChildren != 0 {
		t.Fatalf("unexpected tally %+v", mismatch)
	}
}

func TestAssignSeatsToPassengersSeatCountMismatch(t *testing.T) {
	passengers := []Passenger{{Name: "Meena", Age: 28, Gender: "female"}}
	err := AssignSeatsToPassengers(seatsFixture(), passengers, PassengerCounts{Adults: 1})

	var mismatch *PassengerCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected PassengerCountMismatchError, got %v", err)
	}
}

func TestAssignSeatsToPassengersAgeRules(t *testing.T) {
	tests := []struct {
		name   string
		ages   [2]int
		counts PassengerCounts
		ok     bool
	}{
		{"infant counts as adult", [2]int{30, 3}, PassengerCounts{Adults: 2}, true},
		{"five is a child", [2]int{30, 5}, PassengerCounts{Adults: 1, Children: 1}, true},
		{"eleven is a child", [2]int{30, 11}, PassengerCounts{Adults: 1, Children: 1}, true},
		{"twelve is an adult", [2]int{30, 12}, PassengerCounts{Adults: 1, Children: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passengers := []Passenger{
				{Name: "Meena", Age: tt.ages[0], Gender: "female"},
				{Name: "Second", Age: tt.ages[1], Gender: "male"},
			}
			err := AssignSeatsToPassengers(seatsFixture(), passengers, tt.counts)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestAssignSeatsToPassengersStampsSeats(t *testing.T) {
	passengers := []Passenger{
		{Name: "Meena", Age: 28, Gender: "FEMALE"},
		{Name: "Arun", Age: 40, Gender: "male"},
	}
	if err := AssignSeatsToPassengers(seatsFixture(), passengers, PassengerCounts{Adults: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if passengers[0].SeatNumber != "S2" || passengers[1].SeatNumber != "S10" || passengers[1].SeatID != 10 {
		t.Fatalf("unexpected assignment %+v", passengers)
	}
}

func TestValidateSelection(t *testing.T) {
	trip := TripInstance{Seats: []Seat{
		{ID: 1, Number: "S1", IsAvailable: true, ReservedFor: GenderFemale},
		{ID: 2, Number: "S2", IsAvailable: false, Gender: GenderMale},
		{ID: 3, Number: "S3", IsAvailable: true},
	}}

	seats, err := ValidateSelection(trip, []int{3, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seats) != 2 || seats[0].Number != "S3" {
		t.Fatalf("unexpected seats %+v", seats)
	}

	if _, err := ValidateSelection(trip, []int{2}); !errors.Is(err, ErrSeatUnavailable) {
		t.Fatalf("expected ErrSeatUnavailable, got %v", err)
	}
	if _, err := ValidateSelection(trip, []int{3, 3}); !errors.Is(err, ErrSeatUnavailable) {
		t.Fatalf("expected duplicate to be rejected, got %v", err)
	}
	if _, err := ValidateSelection(trip, []int{41}); !errors.Is(err, ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
	if _, err := ValidateSelection(trip, nil); !errors.Is(err, ErrNoSeatsSelected) {
		t.Fatalf("expected ErrNoSeatsSelected, got %v", err)
	}
}
