package inventory

import "slices"

// FilterTrips keeps trips that pass every active filter.
func FilterTrips(trips []TripInstance, f Filters) []TripInstance {
	out := make([]TripInstance, 0, len(trips))
	for _, t := range trips {
		if f.MaxPrice > 0 && t.Price > f.MaxPrice {
			continue
		}
		if len(f.BusTypes) > 0 && !slices.Contains(f.BusTypes, t.BusType) {
			continue
		}
		if len(f.TimeSlots) > 0 && !slices.Contains(f.TimeSlots, SlotForHour(t.DepartureHour())) {
			continue
		}
		if f.MinRating > 0 && t.Rating < f.MinRating {
			continue
		}
		out = append(out, t)
	}
	return out
}
