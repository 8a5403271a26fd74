package inventory

import "strconv"

// ComputeFare charges children half the adult base price.
func ComputeFare(basePrice float64, adults, children int) float64 {
	return float64(adults)*basePrice + float64(children)*(basePrice/2)
}

// FormatFare renders a fare with two decimal places.
func FormatFare(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
