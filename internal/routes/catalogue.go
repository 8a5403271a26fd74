package routes

import "busgo/internal/inventory"

// DefaultCatalogue is the SETC route set loaded by cmd/seed and by the
// in-memory storage driver.
func DefaultCatalogue() []inventory.RouteTemplate {
	return []inventory.RouteTemplate{
		{RouteNo: "101", From: "Chennai", To: "Madurai", DepartureTimings: "6.30, 13.00, 21.00, 22.30", Duration: "8h 45m", Price: 650, Rating: 4.3, Type: "A/C"},
		{RouteNo: "102", From: "Chennai", To: "Madurai", DepartureTimings: "7.15, 20.15", Duration: "9h 30m", Price: 480, Rating: 3.9, Type: "Ultra Deluxe"},
		{RouteNo: "180", From: "Chennai", To: "Coimbatore", DepartureTimings: "8.00, 21.30, 23.00", Duration: "9h 15m", Price: 620, Rating: 4.1, Type: "A/C"},
		{RouteNo: "181", From: "Chennai", To: "Coimbatore", DepartureTimings: "19.45", Duration: "10h 0m", Price: 455, Rating: 3.7, Type: "Ultra Deluxe"},
		{RouteNo: "122", From: "Chennai", To: "Tiruchirappalli", DepartureTimings: "5.45, 10.30, 15.00, 22.00", Duration: "6h 20m", Price: 390, Rating: 4.0, Type: "Ultra Deluxe"},
		{RouteNo: "282", From: "Chennai", To: "Kanyakumari", DepartureTimings: "17.30, 19.00", Duration: "12h 30m", Price: 890, Rating: 4.4, Type: "A/C"},
		{RouteNo: "460", From: "Chennai", To: "Bengaluru", DepartureTimings: "6.00, 14.30, 22.45", Duration: "6h 50m", Price: 560, Rating: 4.2, Type: "A/C"},
		{RouteNo: "301", From: "Madurai", To: "Chennai", DepartureTimings: "7.00, 20.30, 22.00", Duration: "8h 45m", Price: 650, Rating: 4.2, Type: "A/C"},
		{RouteNo: "540", From: "Coimbatore", To: "Chennai", DepartureTimings: "20.00, 21.45", Duration: "9h 15m", Price: 620, Rating: 4.0, Type: "A/C"},
		{RouteNo: "610", From: "Salem", To: "Puducherry", DepartureTimings: "9.30, 23.15", Duration: "4h 40m", Price: 310, Rating: 3.8, Type: "Ultra Deluxe"},
		{RouteNo: "725", From: "Tirunelveli", To: "Chennai", DepartureTimings: "18.15", Duration: "11h 5m", Price: 780, Rating: 4.1, Type: "A/C"},
		{RouteNo: "830", From: "Vellore", To: "Madurai", DepartureTimings: "6.45, 21.15", Duration: "7h 30m", Price: 520, Rating: 3.6, Type: "Ultra Deluxe"},
	}
}
