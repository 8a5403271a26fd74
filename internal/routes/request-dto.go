package routes

type CreateRouteRequest struct {
	RouteNo          string  `json:"route_no" binding:"required,max=20"`
	From             string  `json:"from" binding:"required,max=100"`
	To               string  `json:"to" binding:"required,max=100"`
	DepartureTimings string  `json:"departure_timings" binding:"required"`
	Duration         string  `json:"duration" binding:"required"`
	Price            float64 `json:"price" binding:"required,gt=0"`
	Rating           float64 `json:"rating" binding:"gte=0,lte=5"`
	Type             string  `json:"type" binding:"required,oneof=A/C 'Ultra Deluxe'"`
}
