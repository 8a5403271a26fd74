package bookings

type RateRequest struct {
	Stars  int    `json:"stars" binding:"required,min=1,max=5"`
	Review string `json:"review" binding:"max=500"`
}
