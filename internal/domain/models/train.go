package models

// Train is one candidate service for a journey query. Fare is the per-seat
// price for the economy class; class multipliers apply on top.
type Train struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Fare          float64 `json:"fare"`
	SoldOut       bool    `json:"sold_out"`
}
