package models

import "time"

// Ticket statuses. Transitions only move forward except the explicit
// cancellation of a Confirmed or Waiting ticket.
const (
	TicketConfirmed = "Confirmed"
	TicketWaiting   = "Waiting"
	TicketCancelled = "Cancelled"
)

// TicketRecord is the durable artifact of a completed booking. The PNR is
// generated at issuance and never reused, even after cancellation.
type TicketRecord struct {
	ID             string    `json:"id"`
	PNR            string    `json:"pnr"`
	OwnerID        string    `json:"owner_id"`
	PassengerName  string    `json:"passenger_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	TrainID        string    `json:"train_id"`
	TrainName      string    `json:"train_name"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Date           string    `json:"date"`
	DepartureTime  string    `json:"departure_time"`
	ArrivalTime    string    `json:"arrival_time"`
	SeatNumbers    []string  `json:"seat_numbers"`
	FareClass      string    `json:"fare_class"`
	PassengerCount int       `json:"passenger_count"`
	TotalFare      float64   `json:"total_fare"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CanCancel reports whether the explicit cancellation transition applies.
func (t TicketRecord) CanCancel() bool {
	return t.Status == TicketConfirmed || t.Status == TicketWaiting
}
