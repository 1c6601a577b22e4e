package models

// Booking steps in order. A draft only ever moves forward; Issued is final
// for the workflow instance.
const (
	StepSearch      = "search"
	StepTrainSelect = "train_selection"
	StepSeatSelect  = "seat_selection"
	StepPayment     = "payment"
	StepIssued      = "issued"
)

// Fare classes.
const (
	ClassEconomy  = "Economy"
	ClassBusiness = "Business"
	ClassFirst    = "First"
)

// ValidFareClass reports whether c is a bookable class.
func ValidFareClass(c string) bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

// BookingDraft is the session-scoped in-progress state of a booking. It is
// never persisted; completion or abandonment discards it.
type BookingDraft struct {
	Step           string   `json:"step"`
	OwnerID        string   `json:"owner_id"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	Date           string   `json:"date"`
	PassengerCount int      `json:"passenger_count"`
	FareClass      string   `json:"fare_class"`
	Priority       bool     `json:"priority"`
	PriorityType   string   `json:"priority_type"`
	PassengerName  string   `json:"passenger_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Train          *Train   `json:"train,omitempty"`
	Seats          []string `json:"seats"`

	// Document is the uploaded priority proof, set before payment when the
	// draft requests priority status.
	Document DocumentRef `json:"document"`
}
