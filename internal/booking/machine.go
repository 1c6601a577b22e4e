// Package booking implements the reservation workflow: a pure state
// transition function over the booking draft, a train catalog, and the
// issuing service that turns a paid draft into a ticket record. The form
// handlers and the chat adapter both drive the same transition function.
package booking

import (
	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/seatmap"
	"railbook/internal/utils"
)

// MaxPassengers caps one booking, matching the coach-sized party limit.
const MaxPassengers = 6

// Input is one event fed to the booking state machine.
type Input interface {
	isBookingInput()
}

// SubmitSearch carries the journey criteria and passenger contact for the
// Search -> TrainSelection transition.
type SubmitSearch struct {
	Origin         string
	Destination    string
	Date           string
	PassengerCount int
	FareClass      string
	Priority       bool
	PriorityType   string
	PassengerName  string
	Email          string
	Phone          string
}

// SelectTrain picks one candidate train. Sold-out trains are a no-op.
type SelectTrain struct {
	Train models.Train
}

// ToggleSeat applies one seat tap within SeatSelection. It never changes
// the step. Coach bounds the valid seat ids; the zero value means the
// standard coach.
type ToggleSeat struct {
	SeatID   string
	Occupied map[string]bool
	Coach    seatmap.CoachConfig
}

// ConfirmSeats gates the SeatSelection -> Payment transition: the selection
// must cover every passenger.
type ConfirmSeats struct{}

func (SubmitSearch) isBookingInput() {}
func (SelectTrain) isBookingInput()  {}
func (ToggleSeat) isBookingInput()   {}
func (ConfirmSeats) isBookingInput() {}

// NewDraft starts a session draft at the search step.
func NewDraft(ownerID string) models.BookingDraft {
	return models.BookingDraft{Step: models.StepSearch, OwnerID: ownerID}
}

// Apply advances the draft by one input. It is pure: the given draft is
// never mutated, and all side effects (persistence, PNR issuance) belong to
// Service.Issue. Inputs arriving in the wrong step fail validation; inputs
// the contract defines as silent no-ops (sold-out train, full selection)
// return the draft unchanged with no error.
func Apply(d models.BookingDraft, in Input) (models.BookingDraft, error) {
	switch input := in.(type) {
	case SubmitSearch:
		return applySearch(d, input)
	case SelectTrain:
		return applyTrain(d, input)
	case ToggleSeat:
		return applySeat(d, input)
	case ConfirmSeats:
		return applyConfirmSeats(d)
	default:
		return d, domain.ValidationError{Field: "input", Msg: "unknown booking input"}
	}
}

func applySearch(d models.BookingDraft, in SubmitSearch) (models.BookingDraft, error) {
	if d.Step != models.StepSearch {
		return d, domain.ValidationError{Field: "step", Msg: "journey criteria already submitted"}
	}

	in.Origin = utils.CleanSpace(in.Origin)
	in.Destination = utils.CleanSpace(in.Destination)
	in.PassengerName = utils.CleanSpace(in.PassengerName)
	in.Email = utils.CleanSpace(in.Email)
	in.Phone = utils.CleanSpace(in.Phone)

	switch {
	case in.Origin == "":
		return d, domain.ValidationError{Field: "origin", Msg: "required"}
	case in.Destination == "":
		return d, domain.ValidationError{Field: "destination", Msg: "required"}
	case in.Origin == in.Destination:
		return d, domain.ValidationError{Field: "destination", Msg: "must differ from origin"}
	case !utils.ValidDate(in.Date):
		return d, domain.ValidationError{Field: "date", Msg: "invalid date (YYYY-MM-DD)"}
	case in.PassengerCount < 1 || in.PassengerCount > MaxPassengers:
		return d, domain.ValidationError{Field: "passenger_count", Msg: "must be between 1 and 6"}
	case !models.ValidFareClass(in.FareClass):
		return d, domain.ValidationError{Field: "fare_class", Msg: "unknown fare class"}
	case in.PassengerName == "":
		return d, domain.ValidationError{Field: "passenger_name", Msg: "required"}
	case in.Email == "":
		return d, domain.ValidationError{Field: "email", Msg: "required"}
	case in.Phone == "":
		return d, domain.ValidationError{Field: "phone", Msg: "required"}
	case in.Priority && !models.ValidPriorityType(in.PriorityType):
		return d, domain.ValidationError{Field: "priority_type", Msg: "unknown priority type"}
	}

	d.Origin = in.Origin
	d.Destination = in.Destination
	d.Date = in.Date
	d.PassengerCount = in.PassengerCount
	d.FareClass = in.FareClass
	d.Priority = in.Priority
	d.PriorityType = in.PriorityType
	d.PassengerName = in.PassengerName
	d.Email = in.Email
	d.Phone = in.Phone
	d.Step = models.StepTrainSelect
	return d, nil
}

func applyTrain(d models.BookingDraft, in SelectTrain) (models.BookingDraft, error) {
	if d.Step != models.StepTrainSelect {
		return d, domain.ValidationError{Field: "step", Msg: "not selecting a train"}
	}
	if in.Train.SoldOut {
		// sold-out selection is a no-op, not an error
		return d, nil
	}
	if in.Train.ID == "" {
		return d, domain.ValidationError{Field: "train", Msg: "required"}
	}
	train := in.Train
	d.Train = &train
	d.Seats = nil
	d.Step = models.StepSeatSelect
	return d, nil
}

func applySeat(d models.BookingDraft, in ToggleSeat) (models.BookingDraft, error) {
	if d.Step != models.StepSeatSelect {
		return d, domain.ValidationError{Field: "step", Msg: "not selecting seats"}
	}
	cfg := in.Coach
	if cfg.Rows == 0 {
		cfg = seatmap.DefaultCoach()
	}
	d.Seats = seatmap.SelectSeat(cfg, d.Seats, utils.NormalizeSeat(in.SeatID), in.Occupied, d.PassengerCount)
	return d, nil
}

func applyConfirmSeats(d models.BookingDraft) (models.BookingDraft, error) {
	if d.Step != models.StepSeatSelect {
		return d, domain.ValidationError{Field: "step", Msg: "not selecting seats"}
	}
	if len(d.Seats) != d.PassengerCount {
		return d, domain.ValidationError{Field: "seats", Msg: "select one seat per passenger"}
	}
	if utils.HasDuplicates(d.Seats) {
		return d, domain.ValidationError{Field: "seats", Msg: "duplicate seat"}
	}
	d.Step = models.StepPayment
	return d, nil
}
