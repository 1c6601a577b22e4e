package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/fare"
	"railbook/internal/pnr"
	"railbook/internal/seatmap"
	"railbook/internal/store"
	"railbook/internal/utils"
)

// Service performs the Payment -> Issued transition and ticket lifecycle
// operations against the record store.
type Service struct {
	Tickets       *store.TicketStore
	Priority      *store.PriorityStore
	Coach         seatmap.CoachConfig
	ServiceFee    float64
	SurchargeRate float64
	RequestID     string
}

func (s Service) coach() seatmap.CoachConfig {
	if s.Coach.Rows > 0 {
		return s.Coach
	}
	return seatmap.DefaultCoach()
}

// Issue finalizes a paid draft: re-checks seat occupancy, generates a
// verified-unique PNR, writes the companion priority application when one
// was requested (best effort; its failure never blocks issuance), and
// persists the ticket as Confirmed. The caller discards the draft on
// success.
func (s Service) Issue(ctx context.Context, d models.BookingDraft) (models.TicketRecord, error) {
	if d.Step != models.StepPayment {
		return models.TicketRecord{}, domain.ValidationError{Field: "step", Msg: "payment not reached"}
	}
	if d.Train == nil {
		return models.TicketRecord{}, domain.ValidationError{Field: "train", Msg: "required"}
	}
	if len(d.Seats) != d.PassengerCount {
		return models.TicketRecord{}, domain.ValidationError{Field: "seats", Msg: "select one seat per passenger"}
	}

	// Availability was derived when the seat map rendered; between then and
	// payment another session may have issued the same seats, and a draft
	// assembled outside the seat-selection flow may name seats the coach
	// does not have. Re-check both here so two confirmed tickets never share
	// a seat and no ticket ever references a seat outside the layout.
	cfg := s.coach()
	occupied := s.Tickets.Occupancy(ctx, d.Train.ID, d.Date)
	for _, seat := range d.Seats {
		if !cfg.Contains(seat) {
			return models.TicketRecord{}, domain.ValidationError{Field: "seats", Msg: seat + " is not a seat on this coach"}
		}
		if occupied[seat] {
			return models.TicketRecord{}, domain.ConflictError{Resource: "seat", Msg: seat + " was booked by another session"}
		}
	}

	code, err := pnr.GenerateUnique(func(candidate string) bool {
		return s.Tickets.PNRExists(ctx, candidate)
	})
	if err != nil {
		return models.TicketRecord{}, domain.InternalError{Msg: "pnr generation failed", Err: err}
	}

	if d.Priority {
		s.submitPriorityApplication(ctx, d, code)
	}

	unit := d.Train.Fare * fare.ClassMultiplier(d.FareClass)
	total := fare.ComputeTotal(unit, d.PassengerCount, s.ServiceFee, d.Priority, s.SurchargeRate)

	ticket := models.TicketRecord{
		ID:             uuid.NewString(),
		PNR:            code,
		OwnerID:        d.OwnerID,
		PassengerName:  d.PassengerName,
		Email:          d.Email,
		Phone:          d.Phone,
		TrainID:        d.Train.ID,
		TrainName:      d.Train.Name,
		Origin:         d.Origin,
		Destination:    d.Destination,
		Date:           d.Date,
		DepartureTime:  d.Train.DepartureTime,
		ArrivalTime:    d.Train.ArrivalTime,
		SeatNumbers:    append([]string(nil), d.Seats...),
		FareClass:      d.FareClass,
		PassengerCount: d.PassengerCount,
		TotalFare:      total,
		Status:         models.TicketConfirmed,
		CreatedAt:      time.Now(),
	}

	issued, err := s.Tickets.Add(ctx, ticket)
	if err != nil {
		return models.TicketRecord{}, domain.InternalError{Msg: "ticket could not be recorded", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "issue", "pnr="+issued.PNR)
	return issued, nil
}

// Document is optional: a ticket can be issued without its companion
// application existing when upload or persistence fails.
func (s Service) submitPriorityApplication(ctx context.Context, d models.BookingDraft, code string) {
	if s.Priority == nil {
		return
	}
	doc := d.Document
	if doc.URL == "" {
		utils.LogEvent(s.RequestID, "booking", "priority", "no document attached, skipping application")
		return
	}

	now := time.Now()
	app := models.PriorityTicketRecord{
		ID:            uuid.NewString(),
		PNR:           code,
		OwnerID:       d.OwnerID,
		PassengerName: d.PassengerName,
		Email:         d.Email,
		Phone:         d.Phone,
		TrainID:       d.Train.ID,
		Origin:        d.Origin,
		Destination:   d.Destination,
		Date:          d.Date,
		FareClass:     d.FareClass,
		PriorityType:  d.PriorityType,
		DocumentURL:   doc.URL,
		DocumentName:  doc.Name,
		Status:        models.PriorityPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.Priority.Add(ctx, app); err != nil {
		utils.LogEvent(s.RequestID, "booking", "priority", "application write failed, ticket continues: "+err.Error())
	}
}

// Cancel is the explicit Confirmed/Waiting -> Cancelled transition on an
// issued ticket. Only the owner or an admin may cancel.
func (s Service) Cancel(ctx context.Context, rc domain.RequestContext, code string) (models.TicketRecord, error) {
	ticket, ok := s.Tickets.Get(ctx, code)
	if !ok {
		return models.TicketRecord{}, domain.NotFoundError{Resource: "ticket"}
	}
	if !rc.IsAdmin() && ticket.OwnerID != rc.UserID {
		return models.TicketRecord{}, domain.ForbiddenError{Action: "cancel another passenger's ticket"}
	}
	if !ticket.CanCancel() {
		return models.TicketRecord{}, domain.ConflictError{
			Resource: "ticket",
			Msg:      fmt.Sprintf("status %s cannot be cancelled", ticket.Status),
		}
	}

	out, err := s.Tickets.UpdateStatus(ctx, code, models.TicketCancelled)
	if err != nil {
		return models.TicketRecord{}, domain.InternalError{Msg: "cancellation could not be recorded", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", "pnr="+code)
	return out, nil
}

// ListFor returns the caller's tickets; admins read everything.
func (s Service) ListFor(ctx context.Context, rc domain.RequestContext) []models.TicketRecord {
	all := s.Tickets.List(ctx)
	if rc.IsAdmin() {
		return all
	}
	out := make([]models.TicketRecord, 0, len(all))
	for _, t := range all {
		if t.OwnerID == rc.UserID {
			out = append(out, t)
		}
	}
	return out
}
