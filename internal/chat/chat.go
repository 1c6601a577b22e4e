// Package chat drives the booking workflow one free-text message at a time.
// Two state machines share one append-only message log per session: a
// linear booking flow (each message answers the current prompt, no
// backtracking) and a question/status responder. The booking flow feeds the
// same transition function the form handlers use, so both front ends honor
// identical invariants.
package chat

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"railbook/internal/booking"
	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/store"
	"railbook/internal/utils"
)

var pnrInText = regexp.MustCompile(`PNR[A-Z0-9]{8}`)

// Message is one entry in a session's append-only log.
type Message struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Booking prompts, asked in order. An incorrect answer can only be fixed by
// completing the flow and rebooking.
const (
	promptSource = iota
	promptDestination
	promptDate
	promptFareClass
	promptName
	promptEmail
	promptPhone
	promptSeat
	promptDone
)

var promptText = map[int]string{
	promptSource:      "Where are you departing from?",
	promptDestination: "Where are you travelling to?",
	promptDate:        "What date are you travelling? (YYYY-MM-DD)",
	promptFareClass:   "Which class: Economy, Business or First?",
	promptName:        "What is the passenger's full name?",
	promptEmail:       "What email should the ticket go to?",
	promptPhone:       "What is a contact phone number?",
	promptSeat:        "Which seat would you like? (for example A15)",
}

type bookingFlow struct {
	prompt  int
	answers map[int]string
}

type session struct {
	messages []Message
	flow     *bookingFlow
}

// Adapter routes session messages. Sessions live in process memory: a
// booking draft is contractually session-scoped and never persisted
// mid-flow.
type Adapter struct {
	Catalog booking.Catalog
	Tickets *store.TicketStore
	// Issue performs the Payment -> Issued transition for a completed flow.
	Issue func(context.Context, models.BookingDraft) (models.TicketRecord, error)

	mu       sync.Mutex
	sessions map[string]*session
}

func (a *Adapter) session(id string) *session {
	if a.sessions == nil {
		a.sessions = make(map[string]*session)
	}
	s, ok := a.sessions[id]
	if !ok {
		s = &session{}
		a.sessions[id] = s
	}
	return s
}

// Messages returns a copy of the session log.
func (a *Adapter) Messages(sessionID string) []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.session(sessionID)
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Handle appends the user message, advances whichever machine applies, and
// returns the assistant reply (also appended).
func (a *Adapter) Handle(ctx context.Context, sessionID, ownerID, text string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.session(sessionID)
	text = utils.CleanSpace(text)
	s.messages = append(s.messages, Message{Role: "user", Text: text, At: time.Now()})

	var reply string
	if s.flow != nil {
		reply = a.advanceFlow(ctx, s, ownerID, text)
	} else {
		reply = a.answer(ctx, s, text)
	}
	s.messages = append(s.messages, Message{Role: "assistant", Text: reply, At: time.Now()})
	return reply
}

func (a *Adapter) answer(ctx context.Context, s *session, text string) string {
	lower := strings.ToLower(text)

	if code := pnrInText.FindString(strings.ToUpper(text)); code != "" {
		return a.trainStatus(ctx, code)
	}

	switch {
	case strings.Contains(lower, "book"):
		s.flow = &bookingFlow{prompt: promptSource, answers: map[int]string{}}
		return "Let's book your journey. " + promptText[promptSource]
	case strings.Contains(lower, "cancel"):
		return "To cancel, open your ticket from the tickets page and choose Cancel; only Confirmed or Waiting tickets can be cancelled."
	case strings.Contains(lower, "priority"):
		return "Priority tickets (Student, Old-Age, Medical) need a proof document and admin approval; apply during booking."
	case strings.Contains(lower, "refund"):
		return "Refunds for cancelled tickets are processed to the original payment method within 5-7 working days."
	case strings.Contains(lower, "status"):
		return "Send me your PNR (it looks like PNRABCD1234) and I'll look up the train status."
	default:
		return "I can book a ticket (say \"book\"), look up a PNR, or answer questions about cancellations, refunds and priority tickets."
	}
}

func (a *Adapter) trainStatus(ctx context.Context, code string) string {
	if a.Tickets == nil {
		return "Ticket lookup is unavailable right now."
	}
	ticket, ok := a.Tickets.Get(ctx, code)
	if !ok {
		return "No ticket found for " + code + "."
	}
	return "Ticket " + code + ": " + ticket.TrainName + " (" + ticket.TrainID + ") " +
		ticket.Origin + " to " + ticket.Destination + " on " + ticket.Date +
		", departs " + ticket.DepartureTime + ", status " + ticket.Status + "."
}

// advanceFlow treats text as the answer to the current prompt. Invalid
// answers re-ask the prompt without advancing; valid answers move on. The
// terminal prompt triggers issuance and reports the PNR or the failure.
func (a *Adapter) advanceFlow(ctx context.Context, s *session, ownerID, text string) string {
	flow := s.flow

	if msg, ok := validateAnswer(flow.prompt, text); !ok {
		return msg + " " + promptText[flow.prompt]
	}
	flow.answers[flow.prompt] = text
	flow.prompt++

	if flow.prompt < promptDone {
		return promptText[flow.prompt]
	}

	s.flow = nil
	ticket, err := a.submit(ctx, ownerID, flow.answers)
	if err != nil {
		return "Sorry, the booking could not be completed: " + err.Error() + ". Say \"book\" to try again."
	}
	return "Your ticket is booked! PNR " + ticket.PNR + " on " + ticket.TrainName +
		", seat " + strings.Join(ticket.SeatNumbers, ", ") + ", total " + utils.FormatMoney(ticket.TotalFare) + "."
}

func validateAnswer(prompt int, text string) (string, bool) {
	if text == "" {
		return "I need an answer.", false
	}
	switch prompt {
	case promptSource, promptDestination:
		if !booking.KnownStation(text) {
			return "I don't know that station.", false
		}
	case promptDate:
		if !utils.ValidDate(text) {
			return "That date doesn't look right.", false
		}
	case promptFareClass:
		if normalizeClass(text) == "" {
			return "Please pick Economy, Business or First.", false
		}
	case promptEmail:
		if !strings.Contains(text, "@") {
			return "That email doesn't look right.", false
		}
	}
	return "", true
}

func normalizeClass(s string) string {
	switch strings.ToLower(utils.CleanSpace(s)) {
	case "economy":
		return models.ClassEconomy
	case "business":
		return models.ClassBusiness
	case "first":
		return models.ClassFirst
	}
	return ""
}

// submit replays the collected answers through the booking state machine
// and performs the Payment -> Issued transition. Chat bookings carry one
// passenger and one seat.
func (a *Adapter) submit(ctx context.Context, ownerID string, answers map[int]string) (models.TicketRecord, error) {
	draft := booking.NewDraft(ownerID)

	draft, err := booking.Apply(draft, booking.SubmitSearch{
		Origin:         answers[promptSource],
		Destination:    answers[promptDestination],
		Date:           answers[promptDate],
		PassengerCount: 1,
		FareClass:      normalizeClass(answers[promptFareClass]),
		PassengerName:  answers[promptName],
		Email:          answers[promptEmail],
		Phone:          answers[promptPhone],
	})
	if err != nil {
		return models.TicketRecord{}, err
	}

	trains, err := a.Catalog.Search(ctx, draft.Origin, draft.Destination, draft.Date)
	if err != nil {
		return models.TicketRecord{}, err
	}
	var chosen *models.Train
	for i := range trains {
		if !trains[i].SoldOut {
			chosen = &trains[i]
			break
		}
	}
	if chosen == nil {
		return models.TicketRecord{}, domain.ConflictError{Resource: "train", Msg: "all services are sold out"}
	}
	draft, err = booking.Apply(draft, booking.SelectTrain{Train: *chosen})
	if err != nil {
		return models.TicketRecord{}, err
	}

	var occupied map[string]bool
	if a.Tickets != nil {
		occupied = a.Tickets.Occupancy(ctx, chosen.ID, draft.Date)
	}
	draft, err = booking.Apply(draft, booking.ToggleSeat{SeatID: answers[promptSeat], Occupied: occupied, Coach: a.Catalog.CoachLayout()})
	if err != nil {
		return models.TicketRecord{}, err
	}
	draft, err = booking.Apply(draft, booking.ConfirmSeats{})
	if err != nil {
		return models.TicketRecord{}, err
	}

	if a.Issue == nil {
		return models.TicketRecord{}, domain.InternalError{Msg: "booking backend unavailable"}
	}
	return a.Issue(ctx, draft)
}
