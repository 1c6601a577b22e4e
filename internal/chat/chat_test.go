package chat

import (
	"context"
	"strings"
	"testing"

	"railbook/internal/booking"
	"railbook/internal/store"
)

func newAdapter(t *testing.T) (*Adapter, *store.TicketStore) {
	t.Helper()
	dir := t.TempDir()
	tickets := store.NewTicketStoreWithTiers(dir)
	priority := store.NewPriorityStoreWithTiers(dir)
	svc := booking.Service{
		Tickets:       tickets,
		Priority:      priority,
		ServiceFee:    2.99,
		SurchargeRate: 0.20,
	}
	return &Adapter{
		Catalog: booking.Catalog{Tickets: tickets},
		Tickets: tickets,
		Issue:   svc.Issue,
	}, tickets
}

func TestBookingFlowEndToEnd(t *testing.T) {
	a, tickets := newAdapter(t)
	ctx := context.Background()

	answers := []string{
		"Central Station",
		"Metro Junction",
		"2024-07-15",
		"Economy",
		"Asha Verma",
		"asha@example.com",
		"+1-555-0100",
		"A15",
	}

	reply := a.Handle(ctx, "s1", "user-1", "I want to book a ticket")
	if !strings.Contains(reply, "departing") {
		t.Fatalf("flow did not start: %q", reply)
	}
	for _, answer := range answers {
		reply = a.Handle(ctx, "s1", "user-1", answer)
	}

	if !strings.Contains(reply, "PNR") {
		t.Fatalf("flow did not finish with a reference: %q", reply)
	}
	code := pnrInText.FindString(reply)
	if code == "" {
		t.Fatalf("no reference in %q", reply)
	}
	ticket, ok := tickets.Get(ctx, code)
	if !ok {
		t.Fatalf("ticket %s not persisted", code)
	}
	if ticket.PassengerCount != 1 || len(ticket.SeatNumbers) != 1 || ticket.SeatNumbers[0] != "A15" {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	if ticket.OwnerID != "user-1" {
		t.Fatalf("owner not carried: %q", ticket.OwnerID)
	}
}

func TestInvalidAnswerRepromptsWithoutAdvancing(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	a.Handle(ctx, "s1", "user-1", "book")
	reply := a.Handle(ctx, "s1", "user-1", "Atlantis Central")
	if !strings.Contains(reply, "don't know that station") || !strings.Contains(reply, "departing") {
		t.Fatalf("unknown station should re-ask the same prompt: %q", reply)
	}

	reply = a.Handle(ctx, "s1", "user-1", "Central Station")
	if !strings.Contains(reply, "travelling to") {
		t.Fatalf("valid answer did not advance: %q", reply)
	}
}

func TestStatusLookupByReference(t *testing.T) {
	a, tickets := newAdapter(t)
	ctx := context.Background()

	// seed one issued ticket through the flow
	for _, msg := range []string{"book", "Central Station", "Metro Junction", "2024-07-15", "Economy", "Asha Verma", "asha@example.com", "+1-555-0100", "A15"} {
		a.Handle(ctx, "s1", "user-1", msg)
	}
	issued := tickets.List(ctx)
	if len(issued) != 1 {
		t.Fatalf("expected one issued ticket, got %d", len(issued))
	}

	reply := a.Handle(ctx, "s2", "user-1", "what's the status of "+issued[0].PNR+"?")
	if !strings.Contains(reply, issued[0].PNR) || !strings.Contains(reply, "Meridian Express") {
		t.Fatalf("status reply missing details: %q", reply)
	}

	reply = a.Handle(ctx, "s2", "user-1", "status of PNRZZZZZZZ9 please")
	if !strings.Contains(reply, "No ticket found") {
		t.Fatalf("unknown reference reply: %q", reply)
	}
}

func TestCannedAnswersAndFallback(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	if reply := a.Handle(ctx, "s1", "user-1", "how do refunds work?"); !strings.Contains(reply, "5-7 working days") {
		t.Fatalf("refund answer: %q", reply)
	}
	if reply := a.Handle(ctx, "s1", "user-1", "tell me about priority tickets"); !strings.Contains(reply, "proof document") {
		t.Fatalf("priority answer: %q", reply)
	}
	if reply := a.Handle(ctx, "s1", "user-1", "ping"); !strings.Contains(reply, "say \"book\"") {
		t.Fatalf("fallback answer: %q", reply)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	a.Handle(ctx, "s1", "user-1", "book")
	reply := a.Handle(ctx, "s2", "user-2", "hello")
	if strings.Contains(reply, "departing") {
		t.Fatalf("flow leaked across sessions: %q", reply)
	}

	if got := a.Messages("s1"); len(got) != 2 {
		t.Fatalf("s1 log has %d messages", len(got))
	}
	if got := a.Messages("s2"); len(got) != 2 {
		t.Fatalf("s2 log has %d messages", len(got))
	}
}

func TestTakenSeatFailsBookingWithRetryHint(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	flow := []string{"book", "Central Station", "Metro Junction", "2024-07-15", "Economy", "Asha Verma", "asha@example.com", "+1-555-0100", "A15"}
	for _, msg := range flow {
		a.Handle(ctx, "s1", "user-1", msg)
	}

	var reply string
	for _, msg := range flow {
		reply = a.Handle(ctx, "s2", "user-2", msg)
	}
	if !strings.Contains(reply, "could not be completed") {
		t.Fatalf("duplicate seat should fail the second booking: %q", reply)
	}
}
