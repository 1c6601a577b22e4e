package seatmap

import (
	"math/rand"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	cfg := DefaultCoach()
	rows := Generate(cfg, nil, nil)

	if len(rows) != cfg.Rows {
		t.Fatalf("expected %d rows, got %d", cfg.Rows, len(rows))
	}
	for i, row := range rows {
		if row.Number != i+1 {
			t.Fatalf("row %d numbered %d", i, row.Number)
		}
		if len(row.Seats) != len(cfg.Columns) {
			t.Fatalf("row %d has %d seats", row.Number, len(row.Seats))
		}
	}
	if got := rows[14].Seats[0].ID; got != "A15" {
		t.Fatalf("expected seat id A15, got %s", got)
	}
}

func TestGenerateOccupancyWinsOverSelection(t *testing.T) {
	cfg := DefaultCoach()
	occupied := map[string]bool{"A1": true}
	rows := Generate(cfg, occupied, []string{"A1", "B1"})

	a1 := rows[0].Seats[0]
	if !a1.Reserved || a1.Selected {
		t.Fatalf("A1 should render reserved and unselected, got %+v", a1)
	}
	b1 := rows[0].Seats[1]
	if b1.Reserved || !b1.Selected {
		t.Fatalf("B1 should render selected, got %+v", b1)
	}
}

func TestSelectSeatToggleAndCap(t *testing.T) {
	cfg := DefaultCoach()
	occupied := map[string]bool{"C3": true}

	sel := SelectSeat(cfg, nil, "A1", occupied, 2)
	sel = SelectSeat(cfg, sel, "A2", occupied, 2)
	if len(sel) != 2 {
		t.Fatalf("expected 2 seats, got %v", sel)
	}

	// full selection: further picks are ignored
	if got := SelectSeat(cfg, sel, "B1", occupied, 2); len(got) != 2 {
		t.Fatalf("selection grew past cap: %v", got)
	}

	// reserved seat never enters the selection
	if got := SelectSeat(cfg, sel[:1], "C3", occupied, 2); len(got) != 1 {
		t.Fatalf("reserved seat selected: %v", got)
	}

	// tapping a selected seat removes it
	sel = SelectSeat(cfg, sel, "A1", occupied, 2)
	if len(sel) != 1 || sel[0] != "A2" {
		t.Fatalf("toggle-off failed: %v", sel)
	}
}

func TestSelectSeatNoDuplicates(t *testing.T) {
	cfg := DefaultCoach()
	sel := SelectSeat(cfg, nil, "A1", nil, 4)
	sel = SelectSeat(cfg, sel, "A1", nil, 4)
	sel = SelectSeat(cfg, sel, "A1", nil, 4)
	if len(sel) != 1 {
		t.Fatalf("expected single A1 after odd tap count, got %v", sel)
	}
}

func TestSelectSeatRejectsSeatsOutsideCoach(t *testing.T) {
	cfg := DefaultCoach()
	for _, id := range []string{"Z99", "Q0", "A19", "A0", "E1", "", "15A", "AA1"} {
		if got := SelectSeat(cfg, nil, id, nil, 4); len(got) != 0 {
			t.Fatalf("seat %q outside the coach entered the selection: %v", id, got)
		}
	}
}

func TestCoachContains(t *testing.T) {
	cfg := DefaultCoach()
	for _, id := range []string{"A1", "A18", "D1", "D18", "B9"} {
		if !cfg.Contains(id) {
			t.Fatalf("coach should contain %q", id)
		}
	}
	for _, id := range []string{"A0", "A19", "E1", "Z99", "Q0", "", "A", "A1x"} {
		if cfg.Contains(id) {
			t.Fatalf("coach should not contain %q", id)
		}
	}
}

func TestSimulatedOccupancyBounds(t *testing.T) {
	cfg := DefaultCoach()
	r := rand.New(rand.NewSource(1))

	none := SimulatedOccupancy(cfg, r, 0)
	if len(none) != 0 {
		t.Fatalf("prob 0 reserved %d seats", len(none))
	}
	all := SimulatedOccupancy(cfg, r, 1)
	if len(all) != cfg.Capacity() {
		t.Fatalf("prob 1 reserved %d of %d", len(all), cfg.Capacity())
	}
}
