// Package seatmap produces coach layouts and enforces the seat selection
// rules of the booking flow. Layout shape is a pure function of the coach
// configuration; availability comes from an occupancy set supplied by the
// caller (issued tickets per train and date).
package seatmap

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// CoachConfig describes one coach: row count and the column labels of each
// row. Seat ids are column label + row number ("A15").
type CoachConfig struct {
	Rows    int
	Columns []string
}

// DefaultCoach mirrors a standard express coach: 18 rows, 4 abreast.
func DefaultCoach() CoachConfig {
	return CoachConfig{Rows: 18, Columns: []string{"A", "B", "C", "D"}}
}

// Capacity returns the total seat count of the coach.
func (c CoachConfig) Capacity() int {
	return c.Rows * len(c.Columns)
}

// Contains reports whether seatID names a seat of this coach. Labels that
// parse but fall outside the layout ("Z99" in an A-D coach) are not seats.
func (c CoachConfig) Contains(seatID string) bool {
	for _, col := range c.Columns {
		if !strings.HasPrefix(seatID, col) {
			continue
		}
		row, err := strconv.Atoi(seatID[len(col):])
		if err != nil {
			return false
		}
		return row >= 1 && row <= c.Rows
	}
	return false
}

// Seat is one seat in a rendered map. Selected is session-scoped and never
// persisted; a seat is never both reserved and selectable.
type Seat struct {
	ID       string `json:"id"`
	Reserved bool   `json:"reserved"`
	Selected bool   `json:"selected"`
}

// Row groups seats of one physical row, ordered by column.
type Row struct {
	Number int    `json:"number"`
	Seats  []Seat `json:"seats"`
}

// SeatID builds the canonical seat label for a column and row.
func SeatID(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

// Generate renders the coach as ordered rows. occupied holds reserved seat
// ids; selection holds the session's current picks. Seats present in both
// render as reserved: occupancy always wins.
func Generate(cfg CoachConfig, occupied map[string]bool, selection []string) []Row {
	selected := make(map[string]bool, len(selection))
	for _, s := range selection {
		selected[s] = true
	}

	rows := make([]Row, 0, cfg.Rows)
	for r := 1; r <= cfg.Rows; r++ {
		row := Row{Number: r, Seats: make([]Seat, 0, len(cfg.Columns))}
		for _, col := range cfg.Columns {
			id := SeatID(col, r)
			seat := Seat{ID: id, Reserved: occupied[id]}
			if !seat.Reserved && selected[id] {
				seat.Selected = true
			}
			row.Seats = append(row.Seats, seat)
		}
		rows = append(rows, row)
	}
	return rows
}

// SimulatedOccupancy marks each seat reserved with probability prob. It is a
// stand-in for a live occupancy query, kept only as the fallback when no
// occupancy source is configured, and for tests.
func SimulatedOccupancy(cfg CoachConfig, r *rand.Rand, prob float64) map[string]bool {
	occupied := make(map[string]bool)
	for row := 1; row <= cfg.Rows; row++ {
		for _, col := range cfg.Columns {
			if r.Float64() < prob {
				occupied[SeatID(col, row)] = true
			}
		}
	}
	return occupied
}

// SelectSeat applies one tap on a seat to the current selection:
//   - seat not in the coach, or reserved: selection unchanged
//   - seat already selected: removed (toggle-off)
//   - selection below maxSeats: appended
//   - selection full: unchanged (backpressure, not an error)
//
// The result is always a duplicate-free subset of the coach's available
// seats with length at most maxSeats.
func SelectSeat(cfg CoachConfig, selection []string, seatID string, occupied map[string]bool, maxSeats int) []string {
	if !cfg.Contains(seatID) || occupied[seatID] {
		return selection
	}

	for i, s := range selection {
		if s == seatID {
			out := make([]string, 0, len(selection)-1)
			out = append(out, selection[:i]...)
			out = append(out, selection[i+1:]...)
			return out
		}
	}

	if len(selection) >= maxSeats {
		return selection
	}

	out := make([]string, len(selection), len(selection)+1)
	copy(out, selection)
	return append(out, seatID)
}
