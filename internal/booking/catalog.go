package booking

import (
	"context"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/fare"
	"railbook/internal/seatmap"
	"railbook/internal/store"
	"railbook/internal/utils"
)

// Stations on the network. Journey queries outside this list are rejected.
var stations = []string{
	"Central Station",
	"Metro Junction",
	"Harbor Terminal",
	"North Gate",
	"Hill View",
}

// Stations returns the supported station names in display order.
func Stations() []string {
	out := make([]string, len(stations))
	copy(out, stations)
	return out
}

// KnownStation reports whether name is on the network.
func KnownStation(name string) bool {
	return knownStation(utils.CleanSpace(name))
}

func knownStation(name string) bool {
	for _, s := range stations {
		if s == name {
			return true
		}
	}
	return false
}

// schedule is the fixed daily service pattern. Real seat inventory lives in
// the authoritative store; sold-out state is derived from issued tickets.
var schedule = []struct {
	id        string
	name      string
	departure string
	arrival   string
}{
	{id: "EXP101", name: "Meridian Express", departure: "08:00", arrival: "11:30"},
	{id: "IC205", name: "Coastal Intercity", departure: "12:15", arrival: "16:05"},
	{id: "RE309", name: "Valley Regional", departure: "17:40", arrival: "22:10"},
}

// Catalog lists candidate trains for a journey query.
type Catalog struct {
	Tickets *store.TicketStore
	Coach   seatmap.CoachConfig
}

// Search returns the day's services for a route, cheapest-listed base fare
// per seat, with sold-out flags derived from current occupancy.
func (c Catalog) Search(ctx context.Context, origin, destination, date string) ([]models.Train, error) {
	origin = utils.CleanSpace(origin)
	destination = utils.CleanSpace(destination)

	switch {
	case !knownStation(origin):
		return nil, domain.ValidationError{Field: "origin", Msg: "unknown station"}
	case !knownStation(destination):
		return nil, domain.ValidationError{Field: "destination", Msg: "unknown station"}
	case origin == destination:
		return nil, domain.ValidationError{Field: "destination", Msg: "must differ from origin"}
	case !utils.ValidDate(date):
		return nil, domain.ValidationError{Field: "date", Msg: "invalid date (YYYY-MM-DD)"}
	}

	base := fare.Lookup(origin, destination, 80.00)
	capacity := c.coach().Capacity()

	out := make([]models.Train, 0, len(schedule))
	for _, svc := range schedule {
		soldOut := false
		if c.Tickets != nil {
			soldOut = len(c.Tickets.Occupancy(ctx, svc.id, date)) >= capacity
		}
		out = append(out, models.Train{
			ID:            svc.id,
			Name:          svc.name,
			Origin:        origin,
			Destination:   destination,
			DepartureTime: svc.departure,
			ArrivalTime:   svc.arrival,
			Fare:          base,
			SoldOut:       soldOut,
		})
	}
	return out, nil
}

// Find returns one scheduled train for a route by id.
func (c Catalog) Find(ctx context.Context, trainID, origin, destination, date string) (models.Train, error) {
	trains, err := c.Search(ctx, origin, destination, date)
	if err != nil {
		return models.Train{}, err
	}
	for _, t := range trains {
		if t.ID == trainID {
			return t, nil
		}
	}
	return models.Train{}, domain.NotFoundError{Resource: "train"}
}

// CoachLayout returns the coach configuration services run with.
func (c Catalog) CoachLayout() seatmap.CoachConfig {
	return c.coach()
}

func (c Catalog) coach() seatmap.CoachConfig {
	if c.Coach.Rows > 0 {
		return c.Coach
	}
	return seatmap.DefaultCoach()
}
