// Package fare prices journeys. Route base fares come from a fixed table in
// the same style as the bus-fare rules this platform grew out of; class
// multipliers and the priority surcharge apply on top.
package fare

import (
	"strings"

	"railbook/internal/domain/models"
	"railbook/internal/utils"
)

// ComputeTotal derives the booking total: unit fare times passenger count
// plus the service fee, with an optional percentage surcharge when a
// priority ticket is requested. The result is rounded to the currency's
// minor unit. There are no other fees.
func ComputeTotal(unitFare float64, passengers int, serviceFee float64, priorityApplied bool, surchargeRate float64) float64 {
	total := unitFare*float64(passengers) + serviceFee
	if priorityApplied {
		total *= 1 + surchargeRate
	}
	return utils.RoundMinor(total)
}

// ClassMultiplier scales the economy base fare per fare class.
func ClassMultiplier(class string) float64 {
	switch class {
	case models.ClassBusiness:
		return 1.5
	case models.ClassFirst:
		return 2.0
	default:
		return 1.0
	}
}

func normalizeStation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type routeKey struct {
	a, b string
}

func key(from, to string) routeKey {
	f, t := normalizeStation(from), normalizeStation(to)
	if f > t {
		f, t = t, f
	}
	return routeKey{a: f, b: t}
}

// Base fares per route pair, bidirectional.
var routeFares = map[routeKey]float64{
	key("Central Station", "Metro Junction"):  100.00,
	key("Central Station", "Harbor Terminal"): 85.00,
	key("Central Station", "North Gate"):      65.00,
	key("Central Station", "Hill View"):       120.00,
	key("Metro Junction", "Harbor Terminal"):  55.00,
	key("Metro Junction", "North Gate"):       70.00,
	key("Metro Junction", "Hill View"):        90.00,
	key("Harbor Terminal", "North Gate"):      45.00,
	key("Harbor Terminal", "Hill View"):       110.00,
	key("North Gate", "Hill View"):            75.00,
}

// Lookup returns the per-seat base fare for a route (case-insensitive,
// direction-independent). Unknown routes return fallbackPrice.
func Lookup(from, to string, fallbackPrice float64) float64 {
	if normalizeStation(from) == "" || normalizeStation(to) == "" {
		return fallbackPrice
	}
	if v, ok := routeFares[key(from, to)]; ok {
		return v
	}
	return fallbackPrice
}
