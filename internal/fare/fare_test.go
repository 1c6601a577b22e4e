package fare

import (
	"testing"

	"railbook/internal/domain/models"
)

func TestComputeTotalStandard(t *testing.T) {
	// 100.00 x 2 + 2.99
	got := ComputeTotal(100.00, 2, 2.99, false, 0.20)
	if got != 202.99 {
		t.Fatalf("expected 202.99, got %v", got)
	}
}

func TestComputeTotalWithPrioritySurcharge(t *testing.T) {
	// (100.00 x 2 + 2.99) x 1.20, rounded half-up
	got := ComputeTotal(100.00, 2, 2.99, true, 0.20)
	if got != 243.59 {
		t.Fatalf("expected 243.59, got %v", got)
	}
}

func TestComputeTotalSinglePassengerNoFeeEdge(t *testing.T) {
	if got := ComputeTotal(45.00, 1, 0, false, 0.20); got != 45.00 {
		t.Fatalf("expected 45.00, got %v", got)
	}
}

func TestClassMultiplier(t *testing.T) {
	cases := map[string]float64{
		models.ClassEconomy:  1.0,
		models.ClassBusiness: 1.5,
		models.ClassFirst:    2.0,
		"unknown":            1.0,
	}
	for class, want := range cases {
		if got := ClassMultiplier(class); got != want {
			t.Fatalf("class %q: expected %v, got %v", class, want, got)
		}
	}
}

func TestLookupBidirectionalAndCaseInsensitive(t *testing.T) {
	if got := Lookup("Central Station", "Metro Junction", 0); got != 100.00 {
		t.Fatalf("forward lookup: got %v", got)
	}
	if got := Lookup("metro junction", "CENTRAL STATION", 0); got != 100.00 {
		t.Fatalf("reverse case-folded lookup: got %v", got)
	}
	if got := Lookup("Central Station", "Nowhere", 80.00); got != 80.00 {
		t.Fatalf("unknown route fallback: got %v", got)
	}
	if got := Lookup("", "Metro Junction", 80.00); got != 80.00 {
		t.Fatalf("blank origin fallback: got %v", got)
	}
}
