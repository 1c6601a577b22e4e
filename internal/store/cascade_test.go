package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"railbook/internal/domain/models"
)

// fakeTier is an in-memory Tier whose availability flips per test.
type fakeTier struct {
	name    string
	down    bool
	records []models.TicketRecord
}

func (f *fakeTier) Name() string { return f.name }

func (f *fakeTier) List(ctx context.Context) ([]models.TicketRecord, error) {
	if f.down {
		return nil, errors.New(f.name + " unavailable")
	}
	out := make([]models.TicketRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeTier) Insert(ctx context.Context, rec models.TicketRecord) (models.TicketRecord, error) {
	if f.down {
		return models.TicketRecord{}, errors.New(f.name + " unavailable")
	}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeTier) UpdateStatus(ctx context.Context, id, status, notes string) (models.TicketRecord, error) {
	if f.down {
		return models.TicketRecord{}, errors.New(f.name + " unavailable")
	}
	for i := range f.records {
		if f.records[i].PNR == id {
			f.records[i].Status = status
			return f.records[i], nil
		}
	}
	return models.TicketRecord{}, errors.New("not found")
}

func ticketAt(pnr string, created time.Time) models.TicketRecord {
	return models.TicketRecord{
		ID:        pnr,
		PNR:       pnr,
		TrainID:   "EXP101",
		Date:      "2024-07-15",
		Status:    models.TicketConfirmed,
		CreatedAt: created,
	}
}

func TestListNewestFirstFromFirstHealthyTier(t *testing.T) {
	now := time.Now()
	primary := &fakeTier{name: "remote", records: []models.TicketRecord{
		ticketAt("PNRAAAAAAA1", now.Add(-2*time.Hour)),
		ticketAt("PNRBBBBBBB2", now),
		ticketAt("PNRCCCCCCC3", now.Add(-time.Hour)),
	}}
	secondary := &fakeTier{name: "mirror"}
	store := NewTicketStoreWithTiers(t.TempDir(), primary, secondary)

	got := store.List(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(got))
	}
	want := []string{"PNRBBBBBBB2", "PNRCCCCCCC3", "PNRAAAAAAA1"}
	for i, pnr := range want {
		if got[i].PNR != pnr {
			t.Fatalf("position %d: expected %s, got %s", i, pnr, got[i].PNR)
		}
	}
}

func TestListDegradesToCacheWhenAllTiersFail(t *testing.T) {
	primary := &fakeTier{name: "remote", records: []models.TicketRecord{
		ticketAt("PNRAAAAAAA1", time.Now()),
	}}
	store := NewTicketStoreWithTiers(t.TempDir(), primary)

	// first read syncs the cache
	if got := store.List(context.Background()); len(got) != 1 {
		t.Fatalf("seed read returned %d records", len(got))
	}

	primary.down = true
	got := store.List(context.Background())
	if len(got) != 1 || got[0].PNR != "PNRAAAAAAA1" {
		t.Fatalf("cache fallback returned %v", got)
	}
}

func TestAddAcceptedWhenPrimaryTierDown(t *testing.T) {
	primary := &fakeTier{name: "remote", down: true}
	secondary := &fakeTier{name: "mirror"}
	store := NewTicketStoreWithTiers(t.TempDir(), primary, secondary)

	rec := ticketAt("PNRDDDDDDD4", time.Now())
	if _, err := store.Add(context.Background(), rec); err != nil {
		t.Fatalf("add should survive a down primary: %v", err)
	}
	if len(secondary.records) != 1 {
		t.Fatalf("mirror tier did not receive the write")
	}

	// every tier down: the new record must still surface from the cache
	secondary.down = true
	got := store.List(context.Background())
	if len(got) == 0 || got[0].PNR != "PNRDDDDDDD4" {
		t.Fatalf("expected cached record at the front, got %v", got)
	}
}

func TestAddAcceptedByCacheAlone(t *testing.T) {
	primary := &fakeTier{name: "remote", down: true}
	store := NewTicketStoreWithTiers(t.TempDir(), primary)

	rec := ticketAt("PNREEEEEEE5", time.Now())
	if _, err := store.Add(context.Background(), rec); err != nil {
		t.Fatalf("cache-only add rejected: %v", err)
	}
	if !store.PNRExists(context.Background(), "PNREEEEEEE5") {
		t.Fatal("record not readable after cache-only add")
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	primary := &fakeTier{name: "remote", records: []models.TicketRecord{
		ticketAt("PNRFFFFFFF6", time.Now()),
	}}
	store := NewTicketStoreWithTiers(t.TempDir(), primary)

	first, err := store.UpdateStatus(context.Background(), "PNRFFFFFFF6", models.TicketCancelled)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := store.UpdateStatus(context.Background(), "PNRFFFFFFF6", models.TicketCancelled)
	if err != nil {
		t.Fatalf("repeated update: %v", err)
	}
	if first.Status != models.TicketCancelled || second.Status != first.Status {
		t.Fatalf("states diverged: %q vs %q", first.Status, second.Status)
	}
}

func TestUpdateStatusFallsBackToCache(t *testing.T) {
	primary := &fakeTier{name: "remote", records: []models.TicketRecord{
		ticketAt("PNRGGGGGGG7", time.Now()),
	}}
	store := NewTicketStoreWithTiers(t.TempDir(), primary)
	store.List(context.Background()) // sync cache

	primary.down = true
	got, err := store.UpdateStatus(context.Background(), "PNRGGGGGGG7", models.TicketCancelled)
	if err != nil {
		t.Fatalf("cache-level update failed: %v", err)
	}
	if got.Status != models.TicketCancelled {
		t.Fatalf("expected Cancelled, got %q", got.Status)
	}
}

func TestOccupancyPerTrainAndDate(t *testing.T) {
	now := time.Now()
	a := ticketAt("PNRHHHHHHH8", now)
	a.SeatNumbers = []string{"A15", "A16"}
	b := ticketAt("PNRJJJJJJJ9", now)
	b.Date = "2024-07-16"
	b.SeatNumbers = []string{"B1"}
	cancelled := ticketAt("PNRKKKKKKK0", now)
	cancelled.SeatNumbers = []string{"C1"}
	cancelled.Status = models.TicketCancelled

	primary := &fakeTier{name: "remote", records: []models.TicketRecord{a, b, cancelled}}
	store := NewTicketStoreWithTiers(t.TempDir(), primary)

	occ := store.Occupancy(context.Background(), "EXP101", "2024-07-15")
	if !occ["A15"] || !occ["A16"] {
		t.Fatalf("issued seats missing from occupancy: %v", occ)
	}
	if occ["B1"] {
		t.Fatal("another date leaked into occupancy")
	}
	if occ["C1"] {
		t.Fatal("cancelled ticket still holds its seat")
	}
}
