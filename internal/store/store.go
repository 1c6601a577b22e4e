package store

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"railbook/internal/config"
	"railbook/internal/domain/models"
)

// Collection names double as cache file names and mirror table names.
const (
	CollectionTickets  = "bookedTickets"
	CollectionPriority = "priorityTickets"

	ticketMirrorTable   = "ticket_mirror"
	priorityMirrorTable = "priority_ticket_mirror"
)

func ticketCodec() Codec[models.TicketRecord] {
	return Codec[models.TicketRecord]{
		Key:     func(t models.TicketRecord) string { return t.PNR },
		Created: func(t models.TicketRecord) time.Time { return t.CreatedAt },
		SetStatus: func(t *models.TicketRecord, status, notes string, at time.Time) {
			_ = notes
			_ = at
			t.Status = status
		},
	}
}

func priorityCodec() Codec[models.PriorityTicketRecord] {
	return Codec[models.PriorityTicketRecord]{
		Key:     func(p models.PriorityTicketRecord) string { return p.ID },
		Created: func(p models.PriorityTicketRecord) time.Time { return p.CreatedAt },
		SetStatus: func(p *models.PriorityTicketRecord, status, notes string, at time.Time) {
			p.Status = status
			p.AdminNotes = notes
			p.UpdatedAt = at
		},
	}
}

// TicketStore persists TicketRecord collections through the cascade.
type TicketStore struct {
	cascade *Cascade[models.TicketRecord]
}

// PriorityStore persists PriorityTicketRecord collections through the
// cascade.
type PriorityStore struct {
	cascade *Cascade[models.PriorityTicketRecord]
}

// NewTicketStore wires remote + mirror + cache tiers from the environment.
// db may be nil; the mirror then falls back to the shared connection.
func NewTicketStore(env config.Env, db *sql.DB) *TicketStore {
	client := &http.Client{Timeout: env.RemoteTimeout}
	return &TicketStore{cascade: &Cascade[models.TicketRecord]{
		Collection: CollectionTickets,
		Tiers: []Tier[models.TicketRecord]{
			&Remote[models.TicketRecord]{BaseURL: env.RemoteAPIBaseURL, Path: "/tickets", Client: client},
			&Mirror[models.TicketRecord]{DB: db, Table: ticketMirrorTable, Codec: ticketCodec()},
		},
		Cache: NewFileCache[models.TicketRecord](env.CacheDir, CollectionTickets),
		Codec: ticketCodec(),
	}}
}

func NewPriorityStore(env config.Env, db *sql.DB) *PriorityStore {
	client := &http.Client{Timeout: env.RemoteTimeout}
	return &PriorityStore{cascade: &Cascade[models.PriorityTicketRecord]{
		Collection: CollectionPriority,
		Tiers: []Tier[models.PriorityTicketRecord]{
			&Remote[models.PriorityTicketRecord]{BaseURL: env.RemoteAPIBaseURL, Path: "/priority-tickets", Client: client},
			&Mirror[models.PriorityTicketRecord]{DB: db, Table: priorityMirrorTable, Codec: priorityCodec()},
		},
		Cache: NewFileCache[models.PriorityTicketRecord](env.CacheDir, CollectionPriority),
		Codec: priorityCodec(),
	}}
}

// NewTicketStoreWithTiers builds a store over explicit tiers; used by tests
// and by callers that need to simulate backend availability.
func NewTicketStoreWithTiers(cacheDir string, tiers ...Tier[models.TicketRecord]) *TicketStore {
	return &TicketStore{cascade: &Cascade[models.TicketRecord]{
		Collection: CollectionTickets,
		Tiers:      tiers,
		Cache:      NewFileCache[models.TicketRecord](cacheDir, CollectionTickets),
		Codec:      ticketCodec(),
	}}
}

func NewPriorityStoreWithTiers(cacheDir string, tiers ...Tier[models.PriorityTicketRecord]) *PriorityStore {
	return &PriorityStore{cascade: &Cascade[models.PriorityTicketRecord]{
		Collection: CollectionPriority,
		Tiers:      tiers,
		Cache:      NewFileCache[models.PriorityTicketRecord](cacheDir, CollectionPriority),
		Codec:      priorityCodec(),
	}}
}

// List returns all tickets, newest-first, degrading to cached data.
func (s *TicketStore) List(ctx context.Context) []models.TicketRecord {
	return s.cascade.List(ctx)
}

// Add writes a ticket through the cascade.
func (s *TicketStore) Add(ctx context.Context, rec models.TicketRecord) (models.TicketRecord, error) {
	return s.cascade.Add(ctx, rec)
}

// UpdateStatus transitions a ticket by PNR.
func (s *TicketStore) UpdateStatus(ctx context.Context, pnr, status string) (models.TicketRecord, error) {
	return s.cascade.UpdateStatus(ctx, pnr, status, "")
}

// Get finds one ticket by PNR.
func (s *TicketStore) Get(ctx context.Context, pnr string) (models.TicketRecord, bool) {
	for _, t := range s.List(ctx) {
		if t.PNR == pnr {
			return t, true
		}
	}
	return models.TicketRecord{}, false
}

// PNRExists reports whether a reference is already issued.
func (s *TicketStore) PNRExists(ctx context.Context, pnr string) bool {
	_, ok := s.Get(ctx, pnr)
	return ok
}

// Occupancy derives the reserved seat set for one train and date from
// issued, non-cancelled tickets. Seat state is independent per date.
func (s *TicketStore) Occupancy(ctx context.Context, trainID, date string) map[string]bool {
	occupied := map[string]bool{}
	for _, t := range s.List(ctx) {
		if t.TrainID != trainID || t.Date != date || t.Status == models.TicketCancelled {
			continue
		}
		for _, seat := range t.SeatNumbers {
			occupied[seat] = true
		}
	}
	return occupied
}

func (s *PriorityStore) List(ctx context.Context) []models.PriorityTicketRecord {
	return s.cascade.List(ctx)
}

func (s *PriorityStore) Add(ctx context.Context, rec models.PriorityTicketRecord) (models.PriorityTicketRecord, error) {
	return s.cascade.Add(ctx, rec)
}

func (s *PriorityStore) UpdateStatus(ctx context.Context, id, status, notes string) (models.PriorityTicketRecord, error) {
	return s.cascade.UpdateStatus(ctx, id, status, notes)
}

func (s *PriorityStore) Get(ctx context.Context, id string) (models.PriorityTicketRecord, bool) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return models.PriorityTicketRecord{}, false
}
