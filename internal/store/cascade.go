// Package store persists ticket and priority-ticket records through a
// three-tier cascade: authoritative remote API, best-effort MySQL mirror,
// durable local cache. Every tier failure is caught and logged; the cascade
// proceeds, so callers always get an answer and a write only fails outright
// when no tier at all accepted it.
package store

import (
	"context"
	"sort"
	"time"

	"railbook/internal/utils"
)

// Tier is one backend in the cascade. Implementations must not panic; any
// failure is an error for the cascade to log and step past.
type Tier[T any] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, rec T) (T, error)
	UpdateStatus(ctx context.Context, id, status, notes string) (T, error)
}

// Codec tells the cascade how to key, order and transition a record type.
type Codec[T any] struct {
	Key       func(T) string
	Created   func(T) time.Time
	SetStatus func(*T, string, string, time.Time)
}

// Cascade coordinates the ordered tiers plus the always-written local cache.
type Cascade[T any] struct {
	Collection string
	Tiers      []Tier[T]
	Cache      *FileCache[T]
	Codec      Codec[T]
}

func (c *Cascade[T]) log(action, msg string) {
	utils.LogEvent("", "store", action, c.Collection+": "+msg)
}

// List attempts each tier in order, syncs the cache with the first success
// and returns it. When every tier fails it degrades to the cache's
// last-known contents; it never returns an error.
func (c *Cascade[T]) List(ctx context.Context) []T {
	for _, t := range c.Tiers {
		records, err := t.List(ctx)
		if err != nil {
			c.log("list", t.Name()+" failed: "+err.Error())
			continue
		}
		c.sortNewestFirst(records)
		if err := c.Cache.Replace(records); err != nil {
			c.log("list", "cache sync failed: "+err.Error())
		}
		return records
	}
	return c.Cache.Load()
}

// Add writes through every tier: tier 1, then tier 2 regardless of the
// outcome, then an unconditional prepend to the cache. The write is accepted
// once any tier (the cache included) holds it; the canonical record is the
// authoritative tier's response when that tier succeeded.
func (c *Cascade[T]) Add(ctx context.Context, rec T) (T, error) {
	canonical := rec
	accepted := false

	for i, t := range c.Tiers {
		out, err := t.Insert(ctx, canonical)
		if err != nil {
			c.log("add", t.Name()+" failed: "+err.Error())
			continue
		}
		accepted = true
		if i == 0 {
			canonical = out
		}
	}

	if err := c.Cache.Prepend(canonical); err != nil {
		c.log("add", "cache write failed: "+err.Error())
	} else {
		accepted = true
	}

	if !accepted {
		var zero T
		return zero, ErrTotalFailure{Collection: c.Collection}
	}
	return canonical, nil
}

// UpdateStatus applies the same transition through every tier and the cache.
// Applying an identical transition twice leaves the same final state
// (last-write-wins on the updated timestamp).
func (c *Cascade[T]) UpdateStatus(ctx context.Context, id, status, notes string) (T, error) {
	var updated T
	found := false

	for _, t := range c.Tiers {
		out, err := t.UpdateStatus(ctx, id, status, notes)
		if err != nil {
			c.log("update_status", t.Name()+" failed: "+err.Error())
			continue
		}
		if !found {
			updated = out
			found = true
		}
	}

	cached, cacheOK := c.cacheUpdate(id, status, notes)
	if !found && cacheOK {
		updated = cached
		found = true
	}

	if !found {
		var zero T
		return zero, ErrTotalFailure{Collection: c.Collection}
	}
	return updated, nil
}

func (c *Cascade[T]) cacheUpdate(id, status, notes string) (T, bool) {
	var zero T
	records := c.Cache.Load()
	for i := range records {
		if c.Codec.Key(records[i]) != id {
			continue
		}
		c.Codec.SetStatus(&records[i], status, notes, time.Now())
		if err := c.Cache.Replace(records); err != nil {
			c.log("update_status", "cache write failed: "+err.Error())
			return zero, false
		}
		return records[i], true
	}
	return zero, false
}

func (c *Cascade[T]) sortNewestFirst(records []T) {
	if c.Codec.Created == nil {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return c.Codec.Created(records[i]).After(c.Codec.Created(records[j]))
	})
}

// ErrTotalFailure is the single case surfaced to callers: no tier accepted
// the operation, the unwritable cache included.
type ErrTotalFailure struct {
	Collection string
}

func (e ErrTotalFailure) Error() string {
	return "all persistence tiers failed for " + e.Collection
}
