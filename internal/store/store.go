// Package store holds the canonical in-memory collection and is the single
// entry point for every mutation. Mutations apply synchronously (validate,
// apply, re-derive) and only then trigger the two side channels: a
// debounced full-collection write to the local cache and a per-record
// enqueue on the sync scheduler. Remote failure never rolls a mutation
// back; the in-memory collection is authoritative for the session.
package store

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/finsheet/finsheet/internal/common"
	"github.com/finsheet/finsheet/internal/dateparse"
	"github.com/finsheet/finsheet/internal/derive"
	"github.com/finsheet/finsheet/internal/model"
	"github.com/finsheet/finsheet/internal/service"
	"github.com/finsheet/finsheet/internal/syncer"
)

// DefaultPersistWindow debounces local cache writes so rapid edits cause
// one persisted write rather than one per keystroke.
const DefaultPersistWindow = time.Second

const persistKey = "persist"

// Store is the optimistic state store for one record kind.
type Store struct {
	collection    *model.Collection
	schema        model.Schema
	engine        *derive.Engine
	cache         service.Cache
	sync          service.Syncer
	persist       *syncer.Debouncer
	subscribers   []func()
	persistWindow time.Duration
	mu            sync.Mutex
}

// Option adjusts store construction.
type Option func(*Store)

// WithPersistWindow overrides the cache write debounce window.
func WithPersistWindow(d time.Duration) Option {
	return func(s *Store) { s.persistWindow = d }
}

// New creates a store over an existing collection, usually the result of
// the bootstrap sequence. Cache and sync may be nil in tests.
func New(collection *model.Collection, engine *derive.Engine, cache service.Cache, sync service.Syncer, opts ...Option) *Store {
	s := &Store{
		collection:    collection,
		schema:        model.SchemaFor(collection.Kind),
		engine:        engine,
		cache:         cache,
		sync:          sync,
		persist:       syncer.NewDebouncer(),
		persistWindow: DefaultPersistWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the record kind this store manages.
func (s *Store) Kind() model.Kind {
	return s.collection.Kind
}

// Len returns the current record count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Len()
}

// Snapshot returns a deep copy of the collection.
func (s *Store) Snapshot() *model.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Clone()
}

// Totals folds the named numeric fields over the collection.
func (s *Store) Totals(fields ...string) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Totals(fields...)
}

// Subscribe registers fn to run after every accepted mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// MutateField validates raw for the named field and, only once validation
// passes, applies it to the record at index, re-derives that record, and
// schedules persistence and an update sync. A ValidationError leaves the
// collection untouched.
func (s *Store) MutateField(index int, field, raw string) error {
	s.mu.Lock()

	rec, err := s.collection.At(index)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	spec, ok := s.schema.Field(field)
	if !ok {
		s.mu.Unlock()
		return common.NewValidationError(field, raw, "unknown field")
	}
	if spec.Derived {
		s.mu.Unlock()
		return common.NewValidationError(field, raw, "derived fields are read-only")
	}

	value, err := coerce(spec, field, raw)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	updated := rec.Clone()
	updated[field] = value
	s.engine.Recompute(s.collection.Kind, updated)
	_ = s.collection.Replace(index, updated)

	s.schedulePersistLocked()
	if s.sync != nil {
		s.sync.Enqueue(service.OpUpdate, updated.ID(), updated)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// AddRecord merges partial over the schema defaults, assigns a temp id
// when none is given, derives, appends, renumbers, and schedules
// persistence and a create sync. It returns a copy of the stored record.
func (s *Store) AddRecord(partial model.Record) (model.Record, error) {
	s.mu.Lock()

	validated, err := s.validatePartial(partial)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	rec := model.NewRecord(s.schema, validated)
	if s.collection.IndexByID(rec.ID()) >= 0 {
		s.mu.Unlock()
		return nil, common.ErrDuplicateID
	}
	s.engine.Recompute(s.collection.Kind, rec)
	s.collection.Append(rec)

	s.schedulePersistLocked()
	if s.sync != nil {
		s.sync.Enqueue(service.OpCreate, rec.ID(), rec)
	}
	out := rec.Clone()
	s.mu.Unlock()

	s.notify()
	return out, nil
}

// RemoveRecord removes the record at index after the confirmer approves.
// It reports whether a removal happened. Remaining records are renumbered
// contiguously from 1 and a delete sync is enqueued for the removed id.
func (s *Store) RemoveRecord(index int, confirmer service.Confirmer) (bool, error) {
	s.mu.Lock()

	rec, err := s.collection.At(index)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	if confirmer != nil {
		// The prompt runs outside the network path but inside the
		// mutation path: nothing else mutates while it is open.
		if !confirmer.Confirm("Remove record " + rec.ID() + "?") {
			s.mu.Unlock()
			return false, nil
		}
	}

	removed, err := s.collection.Remove(index)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	s.schedulePersistLocked()
	if s.sync != nil {
		s.sync.Enqueue(service.OpDelete, removed.ID(), nil)
	}
	s.mu.Unlock()

	s.notify()
	return true, nil
}

// ReconcileID rewrites the single record still carrying tempID to the
// backend-assigned canonicalID. It reports false when the record was
// removed before the backend confirmed the create.
func (s *Store) ReconcileID(tempID, canonicalID string) bool {
	s.mu.Lock()

	if !s.collection.ReplaceID(tempID, canonicalID) {
		s.mu.Unlock()
		return false
	}
	s.schedulePersistLocked()
	s.mu.Unlock()

	s.notify()
	return true
}

// FlushPersist writes any pending cache save immediately (shutdown path).
func (s *Store) FlushPersist() {
	s.persist.Flush()
}

// Close cancels pending persistence timers.
func (s *Store) Close() {
	s.persist.Stop()
}

func (s *Store) schedulePersistLocked() {
	if s.cache == nil {
		return
	}
	s.persist.Schedule(persistKey, s.persistWindow, func() {
		s.cache.Save(context.Background(), s.Kind(), s.Snapshot())
	})
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// validatePartial runs every supplied base field through the same
// validation MutateField applies, so malformed input is rejected before
// anything merges over the schema defaults. Derived fields are ignored;
// Recompute overwrites them anyway.
func (s *Store) validatePartial(partial model.Record) (model.Record, error) {
	if len(partial) == 0 {
		return partial, nil
	}
	out := partial.Clone()
	for _, spec := range s.schema.BaseFields() {
		raw, present := out[spec.Name]
		if !present {
			continue
		}
		switch v := raw.(type) {
		case string:
			value, err := coerce(spec, spec.Name, v)
			if err != nil {
				return nil, err
			}
			out[spec.Name] = value
		case float64:
			if spec.Kind == model.FieldNumeric {
				if math.IsInf(v, 0) || math.IsNaN(v) {
					return nil, common.NewValidationError(spec.Name, strconv.FormatFloat(v, 'g', -1, 64), "not a finite number")
				}
				out[spec.Name] = derive.Round2(v)
			}
		}
	}
	return out, nil
}

// coerce validates raw against the field kind and returns the stored
// representation: rounded float64 for numeric fields, the raw string as
// entered for valid dates, the trimmed string for text.
func coerce(spec model.FieldSpec, field, raw string) (any, error) {
	switch spec.Kind {
	case model.FieldNumeric:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || trimmed == "0" {
			return 0.0, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, common.NewValidationError(field, raw, "not a number")
		}
		// ParseFloat accepts "Inf" and "NaN"; neither has a rounded form.
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, common.NewValidationError(field, raw, "not a finite number")
		}
		return derive.Round2(f), nil
	case model.FieldDate:
		if raw != "" && !dateparse.Valid(raw) {
			return nil, common.NewValidationError(field, raw, "not a valid DD/MM/YYYY date")
		}
		return raw, nil
	default:
		return strings.TrimSpace(raw), nil
	}
}
