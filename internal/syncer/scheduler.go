package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/finsheet/finsheet/internal/model"
	"github.com/finsheet/finsheet/internal/service"
)

// DefaultWindow is the per-record debounce window.
const DefaultWindow = 500 * time.Millisecond

// Scheduler coalesces per-record operations and dispatches them against
// the backend. Every dispatch is best-effort: an unavailable backend or a
// failed call is logged and dropped, never retried and never rolled back.
// The optimistic in-memory state stays authoritative.
type Scheduler struct {
	backend    service.Backend
	probe      service.Prober
	reconciler service.Reconciler
	debouncer  *Debouncer
	kind       model.Kind
	window     time.Duration
}

// SchedulerOption adjusts scheduler construction.
type SchedulerOption func(*Scheduler)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.window = d }
}

// NewScheduler creates a scheduler for one record kind.
func NewScheduler(kind model.Kind, backend service.Backend, probe service.Prober, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		backend:   backend,
		probe:     probe,
		debouncer: NewDebouncer(),
		kind:      kind,
		window:    DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetReconciler wires in the temp-id reconciliation target. The store and
// the scheduler reference each other, so this is set after construction.
func (s *Scheduler) SetReconciler(r service.Reconciler) {
	s.reconciler = r
}

// Enqueue schedules one operation for a record. Re-enqueuing the same
// (id, op) pair before the window elapses replaces the payload and resets
// the timer, so the backend only ever sees the final state.
func (s *Scheduler) Enqueue(op service.Op, id string, rec model.Record) {
	var payload model.Record
	if rec != nil {
		payload = rec.Clone()
	}
	key := id + "|" + string(op)
	s.debouncer.Schedule(key, s.window, func() {
		s.dispatch(op, id, payload)
	})
}

// Flush dispatches everything pending immediately.
func (s *Scheduler) Flush() {
	s.debouncer.Flush()
}

// Stop cancels all pending dispatches.
func (s *Scheduler) Stop() {
	s.debouncer.Stop()
}

func (s *Scheduler) dispatch(op service.Op, id string, rec model.Record) {
	ctx := context.Background()

	if !s.probe.Available(ctx, s.kind) {
		slog.Warn("backend unavailable, dropping sync operation",
			"kind", s.kind, "op", op, "id", id)
		return
	}

	switch op {
	case service.OpCreate:
		canonicalID, err := s.backend.CreateItem(ctx, s.kind, rec)
		if err != nil {
			slog.Warn("create failed, temp id retained",
				"kind", s.kind, "id", id, "error", err)
			return
		}
		if s.reconciler == nil || !s.reconciler.ReconcileID(id, canonicalID) {
			slog.Warn("created record no longer present, id not reconciled",
				"kind", s.kind, "temp_id", id, "canonical_id", canonicalID)
		}
	case service.OpUpdate:
		if err := s.backend.UpdateItem(ctx, s.kind, id, rec); err != nil {
			slog.Warn("update failed, optimistic state retained",
				"kind", s.kind, "id", id, "error", err)
		}
	case service.OpDelete:
		if err := s.backend.DeleteItem(ctx, s.kind, id); err != nil {
			slog.Warn("delete failed, optimistic state retained",
				"kind", s.kind, "id", id, "error", err)
		}
	}
}
