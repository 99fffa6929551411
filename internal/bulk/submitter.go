// Package bulk implements the full-collection replace operation used to
// recover from accumulated per-record sync failures.
package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/finsheet/finsheet/internal/common"
	"github.com/finsheet/finsheet/internal/model"
	"github.com/finsheet/finsheet/internal/service"
)

// Status is the submitter's display state.
type Status string

// Submit states.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// DefaultDisplayWindow is how long a terminal status stays visible before
// the submitter resets to idle.
const DefaultDisplayWindow = 3 * time.Second

// Submitter posts the entire collection to the backend as a replace, not a
// diff. State moves idle → loading → {success, error} → idle; the terminal
// state auto-resets after the display window.
type Submitter struct {
	backend       service.Backend
	probe         service.Prober
	source        service.CollectionSource
	err           error
	subscribers   []func(Status)
	kind          model.Kind
	status        Status
	displayWindow time.Duration
	generation    int
	mu            sync.Mutex
}

// Option adjusts submitter construction.
type Option func(*Submitter)

// WithDisplayWindow overrides the terminal-status display window.
func WithDisplayWindow(d time.Duration) Option {
	return func(s *Submitter) { s.displayWindow = d }
}

// NewSubmitter creates a submitter for one record kind.
func NewSubmitter(kind model.Kind, backend service.Backend, probe service.Prober, source service.CollectionSource, opts ...Option) *Submitter {
	s := &Submitter{
		backend:       backend,
		probe:         probe,
		source:        source,
		kind:          kind,
		status:        StatusIdle,
		displayWindow: DefaultDisplayWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current display state.
func (s *Submitter) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the retained error from the last failed submit, cleared by
// the next successful one.
func (s *Submitter) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Subscribe registers fn to run on every status change.
func (s *Submitter) Subscribe(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Submit replaces the full remote collection with the current snapshot.
// An unavailable backend moves straight to error without issuing the call.
// The returned status is the terminal state of this submit.
func (s *Submitter) Submit(ctx context.Context) Status {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.mu.Unlock()
		return StatusLoading
	}
	s.status = StatusLoading
	s.mu.Unlock()
	s.notify(StatusLoading)

	if !s.probe.Available(ctx, s.kind) {
		slog.Warn("backend unavailable, submit aborted", "kind", s.kind)
		return s.finish(StatusError, fmt.Errorf("submit %s: %w", s.kind, common.ErrBackendUnavailable))
	}

	snapshot := s.source.Snapshot()
	if err := s.backend.BulkReplace(ctx, s.kind, snapshot.Records); err != nil {
		slog.Warn("bulk submit failed", "kind", s.kind, "error", err)
		return s.finish(StatusError, err)
	}

	slog.Info("bulk submit succeeded", "kind", s.kind, "records", snapshot.Len())
	return s.finish(StatusSuccess, nil)
}

// finish enters a terminal state and arms the display-window reset. The
// generation guard keeps a stale timer from clobbering a newer submit.
func (s *Submitter) finish(status Status, err error) Status {
	s.mu.Lock()
	s.err = err
	s.status = status
	s.generation++
	gen := s.generation
	s.mu.Unlock()
	s.notify(status)

	time.AfterFunc(s.displayWindow, func() {
		s.mu.Lock()
		reset := s.generation == gen && s.status == status
		if reset {
			s.status = StatusIdle
		}
		s.mu.Unlock()
		if reset {
			s.notify(StatusIdle)
		}
	})
	return status
}

func (s *Submitter) notify(status Status) {
	s.mu.Lock()
	subs := make([]func(Status), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(status)
	}
}
