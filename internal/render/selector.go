package render

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Status is the caller-visible snapshot of the primary backend.
type Status struct {
	Available          bool   `json:"available"`
	LastFallbackReason string `json:"lastFallbackReason,omitempty"`
}

// StatusTracker records whether the primary backend worked on the most
// recent request and why the selector last fell back. Safe for concurrent
// use; the render path only takes the lock for field updates.
type StatusTracker struct {
	mu                 sync.Mutex
	available          bool
	lastFallbackReason string
}

// NewStatusTracker seeds the availability flag, typically from a probe of
// the primary backend at boot. The selector overwrites it per request.
func NewStatusTracker(available bool) *StatusTracker {
	return &StatusTracker{available: available}
}

// RecordSuccess marks the primary backend healthy. The last fallback
// reason is kept as history rather than cleared.
func (t *StatusTracker) RecordSuccess() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.available = true
}

// RecordFallback marks the primary backend unhealthy and stores why.
func (t *StatusTracker) RecordFallback(reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.available = false
	t.lastFallbackReason = reason
}

// Snapshot returns the current status.
func (t *StatusTracker) Snapshot() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{Available: t.available, LastFallbackReason: t.lastFallbackReason}
}

// Selector tries the primary backend first and falls back to the secondary
// when the primary is unavailable, errors, times out, or returns invalid
// bytes. Each request independently starts at the primary; nothing is
// remembered between requests beyond the tracker's reporting fields.
type Selector struct {
	primary  Backend
	fallback Backend
	tracker  *StatusTracker
	timeout  time.Duration
}

// NewSelector wires the two backends. timeout bounds each primary render
// attempt; zero disables the bound. The fallback runs under the caller's
// context only.
func NewSelector(primary, fallback Backend, tracker *StatusTracker, timeout time.Duration) *Selector {
	return &Selector{primary: primary, fallback: fallback, tracker: tracker, timeout: timeout}
}

// Primary exposes the primary backend, used to derive the status route.
func (s *Selector) Primary() Backend { return s.primary }

// Fallback exposes the fallback backend.
func (s *Selector) Fallback() Backend { return s.fallback }

// Tracker exposes the shared status tracker.
func (s *Selector) Tracker() *StatusTracker { return s.tracker }

// Render produces the document through the first backend that succeeds.
// On total failure it returns a *Failure describing the last attempt;
// callers never receive partial bytes.
func (s *Selector) Render(ctx context.Context, doc Document) (Output, error) {
	out, reason, err := s.renderPrimary(ctx, doc)
	if err == nil {
		s.tracker.RecordSuccess()
		return out, nil
	}
	s.tracker.RecordFallback(reason)

	out, fbErr := Assemble(ctx, s.fallback, doc)
	if fbErr != nil {
		return Output{}, &Failure{
			Backend: s.fallback.Name(),
			Reason:  classifyReason(fbErr),
			Err:     fbErr,
		}
	}
	out.Meta.FallbackReason = reason
	return out, nil
}

// renderPrimary runs the primary backend under the configured timeout and
// classifies any failure into a fallback reason.
func (s *Selector) renderPrimary(ctx context.Context, doc Document) (Output, string, error) {
	if !s.primary.Available(ctx) {
		return Output{}, ReasonUnavailable, ErrBackendUnavailable
	}

	attemptCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := Assemble(attemptCtx, s.primary, doc)
	if err != nil {
		return Output{}, classifyReason(err), err
	}
	return out, "", nil
}

func classifyReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, ErrBackendUnavailable):
		return ReasonUnavailable
	case errors.Is(err, ErrInvalidOutput):
		return ReasonInvalidOutput
	default:
		return ReasonCompositionError
	}
}
