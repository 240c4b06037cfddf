// Package render turns composed draw instructions into PDF bytes. Two
// backends accept the same Document: a headless Chromium process driven
// over the DevTools protocol, and an in-process PDF writer used as the
// fallback when Chromium is missing or misbehaves.
package render

import (
	"context"
	"errors"
	"fmt"

	"resume-render-api/internal/compose"
	"resume-render-api/internal/style"
)

// Fallback reason codes surfaced through the status endpoint and metrics.
const (
	ReasonUnavailable      = "unavailable"
	ReasonTimeout          = "timeout"
	ReasonCompositionError = "composition_error"
	ReasonInvalidOutput    = "invalid_output"
)

var (
	// ErrBackendUnavailable marks a backend whose runtime dependency is
	// missing, such as no Chromium binary on the host.
	ErrBackendUnavailable = errors.New("render backend unavailable")

	// ErrInvalidOutput marks a byte stream that is empty or does not start
	// with the PDF magic header.
	ErrInvalidOutput = errors.New("render backend produced invalid output")
)

// Document is the complete input to a render: the flattened instruction
// list plus the style resolved for this request.
type Document struct {
	Instructions []compose.DrawInstruction
	Style        style.Config
}

// Backend renders a Document into PDF bytes.
type Backend interface {
	// Name is a short stable identifier used in routes, response headers,
	// and metric labels.
	Name() string

	// Available reports whether the backend can run on this host right now.
	Available(ctx context.Context) bool

	// Render produces the PDF bytes for doc. Implementations must respect
	// ctx cancellation so callers can enforce timeouts.
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Failure is the terminal render error: every backend was tried and the
// last one still failed. Backend and Reason identify that last attempt.
type Failure struct {
	Backend string
	Reason  string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("render failed on %s backend (%s)", f.Backend, f.Reason)
	}
	return fmt.Sprintf("render failed on %s backend (%s): %v", f.Backend, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }
