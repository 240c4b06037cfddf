// Package generate orchestrates one render request end to end: normalize
// the raw payload, resolve the style, compose draw instructions, and run
// them through the backend selector.
package generate

import (
	"context"
	"time"

	"resume-render-api/internal/compose"
	"resume-render-api/internal/render"
	"resume-render-api/internal/resume"
	"resume-render-api/internal/shared/metrics"
	"resume-render-api/internal/shared/telemetry"
	"resume-render-api/internal/shared/util"
	"resume-render-api/internal/style"
)

// Result is a finished generate call: the rendered PDF plus the download
// filename derived from the resume's profile name.
type Result struct {
	Output   render.Output
	Filename string
}

// Service contains the render pipeline behind the HTTP handlers. It holds
// no per-request state; every call builds its record and style fresh.
type Service struct {
	Selector *render.Selector
	Limits   resume.Limits

	now func() time.Time
}

// NewService constructs a Service.
func NewService(selector *render.Selector, limits resume.Limits) *Service {
	return &Service{Selector: selector, Limits: limits, now: time.Now}
}

// Generate renders raw resume JSON into a PDF. The input is normalized,
// never rejected: malformed fields collapse to empty values and an empty
// record still yields a minimal document. The only error is a
// *render.Failure after both backends were exhausted.
func (s *Service) Generate(ctx context.Context, raw []byte) (Result, error) {
	start := s.now()

	rec := resume.Normalize(raw)
	cfg := style.Resolve(raw)
	doc := render.Document{
		Instructions: compose.Compose(rec, cfg),
		Style:        cfg,
	}

	out, err := s.Selector.Render(ctx, doc)
	if err != nil {
		metrics.IncRenderFailed()
		telemetry.Error("render.failed", map[string]any{
			"error":        err.Error(),
			"instructions": len(doc.Instructions),
		})
		return Result{}, err
	}

	if out.Meta.FallbackReason != "" {
		metrics.IncRenderFallback(out.Meta.FallbackReason)
	}
	metrics.IncRender(out.Meta.Backend)
	metrics.ObserveRenderDurationMs(float64(s.now().Sub(start).Microseconds()) / 1000.0)

	telemetry.Info("render.complete", map[string]any{
		"backend":         out.Meta.Backend,
		"bytes":           out.Meta.ByteLength,
		"instructions":    len(doc.Instructions),
		"fallback_reason": out.Meta.FallbackReason,
	})

	return Result{Output: out, Filename: s.filename(rec.Profile.Name)}, nil
}

// Validate runs the advisory validation pass. It never gates Generate.
func (s *Service) Validate(raw []byte) resume.Report {
	metrics.IncValidation()
	return resume.Validate(raw, s.Limits)
}

// Status reports the primary backend's availability and the last recorded
// fallback reason.
func (s *Service) Status() render.Status {
	return s.Selector.Tracker().Snapshot()
}

// filename builds the attachment filename
// resume_<name>_<yyyymmdd_hhmmss>_<hash8>.pdf, where hash8 disambiguates
// names that sanitize to the same fragment.
func (s *Service) filename(name string) string {
	return "resume_" + util.SanitizeFilePart(name) +
		"_" + s.now().UTC().Format("20060102_150405") +
		"_" + util.ShortHash([]byte(name)) + ".pdf"
}
