// Package health reports service liveness and renderer availability.
package health

import (
	"context"

	"resume-render-api/internal/render"
)

// Service encapsulates health-related checks.
type Service struct {
	version  string
	backends []render.Backend
}

// NewService constructs a health service covering the given backends.
func NewService(version string, backends ...render.Backend) *Service {
	return &Service{version: version, backends: backends}
}

// Status returns the health payload: overall status, service version, and
// per-backend availability. Backend availability is informational; renders
// keep working through the native backend when Chromium is missing, so the
// service status stays "ok".
func (s *Service) Status(ctx context.Context) map[string]any {
	backends := make(map[string]bool, len(s.backends))
	for _, b := range s.backends {
		backends[b.Name()] = b.Available(ctx)
	}
	return map[string]any{
		"status":   "ok",
		"version":  s.version,
		"backends": backends,
	}
}
