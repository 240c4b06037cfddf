// Package bootstrap wires configuration into a runnable application.
package bootstrap

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"resume-render-api/internal/generate"
	"resume-render-api/internal/render"
	"resume-render-api/internal/resume"
	"resume-render-api/internal/services/health"
	"resume-render-api/internal/shared/config"
	"resume-render-api/internal/shared/server"
	"resume-render-api/internal/shared/server/middleware"
	"resume-render-api/internal/shared/telemetry"
)

const availabilityProbeTimeout = 5 * time.Second

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	Selector *render.Selector
	Tracker  *render.StatusTracker
}

// Build prepares shared dependencies and the router. The returned app is
// ready to serve; nothing here touches the network beyond probing for the
// Chromium binary.
func Build(cfg config.Config) (*App, error) {
	telemetry.SetDebug(cfg.Debug)

	primary := render.NewChromiumBackend(cfg.ChromePath)
	fallback := render.NewNativeBackend(cfg.FontsDir)

	probeCtx, cancel := context.WithTimeout(context.Background(), availabilityProbeTimeout)
	defer cancel()
	tracker := render.NewStatusTracker(primary.Available(probeCtx))

	selector := render.NewSelector(primary, fallback, tracker, cfg.RenderTimeout)

	renderSvc := generate.NewService(selector, limitsFromConfig(cfg))
	healthSvc := health.NewService(cfg.Version, primary, fallback)
	renderHandler := generate.NewHandler(renderSvc, healthSvc, cfg)

	app := &App{
		Config:   cfg,
		Selector: selector,
		Tracker:  tracker,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Render:  renderHandler,
		Limiter: middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"primary_backend":   selector.Primary().Name(),
		"primary_available": tracker.Snapshot().Available,
		"fallback_backend":  selector.Fallback().Name(),
		"render_timeout_ms": cfg.RenderTimeout.Milliseconds(),
	})

	return app, nil
}

func limitsFromConfig(cfg config.Config) resume.Limits {
	return resume.Limits{
		MaxWorkExperiences:   cfg.MaxWorkExperiences,
		MaxEducations:        cfg.MaxEducations,
		MaxProjects:          cfg.MaxProjects,
		MaxSkillCategories:   cfg.MaxSkillCategories,
		MaxDescriptionLength: cfg.MaxDescriptionLength,
		MaxSummaryLength:     cfg.MaxSummaryLength,
	}
}
