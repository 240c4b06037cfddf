package generate

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"resume-render-api/internal/render"
	"resume-render-api/internal/services/health"
	"resume-render-api/internal/shared/config"
	"resume-render-api/internal/shared/server/respond"
	"resume-render-api/internal/style"
)

// Handler wires HTTP handlers to the render pipeline.
type Handler struct {
	Svc    *Service
	Health *health.Service
	Cfg    config.Config
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, healthSvc *health.Service, cfg config.Config) *Handler {
	return &Handler{Svc: svc, Health: healthSvc, Cfg: cfg}
}

// RegisterRoutes attaches render routes to the router group. The status
// route is named after the primary backend, e.g. /chromium-status.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-resume", h.generate)
	rg.POST("/validate-resume", h.validate)
	rg.GET("/"+h.Svc.Selector.Primary().Name()+"-status", h.primaryStatus)
	rg.GET("/templates", h.templates)
	rg.GET("/config", h.effectiveConfig)
	rg.GET("/health", h.healthCheck)
}

func (h *Handler) generate(c *gin.Context) {
	raw, ok := h.readBody(c)
	if !ok {
		return
	}
	if !gjson.ValidBytes(raw) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be valid JSON", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), raw)
	if err != nil {
		var failure *render.Failure
		if errors.As(err, &failure) {
			respond.Error(c, http.StatusInternalServerError, "render_failure", "resume rendering failed", gin.H{
				"backend": failure.Backend,
				"reason":  failure.Reason,
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "resume rendering failed", nil)
		return
	}

	// Logged by the request middleware.
	c.Set("renderBackend", result.Output.Meta.Backend)

	c.Header("Content-Disposition", `attachment; filename=`+result.Filename)
	c.Header("X-Render-Backend", result.Output.Meta.Backend)
	c.Data(http.StatusOK, "application/pdf", result.Output.Bytes)
}

func (h *Handler) validate(c *gin.Context) {
	raw, ok := h.readBody(c)
	if !ok {
		return
	}
	respond.OK(c, h.Svc.Validate(raw))
}

func (h *Handler) primaryStatus(c *gin.Context) {
	respond.OK(c, h.Svc.Status())
}

func (h *Handler) templates(c *gin.Context) {
	respond.OK(c, gin.H{
		"templates":       style.Presets(),
		"defaultTemplate": style.Presets()[0].ID,
	})
}

// effectiveConfig exposes the non-sensitive render defaults and limits.
// Read-only: the service is stateless, so there is nothing to mutate.
func (h *Handler) effectiveConfig(c *gin.Context) {
	defaults := style.Default()
	respond.OK(c, gin.H{
		"defaults": gin.H{
			"themeColor":   defaults.ThemeColor,
			"fontFamily":   defaults.FontFamily,
			"fontSize":     defaults.FontSize,
			"documentSize": defaults.DocumentSize,
			"template":     style.Presets()[0].ID,
		},
		"documentSizes": []string{"Letter", "A4"},
		"limits": gin.H{
			"maxWorkExperiences":   h.Svc.Limits.MaxWorkExperiences,
			"maxEducations":        h.Svc.Limits.MaxEducations,
			"maxProjects":          h.Svc.Limits.MaxProjects,
			"maxSkillCategories":   h.Svc.Limits.MaxSkillCategories,
			"maxDescriptionLength": h.Svc.Limits.MaxDescriptionLength,
			"maxSummaryLength":     h.Svc.Limits.MaxSummaryLength,
		},
		"render": gin.H{
			"timeoutMs":       h.Cfg.RenderTimeout.Milliseconds(),
			"maxRequestBytes": h.Cfg.MaxRequestBytes,
		},
	})
}

func (h *Handler) healthCheck(c *gin.Context) {
	respond.OK(c, h.Health.Status(c.Request.Context()))
}

// readBody drains the size-capped request body. Exceeding the cap surfaces
// as 413; the cap itself is installed by the BodyLimit middleware.
func (h *Handler) readBody(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds the size limit", gin.H{
				"maxBytes": tooLarge.Limit,
			})
			return nil, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read request body", nil)
		return nil, false
	}
	return raw, true
}
