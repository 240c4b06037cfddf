package generate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-render-api/internal/generate"
	"resume-render-api/internal/pdftext"
	"resume-render-api/internal/render"
	"resume-render-api/internal/resume"
	"resume-render-api/internal/services/health"
	"resume-render-api/internal/shared/config"
	"resume-render-api/internal/shared/server"
	"resume-render-api/internal/shared/server/middleware"
)

const janeDoeResume = `{
	"personalInfo": {"name": "Jane Doe", "email": "jane@x.com"},
	"workExperiences": [{"company": "Acme", "jobTitle": "Engineer", "date": "2020-2022", "descriptions": ["Built X"]}]
}`

// fakeBackend stands in for the Chromium backend in handler tests so no
// browser is needed and failures can be scripted.
type fakeBackend struct {
	name      string
	available bool
	data      []byte
	err       error
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Available(context.Context) bool { return f.available }

func (f *fakeBackend) Render(context.Context, render.Document) ([]byte, error) {
	return f.data, f.err
}

func brokenChromium() *fakeBackend {
	return &fakeBackend{name: "chromium", available: true, err: errors.New("browser crashed")}
}

func testConfig() config.Config {
	return config.Config{
		Port:                 "0",
		Env:                  "dev",
		Version:              "test",
		CORSAllowOrigin:      []string{"http://localhost:5173"},
		RenderTimeout:        2 * time.Second,
		MaxRequestBytes:      1 << 20,
		RateLimitPerMinute:   0,
		MaxWorkExperiences:   10,
		MaxEducations:        5,
		MaxProjects:          10,
		MaxSkillCategories:   10,
		MaxDescriptionLength: 1000,
		MaxSummaryLength:     500,
	}
}

// newTestRouter assembles the real router around scripted backends.
func newTestRouter(t *testing.T, cfg config.Config, primary, fallback render.Backend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tracker := render.NewStatusTracker(primary.Available(context.Background()))
	selector := render.NewSelector(primary, fallback, tracker, cfg.RenderTimeout)
	svc := generate.NewService(selector, resume.DefaultLimits())
	handler := generate.NewHandler(svc, health.NewService(cfg.Version, primary, fallback), cfg)

	return server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Render:  handler,
		Limiter: middleware.NewRateLimiter(nil),
	})
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeJSON(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestGenerateResumeEndToEnd(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := post(router, "/api/v1/generate-resume", janeDoeResume)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", got)
	}
	if got := resp.Header().Get("X-Render-Backend"); got != "native" {
		t.Fatalf("expected native backend header, got %s", got)
	}

	disposition := regexp.MustCompile(`^attachment; filename=resume_Jane_Doe_\d{8}_\d{6}_[0-9a-f]{8}\.pdf$`)
	if got := resp.Header().Get("Content-Disposition"); !disposition.MatchString(got) {
		t.Fatalf("unexpected Content-Disposition %q", got)
	}

	pdf := resp.Body.Bytes()
	if err := render.ValidatePDF(pdf); err != nil {
		t.Fatalf("invalid pdf: %v", err)
	}
	text, err := pdftext.Text(pdf)
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	for _, want := range []string{"Jane Doe", "WORK EXPERIENCE", "Acme - Engineer", "Built X"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected rendered text to contain %q, got:\n%s", want, text)
		}
	}
	for _, absent := range []string{"EDUCATION", "PROJECTS", "SKILLS", "PUBLICATIONS", "CERTIFICATIONS"} {
		if strings.Contains(text, absent) {
			t.Fatalf("expected %s section to be absent, got:\n%s", absent, text)
		}
	}
}

func TestGenerateResumeUsesHealthyPrimary(t *testing.T) {
	primary := &fakeBackend{name: "chromium", available: true, data: []byte("%PDF-1.4 from-primary")}
	router := newTestRouter(t, testConfig(), primary, render.NewNativeBackend(t.TempDir()))

	resp := post(router, "/api/v1/generate-resume", janeDoeResume)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Render-Backend"); got != "chromium" {
		t.Fatalf("expected chromium backend header, got %s", got)
	}
	if !bytes.Equal(resp.Body.Bytes(), primary.data) {
		t.Fatalf("expected primary backend bytes to pass through untouched")
	}

	var status render.Status
	decodeJSON(t, get(router, "/api/v1/chromium-status"), &status)
	if !status.Available {
		t.Fatalf("expected primary available, got %+v", status)
	}
}

func TestGenerateResumeFallbackUpdatesStatusRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	if resp := post(router, "/api/v1/generate-resume", janeDoeResume); resp.Code != http.StatusOK {
		t.Fatalf("expected render to succeed via fallback, got %d", resp.Code)
	}

	resp := get(router, "/api/v1/chromium-status")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var status struct {
		Available          bool   `json:"available"`
		LastFallbackReason string `json:"lastFallbackReason"`
	}
	decodeJSON(t, resp, &status)
	if status.Available {
		t.Fatalf("expected available=false after fallback, got %+v", status)
	}
	if status.LastFallbackReason != render.ReasonCompositionError {
		t.Fatalf("expected composition_error reason, got %+v", status)
	}
}

func TestGenerateResumeEmptyRecordStillRenders(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := post(router, "/api/v1/generate-resume", `{}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected minimal document for empty record, got %d", resp.Code)
	}
	if err := render.ValidatePDF(resp.Body.Bytes()); err != nil {
		t.Fatalf("invalid pdf: %v", err)
	}
}

func TestGenerateResumeRejectsNonJSON(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := post(router, "/api/v1/generate-resume", "this is not json")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeJSON(t, resp, &envelope)
	if envelope.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error code, got %+v", envelope)
	}
}

func TestGenerateResumeBothBackendsFail(t *testing.T) {
	deadFallback := &fakeBackend{name: "native", available: true, err: errors.New("writer broke")}
	router := newTestRouter(t, testConfig(), brokenChromium(), deadFallback)

	resp := post(router, "/api/v1/generate-resume", janeDoeResume)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Backend string `json:"backend"`
				Reason  string `json:"reason"`
			} `json:"details"`
		} `json:"error"`
	}
	decodeJSON(t, resp, &envelope)
	if envelope.Error.Code != "render_failure" {
		t.Fatalf("expected render_failure code, got %+v", envelope)
	}
	if envelope.Error.Details.Backend != "native" {
		t.Fatalf("expected failure to name the last backend, got %+v", envelope)
	}
}

func TestGenerateResumePayloadTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequestBytes = 64
	router := newTestRouter(t, cfg, brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := post(router, "/api/v1/generate-resume", `{"profile": {"summary": "`+strings.Repeat("x", 256)+`"}}`)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeJSON(t, resp, &envelope)
	if envelope.Error.Code != "payload_too_large" {
		t.Fatalf("expected payload_too_large code, got %+v", envelope)
	}
}

func TestValidateResumeEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := post(router, "/api/v1/validate-resume", janeDoeResume)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var report resume.Report
	decodeJSON(t, resp, &report)
	if !report.Valid {
		t.Fatalf("expected valid resume, got %+v", report)
	}

	resp = post(router, "/api/v1/validate-resume", `{"profile": {"email": "jane@x.com"}}`)
	decodeJSON(t, resp, &report)
	if report.Valid {
		t.Fatalf("expected invalid resume without a name, got %+v", report)
	}
}

func TestTemplatesEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := get(router, "/api/v1/templates")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Templates []struct {
			ID         string `json:"id"`
			ThemeColor string `json:"themeColor"`
		} `json:"templates"`
		DefaultTemplate string `json:"defaultTemplate"`
	}
	decodeJSON(t, resp, &body)
	if len(body.Templates) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(body.Templates))
	}
	if body.DefaultTemplate != "professional" {
		t.Fatalf("expected professional default, got %s", body.DefaultTemplate)
	}
}

func TestConfigEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := get(router, "/api/v1/config")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Defaults struct {
			ThemeColor   string `json:"themeColor"`
			DocumentSize string `json:"documentSize"`
		} `json:"defaults"`
		Limits struct {
			MaxWorkExperiences int `json:"maxWorkExperiences"`
		} `json:"limits"`
	}
	decodeJSON(t, resp, &body)
	if body.Defaults.ThemeColor != "#1f2937" || body.Defaults.DocumentSize != "Letter" {
		t.Fatalf("unexpected defaults: %+v", body)
	}
	if body.Limits.MaxWorkExperiences != 10 {
		t.Fatalf("unexpected limits: %+v", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := get(router, "/api/v1/health")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Status   string          `json:"status"`
		Version  string          `json:"version"`
		Backends map[string]bool `json:"backends"`
	}
	decodeJSON(t, resp, &body)
	if body.Status != "ok" || body.Version != "test" {
		t.Fatalf("unexpected health payload: %+v", body)
	}
	if !body.Backends["native"] {
		t.Fatalf("expected native backend available, got %+v", body)
	}
}

func TestMetricsEndpointExposesRenderCounters(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	if resp := post(router, "/api/v1/generate-resume", janeDoeResume); resp.Code != http.StatusOK {
		t.Fatalf("expected render to succeed, got %d", resp.Code)
	}

	resp := get(router, "/metrics")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`renders_total{backend="native"}`,
		`render_fallbacks_total{reason="composition_error"}`,
		"render_duration_ms_count",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics to contain %q, got:\n%s", want, body)
		}
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t, testConfig(), brokenChromium(), render.NewNativeBackend(t.TempDir()))

	resp := get(router, "/api/v1/unknown")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeJSON(t, resp, &envelope)
	if envelope.Error.Code != "not_found" {
		t.Fatalf("expected not_found code, got %+v", envelope)
	}
}
