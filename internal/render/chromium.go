package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// chromiumCandidates are probed in PATH order when no explicit binary path
// is configured.
var chromiumCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"headless-shell",
}

// ChromiumBackend prints an HTML rendition of the instruction list through
// a headless Chromium instance. Each render runs its own browser against a
// per-request temp directory, so concurrent renders never share state.
type ChromiumBackend struct {
	execPath string
}

// NewChromiumBackend resolves the browser binary once at construction.
// execPath may be empty, in which case well-known names are looked up on
// PATH. A backend with no resolved binary reports itself unavailable.
func NewChromiumBackend(execPath string) *ChromiumBackend {
	return &ChromiumBackend{execPath: resolveChromium(execPath)}
}

func resolveChromium(execPath string) string {
	if execPath != "" {
		if _, err := os.Stat(execPath); err == nil {
			return execPath
		}
	}
	for _, name := range chromiumCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

func (b *ChromiumBackend) Name() string { return "chromium" }

func (b *ChromiumBackend) Available(context.Context) bool { return b.execPath != "" }

func (b *ChromiumBackend) Render(ctx context.Context, doc Document) ([]byte, error) {
	if b.execPath == "" {
		return nil, ErrBackendUnavailable
	}

	html, err := BuildHTML(doc)
	if err != nil {
		return nil, fmt.Errorf("build html: %w", err)
	}

	// Per-request unique dir so concurrent renders never share files.
	tmpDir := filepath.Join(os.TempDir(), "resume-render-"+uuid.NewString())
	if err := os.Mkdir(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("write temp html: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(b.execPath),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	width, height := doc.Style.PageSizeInches()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			pdf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		// Surface the caller's deadline instead of chromedp's wrapped
		// cancellation so the selector can classify timeouts.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return pdf, nil
}
