package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"resume-render-api/internal/compose"
	"resume-render-api/internal/pdftext"
	"resume-render-api/internal/resume"
	"resume-render-api/internal/style"
)

func minimalDocument(t *testing.T) Document {
	t.Helper()
	raw := []byte(`{
		"personalInfo": {"name": "Jane Doe", "email": "jane@x.com"},
		"workExperiences": [{"company": "Acme", "jobTitle": "Engineer", "date": "2020-2022", "descriptions": ["Built X"]}]
	}`)
	return Document{
		Instructions: compose.Compose(resume.Normalize(raw), style.Resolve(raw)),
		Style:        style.Resolve(raw),
	}
}

func TestNativeRenderProducesReadablePDF(t *testing.T) {
	backend := NewNativeBackend(t.TempDir())

	data, err := backend.Render(context.Background(), minimalDocument(t))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := ValidatePDF(data); err != nil {
		t.Fatalf("invalid pdf: %v", err)
	}

	text, err := pdftext.Text(data)
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	for _, want := range []string{"Jane Doe", "jane@x.com", "WORK EXPERIENCE", "Acme - Engineer", "2020-2022", "Built X"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected rendered text to contain %q, got:\n%s", want, text)
		}
	}
}

func TestNativeRenderEmptyDocument(t *testing.T) {
	backend := NewNativeBackend(t.TempDir())

	data, err := backend.Render(context.Background(), Document{Style: style.Default()})
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if err := ValidatePDF(data); err != nil {
		t.Fatalf("expected minimal valid document, got: %v", err)
	}
}

func TestNativeRenderDeterministic(t *testing.T) {
	backend := NewNativeBackend(t.TempDir())
	doc := minimalDocument(t)

	first, err := backend.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := backend.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected byte-identical output across renders")
	}
}

func TestNativeRenderHonorsCancelledContext(t *testing.T) {
	backend := NewNativeBackend(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := backend.Render(ctx, minimalDocument(t)); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestNativeRenderA4(t *testing.T) {
	backend := NewNativeBackend(t.TempDir())
	doc := minimalDocument(t)
	doc.Style.DocumentSize = "A4"

	data, err := backend.Render(context.Background(), doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := ValidatePDF(data); err != nil {
		t.Fatalf("invalid pdf: %v", err)
	}

	letter := minimalDocument(t)
	letterData, err := backend.Render(context.Background(), letter)
	if err != nil {
		t.Fatalf("render letter: %v", err)
	}
	if bytes.Equal(data, letterData) {
		t.Fatalf("expected page size to change output")
	}
}

func TestHexToRGB(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b int
	}{
		{"#1f2937", 31, 41, 55},
		{"#2563eb", 37, 99, 235},
		{"#fff", 255, 255, 255},
		{"not-a-color", 31, 41, 55},
	}
	for _, tc := range cases {
		r, g, b := hexToRGB(tc.in)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("%s: expected (%d,%d,%d), got (%d,%d,%d)", tc.in, tc.r, tc.g, tc.b, r, g, b)
		}
	}
}
