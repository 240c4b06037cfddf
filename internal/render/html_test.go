package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"resume-render-api/internal/compose"
	"resume-render-api/internal/resume"
	"resume-render-api/internal/style"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func documentFromJSON(t *testing.T, raw string) Document {
	t.Helper()
	return Document{
		Instructions: compose.Compose(resume.Normalize([]byte(raw)), style.Resolve([]byte(raw))),
		Style:        style.Resolve([]byte(raw)),
	}
}

func TestBuildHTMLStructure(t *testing.T) {
	html, err := BuildHTML(minimalDocument(t))
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	doc := parseHTML(t, html)

	if got := doc.Find("title").Text(); got != "Jane Doe" {
		t.Fatalf("expected title Jane Doe, got %q", got)
	}
	if got := doc.Find("h1.name").Text(); got != "Jane Doe" {
		t.Fatalf("expected name heading, got %q", got)
	}
	if href, _ := doc.Find(".contact a").First().Attr("href"); href != "mailto:jane@x.com" {
		t.Fatalf("expected mailto link, got %q", href)
	}
	if got := doc.Find("h2.section-heading").Text(); got != "WORK EXPERIENCE" {
		t.Fatalf("expected section heading, got %q", got)
	}
	if got := doc.Find(".entry .entry-label").Text(); got != "Acme - Engineer" {
		t.Fatalf("expected entry label, got %q", got)
	}
	if got := doc.Find(".entry .entry-date").Text(); got != "2020-2022" {
		t.Fatalf("expected entry date, got %q", got)
	}
	if got := doc.Find(".line.bullet").Text(); got != "Built X" {
		t.Fatalf("expected bullet line, got %q", got)
	}
}

func TestBuildHTMLEscapesUserText(t *testing.T) {
	html, err := BuildHTML(documentFromJSON(t, `{"profile": {"name": "<script>alert(1)</script>"}}`))
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("expected user text to be escaped")
	}
	if got := parseHTML(t, html).Find("h1.name").Text(); got != "<script>alert(1)</script>" {
		t.Fatalf("expected literal text after parsing, got %q", got)
	}
}

func TestBuildHTMLPageGeometry(t *testing.T) {
	letter, err := BuildHTML(minimalDocument(t))
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	if !strings.Contains(letter, "size: 8.5in 11in;") {
		t.Fatalf("expected Letter page size in stylesheet")
	}
	if !strings.Contains(letter, "#1f2937") {
		t.Fatalf("expected theme color in stylesheet")
	}

	doc := minimalDocument(t)
	doc.Style.DocumentSize = "A4"
	a4, err := BuildHTML(doc)
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	if !strings.Contains(a4, "size: 8.27in 11.69in;") {
		t.Fatalf("expected A4 page size in stylesheet")
	}
}

func TestBuildHTMLSkillsBoldPrefix(t *testing.T) {
	html, err := BuildHTML(documentFromJSON(t, `{"skills": ["Programming: Python, Go"]}`))
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	doc := parseHTML(t, html)

	line := doc.Find(".line.bullet").First()
	if got := line.Find("strong").Text(); got != "Programming:" {
		t.Fatalf("expected bold prefix, got %q", got)
	}
	if got := line.Text(); got != "Programming: Python, Go" {
		t.Fatalf("expected full line text, got %q", got)
	}
}

func TestBuildHTMLMarkerOffDropsBulletClass(t *testing.T) {
	html, err := BuildHTML(documentFromJSON(t, `{
		"workExperiences": [{"company": "Acme", "jobTitle": "Engineer", "descriptions": ["Built X"]}],
		"settings": {"showBulletPoints": {"workExperiences": false}}
	}`))
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	doc := parseHTML(t, html)

	if doc.Find(".line.bullet").Length() != 0 {
		t.Fatalf("expected no bullet class when markers are off")
	}
	if got := doc.Find(".line").Text(); got != "Built X" {
		t.Fatalf("expected description line, got %q", got)
	}
}

func TestBuildHTMLEmptyDocument(t *testing.T) {
	html, err := BuildHTML(Document{Style: style.Default()})
	if err != nil {
		t.Fatalf("build html: %v", err)
	}
	doc := parseHTML(t, html)
	if got := doc.Find("title").Text(); got != "Resume" {
		t.Fatalf("expected fallback title, got %q", got)
	}
	if doc.Find("body").Children().Length() != 0 {
		t.Fatalf("expected empty body")
	}
}
