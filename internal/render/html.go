package render

import (
	"html/template"
	"strings"

	"resume-render-api/internal/compose"
)

// nameSizePt is the fixed point size of the name heading; section headings
// scale with the body font instead.
const nameSizePt = 20

// fontStacks maps wire font family names onto CSS stacks. Values are
// trusted literals, never caller input.
var fontStacks = map[string]template.CSS{
	"OpenSans":  `"Open Sans", "Helvetica Neue", Arial, sans-serif`,
	"Helvetica": `"Helvetica Neue", Helvetica, Arial, sans-serif`,
}

type htmlPage struct {
	Title          string
	FontStack      template.CSS
	FontSizePt     float64
	HeadingSizePt  float64
	NameSizePt     float64
	ThemeColor     string
	PageWidthIn    float64
	PageHeightIn   float64
	MarginTopIn    float64
	MarginRightIn  float64
	MarginBottomIn float64
	MarginLeftIn   float64
	SectionGapPt   float64
	HeaderGapPt    float64
	ItemGapPt      float64
	LineGapPt      float64
	Lines          []htmlLine
}

type htmlLine struct {
	Kind       string
	Text       string
	BoldPrefix string
	RightText  string
	Parts      []compose.ContactPart
	Marker     bool
}

var pageTemplate = template.Must(template.New("resume").Parse(pageTemplateText))

// BuildHTML renders the instruction list into the standalone page the
// Chromium backend prints. Exported for the backend and its tests.
func BuildHTML(doc Document) (string, error) {
	width, height := doc.Style.PageSizeInches()
	page := htmlPage{
		Title:          "Resume",
		FontStack:      fontStack(doc.Style.FontFamily),
		FontSizePt:     doc.Style.FontSizePt(),
		HeadingSizePt:  doc.Style.FontSizePt() + 2,
		NameSizePt:     nameSizePt,
		ThemeColor:     doc.Style.ThemeColor,
		PageWidthIn:    width,
		PageHeightIn:   height,
		MarginTopIn:    doc.Style.Margins.Top,
		MarginRightIn:  doc.Style.Margins.Right,
		MarginBottomIn: doc.Style.Margins.Bottom,
		MarginLeftIn:   doc.Style.Margins.Left,
		SectionGapPt:   doc.Style.Spacing.Section,
		HeaderGapPt:    doc.Style.Spacing.Header,
		ItemGapPt:      doc.Style.Spacing.Item,
		LineGapPt:      doc.Style.Spacing.Line,
	}

	for _, in := range doc.Instructions {
		if in.Op == compose.OpName && in.Text != "" {
			page.Title = in.Text
			break
		}
	}
	for _, in := range doc.Instructions {
		page.Lines = append(page.Lines, htmlLine{
			Kind:       string(in.Op),
			Text:       in.Text,
			BoldPrefix: in.BoldPrefix,
			RightText:  in.RightText,
			Parts:      in.Parts,
			Marker:     in.Marker,
		})
	}

	var buf strings.Builder
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fontStack(family string) template.CSS {
	if stack, ok := fontStacks[family]; ok {
		return stack
	}
	return fontStacks["Helvetica"]
}

const pageTemplateText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page {
  size: {{.PageWidthIn}}in {{.PageHeightIn}}in;
  margin: {{.MarginTopIn}}in {{.MarginRightIn}}in {{.MarginBottomIn}}in {{.MarginLeftIn}}in;
}
body {
  font-family: {{.FontStack}};
  font-size: {{.FontSizePt}}pt;
  color: #111111;
  margin: 0;
}
a { color: inherit; text-decoration: none; }
.name {
  font-size: {{.NameSizePt}}pt;
  font-weight: 700;
  color: {{.ThemeColor}};
  text-align: center;
  margin: 0 0 {{.HeaderGapPt}}pt 0;
}
.contact {
  text-align: center;
  margin: 0 0 {{.LineGapPt}}pt 0;
}
.summary {
  text-align: justify;
  margin: {{.HeaderGapPt}}pt 0 0 0;
}
.section-heading {
  font-size: {{.HeadingSizePt}}pt;
  font-weight: 700;
  color: {{.ThemeColor}};
  border-bottom: 1pt solid {{.ThemeColor}};
  padding-bottom: 2pt;
  margin: {{.SectionGapPt}}pt 0 {{.HeaderGapPt}}pt 0;
}
.entry {
  display: flex;
  justify-content: space-between;
  margin: {{.ItemGapPt}}pt 0 2pt 0;
}
.entry-label { font-weight: 700; }
.entry-date { white-space: nowrap; }
.line { margin: 0 0 {{.LineGapPt}}pt 0; }
.line.bullet { padding-left: 12pt; text-indent: -12pt; }
.line.bullet::before { content: "\2022\00a0"; }
</style>
</head>
<body>
{{- range .Lines}}
{{- if eq .Kind "name"}}
<h1 class="name">{{.Text}}</h1>
{{- else if eq .Kind "contact"}}
<div class="contact">{{range $i, $p := .Parts}}{{if $i}} &bull; {{end}}{{if $p.Link}}<a href="{{$p.Link}}">{{$p.Text}}</a>{{else}}{{$p.Text}}{{end}}{{end}}</div>
{{- else if eq .Kind "summary"}}
<p class="summary">{{.Text}}</p>
{{- else if eq .Kind "sectionHeading"}}
<h2 class="section-heading">{{.Text}}</h2>
{{- else if eq .Kind "entryHeader"}}
<div class="entry"><span class="entry-label">{{.Text}}</span><span class="entry-date">{{.RightText}}</span></div>
{{- else if eq .Kind "bullet"}}
<div class="line{{if .Marker}} bullet{{end}}">{{if .BoldPrefix}}<strong>{{.BoldPrefix}}</strong>{{end}}{{.Text}}</div>
{{- end}}
{{- end}}
</body>
</html>
`
