package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-render-api/internal/compose"
)

// creationDate pins the document's internal timestamps so identical inputs
// produce byte-identical output across renders.
var creationDate = time.Unix(0, 0).UTC()

const (
	bulletIndentPt = 12.0
	lineHeightEm   = 1.4
)

// NativeBackend writes the PDF directly in process with no external
// runtime dependency. It is the fallback backend: for any well-formed
// instruction list it must produce a valid document, including a minimal
// single-page one when the list is empty.
type NativeBackend struct {
	fontsDir string
}

// NewNativeBackend keeps fontsDir for lazy lookup; missing font files are
// not an error, the built-in Helvetica covers that case.
func NewNativeBackend(fontsDir string) *NativeBackend {
	return &NativeBackend{fontsDir: fontsDir}
}

func (b *NativeBackend) Name() string { return "native" }

func (b *NativeBackend) Available(context.Context) bool { return true }

func (b *NativeBackend) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", pageFormat(doc.Style.DocumentSize), "")
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetTitle(documentTitle(doc.Instructions), true)

	family, translate := b.setupFont(pdf)

	margins := doc.Style.Margins
	pdf.SetMargins(margins.Left*72, margins.Top*72, margins.Right*72)
	pdf.SetAutoPageBreak(true, margins.Bottom*72)
	pdf.AddPage()

	d := &nativeDoc{
		pdf:    pdf,
		doc:    doc,
		family: family,
		tr:     translate,
		size:   doc.Style.FontSizePt(),
	}
	for _, in := range doc.Instructions {
		d.draw(in)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// setupFont registers the bundled OpenSans faces when present and falls
// back to the built-in Helvetica. The returned translator maps UTF-8 text
// into the core font's code page when Helvetica is in use.
func (b *NativeBackend) setupFont(pdf *fpdf.Fpdf) (string, func(string) string) {
	regular := filepath.Join(b.fontsDir, "OpenSans-Regular.ttf")
	bold := filepath.Join(b.fontsDir, "OpenSans-Bold.ttf")
	if fileExists(regular) && fileExists(bold) {
		pdf.AddUTF8Font("OpenSans", "", regular)
		pdf.AddUTF8Font("OpenSans", "B", bold)
		if pdf.Error() == nil {
			return "OpenSans", func(s string) string { return s }
		}
		pdf.ClearError()
	}
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// pageFormat guards against document sizes the writer does not know; the
// style layer already restricts overrides to Letter and A4.
func pageFormat(size string) string {
	switch strings.ToLower(size) {
	case "a4":
		return "A4"
	default:
		return "Letter"
	}
}

// documentTitle picks the name instruction's text for the PDF title
// metadata, if one exists.
func documentTitle(instructions []compose.DrawInstruction) string {
	for _, in := range instructions {
		if in.Op == compose.OpName && in.Text != "" {
			return in.Text
		}
	}
	return "Resume"
}

// nativeDoc tracks the cursor state while walking the instruction list.
type nativeDoc struct {
	pdf    *fpdf.Fpdf
	doc    Document
	family string
	tr     func(string) string
	size   float64
}

func (d *nativeDoc) draw(in compose.DrawInstruction) {
	switch in.Op {
	case compose.OpName:
		d.name(in.Text)
	case compose.OpContact:
		d.contact(in.Text)
	case compose.OpSummary:
		d.summary(in.Text)
	case compose.OpSectionHeading:
		d.sectionHeading(in.Text)
	case compose.OpEntryHeader:
		d.entryHeader(in.Text, in.RightText)
	case compose.OpBullet:
		d.bulletLine(in)
	}
}

func (d *nativeDoc) contentWidth() float64 {
	pageWidth, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	return pageWidth - left - right
}

func (d *nativeDoc) themeColor() {
	r, g, b := hexToRGB(d.doc.Style.ThemeColor)
	d.pdf.SetTextColor(r, g, b)
}

func (d *nativeDoc) textColor() {
	d.pdf.SetTextColor(17, 17, 17)
}

func (d *nativeDoc) name(text string) {
	d.pdf.SetFont(d.family, "B", nameSizePt)
	d.themeColor()
	d.pdf.CellFormat(d.contentWidth(), nameSizePt*1.2, d.tr(text), "", 1, "C", false, 0, "")
	d.textColor()
	d.pdf.Ln(d.doc.Style.Spacing.Header)
}

func (d *nativeDoc) contact(text string) {
	d.pdf.SetFont(d.family, "", d.size)
	d.textColor()
	d.pdf.CellFormat(d.contentWidth(), d.size*lineHeightEm, d.tr(text), "", 1, "C", false, 0, "")
	d.pdf.Ln(d.doc.Style.Spacing.Line)
}

func (d *nativeDoc) summary(text string) {
	d.pdf.SetFont(d.family, "", d.size)
	d.textColor()
	d.pdf.Ln(d.doc.Style.Spacing.Header)
	d.pdf.MultiCell(d.contentWidth(), d.size*lineHeightEm, d.tr(text), "", "J", false)
}

func (d *nativeDoc) sectionHeading(label string) {
	headingSize := d.size + 2
	d.pdf.Ln(d.doc.Style.Spacing.Section)
	d.pdf.SetFont(d.family, "B", headingSize)
	d.themeColor()
	d.pdf.CellFormat(d.contentWidth(), headingSize*1.3, d.tr(label), "", 1, "L", false, 0, "")

	r, g, b := hexToRGB(d.doc.Style.ThemeColor)
	d.pdf.SetDrawColor(r, g, b)
	left, _, _, _ := d.pdf.GetMargins()
	y := d.pdf.GetY()
	d.pdf.Line(left, y, left+d.contentWidth(), y)

	d.textColor()
	d.pdf.Ln(d.doc.Style.Spacing.Header)
}

func (d *nativeDoc) entryHeader(label, date string) {
	lineH := d.size * lineHeightEm
	d.pdf.Ln(d.doc.Style.Spacing.Item)
	d.textColor()

	if date == "" {
		d.pdf.SetFont(d.family, "B", d.size)
		d.pdf.CellFormat(d.contentWidth(), lineH, d.tr(label), "", 1, "L", false, 0, "")
		return
	}

	d.pdf.SetFont(d.family, "", d.size)
	dateWidth := d.pdf.GetStringWidth(d.tr(date)) + 4
	if limit := d.contentWidth() / 2; dateWidth > limit {
		dateWidth = limit
	}

	d.pdf.SetFont(d.family, "B", d.size)
	d.pdf.CellFormat(d.contentWidth()-dateWidth, lineH, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont(d.family, "", d.size)
	d.pdf.CellFormat(dateWidth, lineH, d.tr(date), "", 1, "R", false, 0, "")
}

func (d *nativeDoc) bulletLine(in compose.DrawInstruction) {
	lineH := d.size * lineHeightEm
	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.SetFont(d.family, "", d.size)
	d.textColor()

	if in.Marker {
		d.pdf.CellFormat(bulletIndentPt, lineH, d.tr("•"), "", 0, "L", false, 0, "")
		d.pdf.SetLeftMargin(left + bulletIndentPt)
		d.pdf.SetX(left + bulletIndentPt)
	}

	if in.BoldPrefix != "" {
		d.pdf.SetFont(d.family, "B", d.size)
		d.pdf.Write(lineH, d.tr(in.BoldPrefix))
		d.pdf.SetFont(d.family, "", d.size)
	}
	d.pdf.Write(lineH, d.tr(in.Text))
	d.pdf.Ln(lineH)

	if in.Marker {
		d.pdf.SetLeftMargin(left)
	}
	d.pdf.Ln(d.doc.Style.Spacing.Line)
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 31, 41, 55
	}
	return int(v >> 16), int((v >> 8) & 0xff), int(v & 0xff)
}
