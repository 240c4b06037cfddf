// Package style builds the per-render style configuration: preset defaults
// merged once with caller-supplied overrides, immutable afterwards.
package style

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"resume-render-api/internal/resume"
)

// Spacing is measured in points.
type Spacing struct {
	Section float64 `json:"section"`
	Item    float64 `json:"item"`
	Line    float64 `json:"line"`
	Header  float64 `json:"header"`
}

// Margins are measured in inches.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Config is the style for one render. Maps are owned by the Config and never
// shared between requests.
type Config struct {
	FontFamily   string
	FontSize     string
	DocumentSize string
	ThemeColor   string
	Spacing      Spacing
	Margins      Margins

	SectionHeadingLabels map[string]string
	SectionVisibility    map[string]bool
	SectionOrder         []string
	BulletVisibility     map[string]bool
}

var themeColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Default returns the stock configuration (the "professional" preset).
func Default() Config {
	return fromPreset(presetByID(defaultPresetID))
}

// Resolve builds the request's Config: the preset named by
// settings.template (default otherwise) merged with the remaining
// settings overrides. Overrides referencing unknown section keys are
// dropped; malformed scalar overrides keep the preset value.
func Resolve(raw []byte) Config {
	settings := gjson.GetBytes(raw, "settings")
	cfg := fromPreset(presetByID(settings.Get("template").String()))
	if !settings.IsObject() {
		return cfg
	}

	if color := settings.Get("themeColor"); color.Type == gjson.String && themeColorPattern.MatchString(color.Str) {
		cfg.ThemeColor = color.Str
	}
	if family := strings.TrimSpace(settings.Get("fontFamily").String()); family != "" && settings.Get("fontFamily").Type == gjson.String {
		cfg.FontFamily = family
	}
	if size := settings.Get("fontSize"); size.Exists() {
		if n, err := strconv.Atoi(strings.TrimSpace(size.String())); err == nil && n >= 8 && n <= 16 {
			cfg.FontSize = strconv.Itoa(n)
		}
	}
	if docSize := settings.Get("documentSize").String(); docSize == "Letter" || docSize == "A4" {
		cfg.DocumentSize = docSize
	}

	if headings := settings.Get("formToHeading"); headings.IsObject() {
		headings.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if _, known := cfg.SectionHeadingLabels[key]; known && v.Type == gjson.String {
				cfg.SectionHeadingLabels[key] = v.Str
			}
			return true
		})
	}
	if show := settings.Get("formToShow"); show.IsObject() {
		show.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if _, known := cfg.SectionVisibility[key]; known && v.IsBool() {
				cfg.SectionVisibility[key] = v.Bool()
			}
			return true
		})
	}
	if bullets := settings.Get("showBulletPoints"); bullets.IsObject() {
		bullets.ForEach(func(k, v gjson.Result) bool {
			key := k.String()
			if _, known := cfg.BulletVisibility[key]; known && v.IsBool() {
				cfg.BulletVisibility[key] = v.Bool()
			}
			return true
		})
	}
	if order := settings.Get("formsOrder"); order.IsArray() {
		next := make([]string, 0, len(cfg.SectionOrder))
		seen := make(map[string]bool)
		order.ForEach(func(_, v gjson.Result) bool {
			key := v.String()
			if _, known := cfg.SectionHeadingLabels[key]; known && !seen[key] {
				next = append(next, key)
				seen[key] = true
			}
			return true
		})
		if len(next) > 0 {
			cfg.SectionOrder = next
		}
	}

	return cfg
}

func fromPreset(p Preset) Config {
	labels := make(map[string]string, len(resume.SectionKeys()))
	visible := make(map[string]bool, len(resume.SectionKeys()))
	bullets := make(map[string]bool, len(resume.SectionKeys()))
	for key, label := range defaultHeadingLabels {
		labels[key] = label
	}
	for _, key := range resume.SectionKeys() {
		visible[key] = true
		bullets[key] = true
	}
	return Config{
		FontFamily:           p.FontFamily,
		FontSize:             p.FontSize,
		DocumentSize:         p.DocumentSize,
		ThemeColor:           p.ThemeColor,
		Spacing:              p.Spacing,
		Margins:              p.Margins,
		SectionHeadingLabels: labels,
		SectionVisibility:    visible,
		SectionOrder:         append([]string(nil), defaultSectionOrder...),
		BulletVisibility:     bullets,
	}
}

// FontSizePt parses the font size, falling back to 11pt on garbage.
func (c Config) FontSizePt() float64 {
	n, err := strconv.Atoi(strings.TrimSpace(c.FontSize))
	if err != nil || n <= 0 {
		return 11
	}
	return float64(n)
}

// PageSizeInches resolves DocumentSize to physical paper dimensions.
func (c Config) PageSizeInches() (width, height float64) {
	if c.DocumentSize == "A4" {
		return 8.27, 11.69
	}
	return 8.5, 11 // Letter
}

var defaultHeadingLabels = map[string]string{
	resume.SectionEducations:      "EDUCATION",
	resume.SectionWorkExperiences: "WORK EXPERIENCE",
	resume.SectionProjects:        "PROJECTS",
	resume.SectionSkills:          "SKILLS",
	resume.SectionPublications:    "PUBLICATIONS",
	resume.SectionCertifications:  "CERTIFICATIONS",
	resume.SectionCustom:          "ADDITIONAL",
}

var defaultSectionOrder = []string{
	resume.SectionEducations,
	resume.SectionWorkExperiences,
	resume.SectionProjects,
	resume.SectionSkills,
	resume.SectionPublications,
	resume.SectionCertifications,
	resume.SectionCustom,
}
