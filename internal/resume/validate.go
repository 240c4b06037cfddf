package resume

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// Limits caps accepted resume dimensions. The validator is advisory: the
// render path never consults it.
type Limits struct {
	MaxWorkExperiences   int
	MaxEducations        int
	MaxProjects          int
	MaxSkillCategories   int
	MaxDescriptionLength int
	MaxSummaryLength     int
}

// DefaultLimits returns the stock limits.
func DefaultLimits() Limits {
	return Limits{
		MaxWorkExperiences:   10,
		MaxEducations:        5,
		MaxProjects:          10,
		MaxSkillCategories:   10,
		MaxDescriptionLength: 1000,
		MaxSummaryLength:     500,
	}
}

// Report is the outcome of Validate. Issues make the resume invalid;
// warnings are advisory.
type Report struct {
	Valid    bool     `json:"valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

var themeColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// resumeSchema is the structural contract for incoming resume JSON. It stays
// permissive on purpose: unknown keys pass, and the render path accepts even
// payloads this schema rejects.
const resumeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "profile": {"$ref": "#/definitions/profile"},
    "personalInfo": {"$ref": "#/definitions/profile"},
    "workExperiences": {"type": "array", "items": {"type": "object"}},
    "educations": {"type": "array", "items": {"type": "object"}},
    "projects": {"type": "array", "items": {"type": "object"}},
    "skills": {
      "type": "array",
      "items": {"anyOf": [{"type": "string"}, {"type": "object"}]}
    },
    "publications": {"type": "array", "items": {"type": "object"}},
    "certifications": {"type": "array", "items": {"type": "object"}},
    "custom": {"type": "object"},
    "settings": {"type": "object"}
  },
  "definitions": {
    "profile": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "url": {"type": "string"},
        "location": {"type": "string"},
        "summary": {"type": "string"}
      }
    }
  }
}`

// Validate runs the structural schema pass followed by lint checks against
// the given limits.
func Validate(raw []byte, limits Limits) Report {
	issues := make([]string, 0)
	warnings := make([]string, 0)

	schemaLoader := gojsonschema.NewStringLoader(resumeSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)
	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		issues = append(issues, "body is not a JSON object")
		return Report{Valid: false, Issues: issues, Warnings: warnings}
	}
	for _, e := range res.Errors() {
		issues = append(issues, e.String())
	}

	rec := Normalize(raw)

	if strings.TrimSpace(rec.Profile.Name) == "" {
		issues = append(issues, "Name is required")
	}
	if email := strings.TrimSpace(rec.Profile.Email); email != "" && !strings.Contains(email, "@") {
		issues = append(issues, fmt.Sprintf("Invalid email address: %s", email))
	}
	if url := strings.TrimSpace(rec.Profile.URL); url != "" && !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		warnings = append(warnings, "URL format should include http:// or https://")
	}
	if len(rec.Profile.Summary) > limits.MaxSummaryLength {
		issues = append(issues, fmt.Sprintf("Summary exceeds maximum length of %d characters", limits.MaxSummaryLength))
	}

	if len(rec.WorkExperiences) == 0 && len(rec.Educations) == 0 && len(rec.Projects) == 0 {
		warnings = append(warnings, "Resume has no work experience, education, or projects sections")
	}

	if len(rec.WorkExperiences) > limits.MaxWorkExperiences {
		issues = append(issues, fmt.Sprintf("Too many work experiences (max: %d)", limits.MaxWorkExperiences))
	}
	for i, exp := range rec.WorkExperiences {
		prefix := fmt.Sprintf("Work experience %d:", i+1)
		if strings.TrimSpace(exp.Company) == "" {
			issues = append(issues, prefix+" Company name is required")
		}
		if strings.TrimSpace(exp.JobTitle) == "" {
			issues = append(issues, prefix+" Job title is required")
		}
		if len(exp.Descriptions) == 0 {
			warnings = append(warnings, prefix+" No job descriptions provided")
		}
		warnings = appendLengthWarnings(warnings, prefix, exp.Descriptions, limits.MaxDescriptionLength)
	}

	if len(rec.Educations) > limits.MaxEducations {
		issues = append(issues, fmt.Sprintf("Too many education entries (max: %d)", limits.MaxEducations))
	}
	for i, edu := range rec.Educations {
		prefix := fmt.Sprintf("Education %d:", i+1)
		if strings.TrimSpace(edu.School) == "" {
			issues = append(issues, prefix+" School name is required")
		}
		if strings.TrimSpace(edu.Degree) == "" {
			issues = append(issues, prefix+" Degree is required")
		}
	}

	if len(rec.Projects) > limits.MaxProjects {
		issues = append(issues, fmt.Sprintf("Too many projects (max: %d)", limits.MaxProjects))
	}
	for i, project := range rec.Projects {
		prefix := fmt.Sprintf("Project %d:", i+1)
		if strings.TrimSpace(project.Name) == "" {
			issues = append(issues, prefix+" Project name is required")
		}
		warnings = appendLengthWarnings(warnings, prefix, project.Descriptions, limits.MaxDescriptionLength)
	}

	if rec.Skills.Kind == SkillsGrouped {
		if len(rec.Skills.Groups) > limits.MaxSkillCategories {
			issues = append(issues, fmt.Sprintf("Too many skill categories (max: %d)", limits.MaxSkillCategories))
		}
		for i, group := range rec.Skills.Groups {
			prefix := fmt.Sprintf("Skill category %d:", i+1)
			if strings.TrimSpace(group.Category) == "" {
				issues = append(issues, prefix+" Category name is required")
			}
			if len(group.Skills) == 0 {
				issues = append(issues, prefix+" No skills listed in category")
			}
		}
	}

	issues = append(issues, lintSettings(raw)...)

	return Report{Valid: len(issues) == 0, Issues: issues, Warnings: warnings}
}

func appendLengthWarnings(warnings []string, prefix string, descriptions []string, maxLen int) []string {
	for j, d := range descriptions {
		if len(d) > maxLen {
			warnings = append(warnings, fmt.Sprintf("%s Description %d exceeds recommended length (%d chars)", prefix, j+1, maxLen))
		}
	}
	return warnings
}

func lintSettings(raw []byte) []string {
	issues := make([]string, 0)
	settings := gjson.GetBytes(raw, "settings")
	if !settings.IsObject() {
		return issues
	}
	if color := settings.Get("themeColor"); color.Exists() {
		if !themeColorPattern.MatchString(color.String()) {
			issues = append(issues, "Theme color must be a valid hex color")
		}
	}
	if size := settings.Get("fontSize"); size.Exists() {
		n, err := strconv.Atoi(strings.TrimSpace(size.String()))
		if err != nil || n < 8 || n > 16 {
			issues = append(issues, "Font size must be between 8 and 16")
		}
	}
	if docSize := settings.Get("documentSize"); docSize.Exists() {
		switch docSize.String() {
		case "Letter", "A4":
		default:
			issues = append(issues, "Document size must be Letter or A4")
		}
	}
	return issues
}
