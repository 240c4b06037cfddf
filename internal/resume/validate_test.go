package resume

import (
	"strings"
	"testing"
)

func TestValidateCleanResume(t *testing.T) {
	raw := []byte(`{
		"profile": {"name": "Jordan Lee", "email": "jordan@example.com"},
		"workExperiences": [{
			"company": "Acme",
			"jobTitle": "Engineer",
			"date": "2020 - 2022",
			"descriptions": ["Built the billing pipeline"]
		}]
	}`)

	report := Validate(raw, DefaultLimits())
	if !report.Valid {
		t.Fatalf("expected valid report, got issues %v", report.Issues)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
}

func TestValidateRequiresName(t *testing.T) {
	report := Validate([]byte(`{"profile": {"email": "a@b.c"}}`), DefaultLimits())
	if report.Valid {
		t.Fatalf("expected invalid report")
	}
	if !containsMessage(report.Issues, "Name is required") {
		t.Fatalf("expected name issue, got %v", report.Issues)
	}
}

func TestValidateEntryCountCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"profile": {"name": "n"}, "workExperiences": [`)
	for i := 0; i < 3; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"company": "c", "jobTitle": "t", "date": "d", "descriptions": ["x"]}`)
	}
	b.WriteString(`]}`)

	limits := DefaultLimits()
	limits.MaxWorkExperiences = 2

	report := Validate([]byte(b.String()), limits)
	if !containsMessage(report.Issues, "Too many work experiences (max: 2)") {
		t.Fatalf("expected cap issue, got %v", report.Issues)
	}
}

func TestValidateSettingsLint(t *testing.T) {
	raw := []byte(`{
		"profile": {"name": "n"},
		"settings": {"themeColor": "blue", "fontSize": "40", "documentSize": "Legal"}
	}`)

	report := Validate(raw, DefaultLimits())
	for _, want := range []string{
		"Theme color must be a valid hex color",
		"Font size must be between 8 and 16",
		"Document size must be Letter or A4",
	} {
		if !containsMessage(report.Issues, want) {
			t.Fatalf("expected issue %q, got %v", want, report.Issues)
		}
	}
}

func TestValidateShortHexColorAccepted(t *testing.T) {
	raw := []byte(`{"profile": {"name": "n"}, "settings": {"themeColor": "#1f2"}}`)
	report := Validate(raw, DefaultLimits())
	if containsMessage(report.Issues, "Theme color must be a valid hex color") {
		t.Fatalf("expected 3-digit hex to pass, got %v", report.Issues)
	}
}

func TestValidateStructuralErrors(t *testing.T) {
	report := Validate([]byte(`{"profile": {"name": "n"}, "workExperiences": "nope"}`), DefaultLimits())
	if report.Valid {
		t.Fatalf("expected schema violation to invalidate the resume")
	}
}

func TestValidateNonJSONBody(t *testing.T) {
	report := Validate([]byte(`this is not json`), DefaultLimits())
	if report.Valid || !containsMessage(report.Issues, "body is not a JSON object") {
		t.Fatalf("expected body issue, got %+v", report)
	}
}

func TestValidateGroupedSkillsLint(t *testing.T) {
	raw := []byte(`{
		"profile": {"name": "n"},
		"workExperiences": [{"company": "c", "jobTitle": "t", "descriptions": ["x"]}],
		"skills": [{"category": "", "skills": []}]
	}`)

	report := Validate(raw, DefaultLimits())
	if !containsMessage(report.Issues, "Skill category 1: Category name is required") {
		t.Fatalf("expected category issue, got %v", report.Issues)
	}
	if !containsMessage(report.Issues, "Skill category 1: No skills listed in category") {
		t.Fatalf("expected empty-category issue, got %v", report.Issues)
	}
}

func containsMessage(list []string, want string) bool {
	for _, msg := range list {
		if msg == want {
			return true
		}
	}
	return false
}
