package compose

import (
	"strings"

	"resume-render-api/internal/resume"
	"resume-render-api/internal/style"
)

const contactSeparator = " • "

// Compose flattens rec into the draw list consumed by renderer backends.
// The output depends only on the record and the resolved style, so repeated
// calls with the same inputs produce identical slices.
//
// The header block always comes first. After it, sections follow
// cfg.SectionOrder and are emitted only when both visible and non-empty.
func Compose(rec resume.Record, cfg style.Config) []DrawInstruction {
	out := headerBlock(rec.Profile)

	for _, key := range cfg.SectionOrder {
		if !cfg.SectionVisibility[key] || rec.SectionEmpty(key) {
			continue
		}
		out = append(out, DrawInstruction{
			Op:      OpSectionHeading,
			Section: key,
			Text:    cfg.SectionHeadingLabels[key],
		})
		out = append(out, sectionBody(rec, key, cfg.BulletVisibility[key])...)
	}
	return out
}

// headerBlock emits the name, up to two contact lines (email and phone,
// then location and URL), and the summary paragraph. Absent fields drop
// out without leaving separators behind.
func headerBlock(p resume.Profile) []DrawInstruction {
	out := make([]DrawInstruction, 0, 4)
	if p.Name != "" {
		out = append(out, DrawInstruction{Op: OpName, Text: p.Name})
	}

	first := make([]ContactPart, 0, 2)
	if p.Email != "" {
		first = append(first, ContactPart{Text: p.Email, Link: "mailto:" + p.Email})
	}
	if p.Phone != "" {
		first = append(first, ContactPart{Text: p.Phone})
	}
	out = appendContactLine(out, first)

	second := make([]ContactPart, 0, 2)
	if p.Location != "" {
		second = append(second, ContactPart{Text: p.Location})
	}
	if p.URL != "" {
		second = append(second, ContactPart{Text: p.URL, Link: linkTarget(p.URL)})
	}
	out = appendContactLine(out, second)

	if p.Summary != "" {
		out = append(out, DrawInstruction{Op: OpSummary, Text: p.Summary})
	}
	return out
}

func appendContactLine(out []DrawInstruction, parts []ContactPart) []DrawInstruction {
	if len(parts) == 0 {
		return out
	}
	texts := make([]string, len(parts))
	for i, part := range parts {
		texts[i] = part.Text
	}
	return append(out, DrawInstruction{
		Op:    OpContact,
		Text:  strings.Join(texts, contactSeparator),
		Parts: parts,
	})
}

func linkTarget(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

func sectionBody(rec resume.Record, key string, marker bool) []DrawInstruction {
	var out []DrawInstruction
	switch key {
	case resume.SectionEducations:
		for _, edu := range rec.Educations {
			out = appendEntry(out, key, educationLabel(edu), edu.Date, edu.Descriptions, marker)
		}
	case resume.SectionWorkExperiences:
		for _, exp := range rec.WorkExperiences {
			out = appendEntry(out, key, joinLabel(exp.Company, exp.JobTitle), exp.Date, exp.Descriptions, marker)
		}
	case resume.SectionProjects:
		for _, project := range rec.Projects {
			out = appendEntry(out, key, joinLabel(project.Name, project.Company), project.Date, project.Descriptions, marker)
		}
	case resume.SectionSkills:
		for _, line := range resume.FormatSkills(rec.Skills) {
			out = append(out, DrawInstruction{
				Op:         OpBullet,
				Section:    key,
				Text:       line.Text,
				BoldPrefix: line.BoldPrefix,
				Marker:     marker,
			})
		}
	case resume.SectionPublications:
		for _, pub := range rec.Publications {
			out = appendEntry(out, key, pub.Name, pub.Date, pub.Descriptions, marker)
		}
	case resume.SectionCertifications:
		for _, cert := range rec.Certifications {
			out = appendEntry(out, key, cert.Name, cert.Date, cert.Descriptions, marker)
		}
	case resume.SectionCustom:
		for _, desc := range rec.Custom.Descriptions {
			out = append(out, DrawInstruction{Op: OpBullet, Section: key, Text: desc, Marker: marker})
		}
	}
	return out
}

// appendEntry emits the entry header line plus one bullet per description.
// An entry with no descriptions still gets its header, and an empty label
// is kept rather than skipping the entry.
func appendEntry(out []DrawInstruction, section, label, date string, descriptions []string, marker bool) []DrawInstruction {
	out = append(out, DrawInstruction{
		Op:        OpEntryHeader,
		Section:   section,
		Text:      label,
		RightText: date,
	})
	for _, desc := range descriptions {
		out = append(out, DrawInstruction{Op: OpBullet, Section: section, Text: desc, Marker: marker})
	}
	return out
}

func educationLabel(edu resume.Education) string {
	label := joinLabel(edu.School, edu.Degree)
	if edu.GPA == "" {
		return label
	}
	if label == "" {
		return "GPA: " + edu.GPA
	}
	return label + " | GPA: " + edu.GPA
}

// joinLabel joins the two halves of an entry label with " - ", dropping
// whichever side is empty so no dangling separator is rendered.
func joinLabel(left, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return left + " - " + right
	}
}
