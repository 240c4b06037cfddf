package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-render-api/internal/compose"
	"resume-render-api/internal/pdftext"
	"resume-render-api/internal/render"
	"resume-render-api/internal/resume"
	"resume-render-api/internal/style"
)

func main() {
	outPath := flag.String("out", "./out/sample_resume.pdf", "output path for the generated PDF")
	fontsDir := flag.String("fonts", "./static/fonts", "directory holding OpenSans TTF files")
	flag.Parse()

	raw := sampleResumeJSON()
	rec := resume.Normalize(raw)
	cfg := style.Resolve(raw)
	doc := render.Document{
		Instructions: compose.Compose(rec, cfg),
		Style:        cfg,
	}

	backend := render.NewNativeBackend(*fontsDir)
	out, err := render.Assemble(context.Background(), backend, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outPath, rec, out.Bytes); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRenderedPDF(*outPath, rec); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%d bytes, %s backend)\n", *outPath, out.Meta.ByteLength, out.Meta.Backend)
}

func writeOutputs(outPath string, rec resume.Record, pdfBytes []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
		return err
	}

	modelPath := filepath.Join(dir, "sample_resume_model.json")
	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(modelPath, payload, 0o644)
}

func sampleResumeJSON() []byte {
	return []byte(`{
		"profile": {
			"name": "Jordan Lee",
			"email": "jordan.lee@example.com",
			"phone": "+1-555-0102",
			"url": "https://github.com/jordanlee",
			"location": "Austin, TX",
			"summary": "Backend engineer with 8+ years of experience building resilient APIs and data services."
		},
		"workExperiences": [
			{
				"company": "Acme Logistics",
				"jobTitle": "Senior Backend Engineer",
				"date": "2021 - Present",
				"descriptions": [
					"Designed a routing service that reduced shipment latency by 18%.",
					"Implemented distributed tracing to cut incident triage time by 35%."
				]
			},
			{
				"company": "Blue Harbor Systems",
				"jobTitle": "Backend Engineer",
				"date": "2018 - 2021",
				"descriptions": [
					"Built event-driven ingestion pipelines for compliance data feeds."
				]
			}
		],
		"educations": [
			{
				"school": "University of Texas at Austin",
				"degree": "BSc Computer Science",
				"date": "2012 - 2016",
				"gpa": "3.8",
				"descriptions": []
			}
		],
		"projects": [
			{
				"name": "TraceKit",
				"date": "2022",
				"descriptions": ["Open-source span sampling library used by 40+ services."]
			}
		],
		"skills": [
			{"category": "Languages", "skills": ["Go", "Java"]},
			{"category": "Databases", "skills": ["PostgreSQL", "Redis"]},
			{"category": "Cloud", "skills": ["AWS", "Docker", "Kubernetes"]}
		],
		"certifications": [
			{"name": "AWS Solutions Architect Associate", "date": "2023", "descriptions": []}
		]
	}`)
}

// validateRenderedPDF re-reads the written file and checks that the text a
// PDF reader sees contains the sample record's key lines.
func validateRenderedPDF(path string, rec resume.Record) error {
	pdfBytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := render.ValidatePDF(pdfBytes); err != nil {
		return err
	}

	text, err := pdftext.Text(pdfBytes)
	if err != nil {
		return err
	}

	expected := []string{rec.Profile.Name}
	for _, exp := range rec.WorkExperiences {
		expected = append(expected, exp.Company)
	}
	for _, edu := range rec.Educations {
		expected = append(expected, edu.School)
	}
	for _, want := range expected {
		if want == "" {
			continue
		}
		if !strings.Contains(text, want) {
			return fmt.Errorf("rendered text missing %q", want)
		}
	}
	return nil
}
