package resume

// Section keys used across input payloads, style configuration, and the
// composer. Order here is not meaningful; style.SectionOrder decides it.
const (
	SectionEducations      = "educations"
	SectionWorkExperiences = "workExperiences"
	SectionProjects        = "projects"
	SectionSkills          = "skills"
	SectionPublications    = "publications"
	SectionCertifications  = "certifications"
	SectionCustom          = "custom"
)

// SectionKeys lists every renderable section key.
func SectionKeys() []string {
	return []string{
		SectionEducations,
		SectionWorkExperiences,
		SectionProjects,
		SectionSkills,
		SectionPublications,
		SectionCertifications,
		SectionCustom,
	}
}

// Profile is the identity block of a resume. Every field is optional on the
// wire; absent values normalize to empty strings.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	URL      string `json:"url"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// WorkExperience is one employment entry.
type WorkExperience struct {
	Company      string   `json:"company"`
	JobTitle     string   `json:"jobTitle"`
	Date         string   `json:"date"`
	Descriptions []string `json:"descriptions"`
}

// Education is one school entry.
type Education struct {
	School       string   `json:"school"`
	Degree       string   `json:"degree"`
	Date         string   `json:"date"`
	GPA          string   `json:"gpa,omitempty"`
	Descriptions []string `json:"descriptions"`
}

// Project is one project entry.
type Project struct {
	Name         string   `json:"name"`
	Date         string   `json:"date,omitempty"`
	Company      string   `json:"company,omitempty"`
	Descriptions []string `json:"descriptions"`
}

// Publication is one publication entry.
type Publication struct {
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Descriptions []string `json:"descriptions"`
}

// Certification is one certification entry.
type Certification struct {
	Name         string   `json:"name"`
	Date         string   `json:"date"`
	Descriptions []string `json:"descriptions"`
}

// Custom is the free-form trailing section.
type Custom struct {
	Descriptions []string `json:"descriptions"`
}

// SkillGroup is one category of the grouped skills shape.
type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// SkillsKind discriminates the two accepted skills shapes.
type SkillsKind int

const (
	SkillsNone SkillsKind = iota
	SkillsGrouped
	SkillsFlat
)

// Skills is the tagged union of the two skills input shapes, resolved once
// by Normalize. Exactly one of Groups/Lines is populated, per Kind.
type Skills struct {
	Kind   SkillsKind   `json:"-"`
	Groups []SkillGroup `json:"groups,omitempty"`
	Lines  []string     `json:"lines,omitempty"`
}

// Empty reports whether the skills section has nothing to render.
func (s Skills) Empty() bool {
	switch s.Kind {
	case SkillsGrouped:
		return len(s.Groups) == 0
	case SkillsFlat:
		return len(s.Lines) == 0
	default:
		return true
	}
}

// Record is the canonical internal resume representation. All collections are
// non-nil after Normalize; downstream code branches on length only.
type Record struct {
	Profile         Profile          `json:"profile"`
	WorkExperiences []WorkExperience `json:"workExperiences"`
	Educations      []Education      `json:"educations"`
	Projects        []Project        `json:"projects"`
	Skills          Skills           `json:"skills"`
	Publications    []Publication    `json:"publications"`
	Certifications  []Certification  `json:"certifications"`
	Custom          Custom           `json:"custom"`
}

// SectionEmpty reports whether the named section has no renderable entries.
// Unknown keys are empty.
func (r Record) SectionEmpty(key string) bool {
	switch key {
	case SectionEducations:
		return len(r.Educations) == 0
	case SectionWorkExperiences:
		return len(r.WorkExperiences) == 0
	case SectionProjects:
		return len(r.Projects) == 0
	case SectionSkills:
		return r.Skills.Empty()
	case SectionPublications:
		return len(r.Publications) == 0
	case SectionCertifications:
		return len(r.Certifications) == 0
	case SectionCustom:
		return len(r.Custom.Descriptions) == 0
	default:
		return true
	}
}
