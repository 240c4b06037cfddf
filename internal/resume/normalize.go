package resume

import "github.com/tidwall/gjson"

// Normalize maps raw request JSON into a canonical Record. It is total:
// absent or wrong-shaped fields become canonical empty values (empty string
// for scalars, empty sequence for collections), never errors. The record
// root is the body itself; personal info is read from the canonical
// "profile" key, falling back to the legacy "personalInfo" alias.
func Normalize(raw []byte) Record {
	root := gjson.ParseBytes(raw)
	return Record{
		Profile:         normalizeProfile(root),
		WorkExperiences: normalizeWorkExperiences(root.Get(SectionWorkExperiences)),
		Educations:      normalizeEducations(root.Get(SectionEducations)),
		Projects:        normalizeProjects(root.Get(SectionProjects)),
		Skills:          normalizeSkills(root.Get(SectionSkills)),
		Publications:    normalizePublications(root.Get(SectionPublications)),
		Certifications:  normalizeCertifications(root.Get(SectionCertifications)),
		Custom:          Custom{Descriptions: scalarList(root.Get("custom.descriptions"))},
	}
}

func normalizeProfile(root gjson.Result) Profile {
	obj := root.Get("profile")
	if !obj.IsObject() {
		obj = root.Get("personalInfo")
	}
	if !obj.IsObject() {
		return Profile{}
	}
	return Profile{
		Name:     scalar(obj.Get("name")),
		Email:    scalar(obj.Get("email")),
		Phone:    scalar(obj.Get("phone")),
		URL:      scalar(obj.Get("url")),
		Location: scalar(obj.Get("location")),
		Summary:  scalar(obj.Get("summary")),
	}
}

func normalizeWorkExperiences(res gjson.Result) []WorkExperience {
	out := make([]WorkExperience, 0)
	eachElement(res, func(v gjson.Result) {
		out = append(out, WorkExperience{
			Company:      scalar(v.Get("company")),
			JobTitle:     scalar(v.Get("jobTitle")),
			Date:         scalar(v.Get("date")),
			Descriptions: scalarList(v.Get("descriptions")),
		})
	})
	return out
}

func normalizeEducations(res gjson.Result) []Education {
	out := make([]Education, 0)
	eachElement(res, func(v gjson.Result) {
		out = append(out, Education{
			School:       scalar(v.Get("school")),
			Degree:       scalar(v.Get("degree")),
			Date:         scalar(v.Get("date")),
			GPA:          scalar(v.Get("gpa")),
			Descriptions: scalarList(v.Get("descriptions")),
		})
	})
	return out
}

func normalizeProjects(res gjson.Result) []Project {
	out := make([]Project, 0)
	eachElement(res, func(v gjson.Result) {
		out = append(out, Project{
			Name:         scalar(v.Get("name")),
			Date:         scalar(v.Get("date")),
			Company:      scalar(v.Get("company")),
			Descriptions: scalarList(v.Get("descriptions")),
		})
	})
	return out
}

func normalizePublications(res gjson.Result) []Publication {
	out := make([]Publication, 0)
	eachElement(res, func(v gjson.Result) {
		out = append(out, Publication{
			Name:         scalar(v.Get("name")),
			Date:         scalar(v.Get("date")),
			Descriptions: scalarList(v.Get("descriptions")),
		})
	})
	return out
}

func normalizeCertifications(res gjson.Result) []Certification {
	out := make([]Certification, 0)
	eachElement(res, func(v gjson.Result) {
		out = append(out, Certification{
			Name:         scalar(v.Get("name")),
			Date:         scalar(v.Get("date")),
			Descriptions: scalarList(v.Get("descriptions")),
		})
	})
	return out
}

// normalizeSkills resolves the duck-typed skills array into the tagged
// union: object elements contribute grouped entries, scalar elements flat
// lines. Grouped entries win when both appear.
func normalizeSkills(res gjson.Result) Skills {
	groups := make([]SkillGroup, 0)
	lines := make([]string, 0)
	if res.IsArray() {
		res.ForEach(func(_, v gjson.Result) bool {
			switch {
			case v.IsObject():
				groups = append(groups, SkillGroup{
					Category: scalar(v.Get("category")),
					Skills:   scalarList(v.Get("skills")),
				})
			case isScalar(v):
				lines = append(lines, v.String())
			}
			return true
		})
	}
	switch {
	case len(groups) > 0:
		return Skills{Kind: SkillsGrouped, Groups: groups, Lines: []string{}}
	case len(lines) > 0:
		return Skills{Kind: SkillsFlat, Groups: []SkillGroup{}, Lines: lines}
	default:
		return Skills{Kind: SkillsNone, Groups: []SkillGroup{}, Lines: []string{}}
	}
}

// scalar coerces a scalar JSON value to a string. Containers and null
// collapse to "" so downstream concatenation is always safe.
func scalar(res gjson.Result) string {
	if isScalar(res) {
		return res.String()
	}
	return ""
}

func isScalar(res gjson.Result) bool {
	switch res.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return true
	default:
		return false
	}
}

// scalarList maps an array element-wise through the scalar rule. Anything
// that is not an array yields an empty list.
func scalarList(res gjson.Result) []string {
	out := make([]string, 0)
	if !res.IsArray() {
		return out
	}
	res.ForEach(func(_, v gjson.Result) bool {
		out = append(out, scalar(v))
		return true
	})
	return out
}

// eachElement visits every element of an array. Elements of the wrong shape
// still produce an entry: field lookups on them miss, so the entry normalizes
// to its canonical empty value rather than being dropped.
func eachElement(res gjson.Result, fn func(gjson.Result)) {
	if !res.IsArray() {
		return
	}
	res.ForEach(func(_, v gjson.Result) bool {
		fn(v)
		return true
	})
}
