package resume

import "strings"

// DisplayLine is one formatted skills line. BoldPrefix, when present, is
// rendered bold ahead of Text.
type DisplayLine struct {
	BoldPrefix string `json:"boldPrefix,omitempty"`
	Text       string `json:"text"`
}

// FormatSkills reduces the skills union to display lines.
//
// Grouped shape: one line per category, boldPrefix "<category>: ", text =
// skills joined by ", ". Flat shape: each string splits on its first ": ";
// the lead up to and including the colon becomes the bold prefix and the
// remainder (leading space kept) the text, so "Programming: Python, Go"
// yields {"Programming:", " Python, Go"}. A string without ": " is plain
// text. Empty input yields an empty sequence; the composer then omits the
// section entirely.
func FormatSkills(s Skills) []DisplayLine {
	lines := make([]DisplayLine, 0)
	switch s.Kind {
	case SkillsGrouped:
		for _, g := range s.Groups {
			lines = append(lines, DisplayLine{
				BoldPrefix: g.Category + ": ",
				Text:       strings.Join(g.Skills, ", "),
			})
		}
	case SkillsFlat:
		for _, raw := range s.Lines {
			if idx := strings.Index(raw, ": "); idx >= 0 {
				lines = append(lines, DisplayLine{
					BoldPrefix: raw[:idx+1],
					Text:       raw[idx+1:],
				})
				continue
			}
			lines = append(lines, DisplayLine{Text: raw})
		}
	}
	return lines
}
