// Package compose flattens a normalized resume record into the ordered
// drawing instructions shared by every renderer backend.
package compose

// Op identifies the layout primitive a DrawInstruction maps to.
type Op string

const (
	OpName           Op = "name"
	OpContact        Op = "contact"
	OpSummary        Op = "summary"
	OpSectionHeading Op = "sectionHeading"
	OpEntryHeader    Op = "entryHeader"
	OpBullet         Op = "bullet"
)

// ContactPart is one segment of a contact line. Link is empty for plain
// text segments such as phone numbers.
type ContactPart struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

// DrawInstruction is a single flattened layout command. Backends walk the
// slice in order and map each Op onto their own drawing primitives, which
// keeps the rendered content identical regardless of backend.
//
// Field usage per Op:
//   - OpName, OpSummary: Text only.
//   - OpContact: Text is the joined display line, Parts carries the
//     segments with optional link targets.
//   - OpSectionHeading: Section and Text (the heading label, possibly "").
//   - OpEntryHeader: Text is the left-hand label, RightText the date.
//   - OpBullet: Text, optional BoldPrefix, and Marker for the "• " glyph.
type DrawInstruction struct {
	Op         Op            `json:"op"`
	Section    string        `json:"section,omitempty"`
	Text       string        `json:"text"`
	BoldPrefix string        `json:"boldPrefix,omitempty"`
	RightText  string        `json:"rightText,omitempty"`
	Parts      []ContactPart `json:"parts,omitempty"`
	Marker     bool          `json:"marker,omitempty"`
}
