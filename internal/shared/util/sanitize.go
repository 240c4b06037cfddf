package util

import "strings"

// SanitizeFilePart reduces a free-form string to a filesystem-safe filename
// fragment: ASCII letters, digits, dash and underscore; everything else
// becomes an underscore. Empty input yields "resume".
func SanitizeFilePart(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "resume"
	}
	return s
}
