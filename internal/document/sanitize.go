package document

import "strings"

// SanitizeText removes control characters except tab, newline and carriage
// return, replaces invalid UTF-8 and trims surrounding space. NUL bytes left by
// some PDF extractors are dropped here as well.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToValidUTF8(s, "�")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// collapseWhitespace joins all whitespace-separated fields with single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
