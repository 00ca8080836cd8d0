package schema

import "strings"

// NormalizeID folds a raw reference name into a stable identifier:
// ASCII lowercase, trailing ".md" stripped, every run of characters
// outside [a-z0-9] collapsed to a single "-", no leading/trailing "-".
// Non-ASCII alphanumerics are replaced like any other character; this
// is lossy and intentional. The result may be empty.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	s = asciiLower(s)
	s = strings.TrimSuffix(s, ".md")

	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteByte(c)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// asciiLower lowercases A-Z only, independent of locale.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// FileStem strips the directory and extension from a path, then
// normalizes the remainder for last-resort reference matching.
func FileStem(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx != -1 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	return NormalizeID(base)
}
