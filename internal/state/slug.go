package state

import "strings"

// Slug derives a stable form-field key from its label: lowercased, runs of
// non-alphanumerics collapsed to single underscores.
func Slug(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func fold(s string) string { return strings.ToLower(s) }

func foldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
