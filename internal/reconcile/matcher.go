package reconcile

import "strings"

// normalizeName canonicalizes a player name for cross-source matching. OCR
// frequently mangles case and spacing, so both are ignored.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "")
}
