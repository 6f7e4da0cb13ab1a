// Package canonical normalizes free text into comparable keys.
package canonical

import (
	"path"
	"strings"
)

// Canonicalize lower-cases s and drops every character outside [a-z0-9].
// It is total and idempotent.
func Canonicalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FileKey canonicalizes a filename after dropping its directory and extension.
func FileKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return Canonicalize(strings.TrimSuffix(base, path.Ext(base)))
}
