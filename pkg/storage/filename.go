package storage

import "strings"

// SecureFilename reduces a user supplied file name to a safe object name:
// path separators are stripped, anything outside [A-Za-z0-9._-] becomes an
// underscore. An empty result falls back to "document.pdf".
func SecureFilename(name string) string {
	// Drop any directory component the client may have sent.
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	secured := strings.Trim(b.String(), "._")
	if secured == "" {
		return "document.pdf"
	}
	return secured
}
