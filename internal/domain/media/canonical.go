package media

import "strings"

// Canonicalize reduces a path-like string to its trailing filename segment.
// The second return value is false when nothing usable is left (empty,
// whitespace-only, or a path ending in "/"). Canonicalize is idempotent.
func Canonicalize(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// CanonicalizePtr is Canonicalize for optional values; nil is absent.
func CanonicalizePtr(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return Canonicalize(*s)
}

// CanonicalPtr returns the canonical filename as a pointer, nil when absent.
// Used when writing nullable filename columns.
func CanonicalPtr(s *string) *string {
	name, ok := CanonicalizePtr(s)
	if !ok {
		return nil
	}
	return &name
}
