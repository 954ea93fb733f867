// Package prefix splits and normalizes delimited object-storage prefixes.
package prefix

import "strings"

// WithTrailingDelimiter returns p with delim appended unless it already ends
// with it. The empty string is returned unchanged.
func WithTrailingDelimiter(delim rune, p string) string {
	if p == "" || strings.HasSuffix(p, string(delim)) {
		return p
	}
	return p + string(delim)
}

// Split splits p on delim. Trailing empty segments are dropped, so "a/b/" and
// "a/b//" both yield ["a" "b"].
func Split(delim rune, p string) []string {
	segments := strings.Split(p, string(delim))

	n := len(segments)
	for n > 0 && segments[n-1] == "" {
		n--
	}
	return segments[:n]
}

// Join joins segments with delim and appends a trailing delimiter, the way
// listings return prefixes.
func Join(delim rune, segments []string) string {
	if len(segments) == 0 {
		return string(delim)
	}

	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s)
		b.WriteRune(delim)
	}
	return b.String()
}

// Relative strips the first n bytes of an absolute prefix. Prefixes shorter
// than n are returned as the empty string.
func Relative(p string, n int) string {
	if n >= len(p) {
		return ""
	}
	return p[n:]
}
