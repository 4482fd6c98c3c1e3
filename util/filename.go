package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// disallowed matches every rune outside of word characters, spaces, hyphens, underscores and periods.
// Letters and digits of any script count as word characters.
var disallowed = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_ .\-]`)

// SanitizeFilename turns an arbitrary title into a filesystem-safe path segment.
// Disallowed characters are removed rather than replaced, so distinct titles do not merge on a shared placeholder.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(disallowed.ReplaceAllString(name, ""))
}

// ShortenPath returns a replacement for path (given without its extension) when the absolute
// form of path+ext exceeds limit characters. A base name that starts with a "<prefix> <number>"
// token is cut down to that token; other names are truncated to fit.
// The boolean reports whether the path was changed.
func ShortenPath(path, ext, prefix string, limit int) (string, bool) {
	full := path + ext
	if abs, err := filepath.Abs(full); err == nil {
		full = abs
	}

	length := utf8.RuneCountInString(full)
	if limit <= 0 || length <= limit {
		return path, false
	}

	dir, base := filepath.Split(path)

	if token, ok := ReGroups(lecturePattern(prefix), base)["lecture"]; ok && prefix != "" {
		return dir + token, true
	}

	runes := []rune(base)
	keep := len(runes) - (length - limit)
	if keep < 1 {
		keep = 1
	}
	return dir + strings.TrimSpace(string(runes[:keep])), true
}

// lecturePatterns caches compiled ordinal patterns by prefix.
var lecturePatterns sync.Map

// lecturePattern matches the ordinal token a numbered file name starts with.
func lecturePattern(prefix string) *regexp.Regexp {
	if re, ok := lecturePatterns.Load(prefix); ok {
		return re.(*regexp.Regexp)
	}

	re, _ := lecturePatterns.LoadOrStore(prefix, regexp.MustCompile(`^(?P<lecture>`+regexp.QuoteMeta(prefix)+` \d+)`))
	return re.(*regexp.Regexp)
}

// Segment sanitizes name for use as a single path segment, substituting fallback
// when nothing but dots remains.
func Segment(name, fallback string) string {
	s := SanitizeFilename(name)
	if strings.Trim(s, ".") == "" {
		return fallback
	}
	return s
}
