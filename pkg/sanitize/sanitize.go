package sanitize

import (
	"html"
	"regexp"
	"strings"
)

// SQLPattern pairs a detection regex with a stable name used in logs.
// Keeping the set as a table lets each pattern be tested on its own and
// extended without touching the scanning code.
type SQLPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

var sqlPatterns = []SQLPattern{
	{"select_from", regexp.MustCompile(`(?i)\bSELECT\b.*\bFROM\b`)},
	{"insert_into", regexp.MustCompile(`(?i)\bINSERT\s+INTO\b`)},
	{"update_set", regexp.MustCompile(`(?i)\bUPDATE\b.*\bSET\b`)},
	{"delete_from", regexp.MustCompile(`(?i)\bDELETE\s+FROM\b`)},
	{"drop_table", regexp.MustCompile(`(?i)\bDROP\s+TABLE\b`)},
	{"union_select", regexp.MustCompile(`(?i)\bUNION\s+(?:ALL\s+)?SELECT\b`)},
	{"comment_marker", regexp.MustCompile(`--|/\*|\*/`)},
	{"boolean_tautology", regexp.MustCompile(`(?i)\b(?:OR|AND)\b\s+\d+\s*=\s*\d+`)},
	{"quoted_tautology", regexp.MustCompile(`(?i)'\s*(?:OR|AND)\s+'`)},
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// StripHTML removes all markup tags and decodes HTML entities, leaving only
// text content. The second return value reports whether at least one
// recognizable tag was present in the input.
func StripHTML(s string) (string, bool) {
	if !htmlTagRegex.MatchString(s) {
		return s, false
	}
	stripped := htmlTagRegex.ReplaceAllString(s, "")
	return html.UnescapeString(stripped), true
}

// DetectSQLInjection scans for the fixed pattern set, short-circuiting on
// the first match. The returned name identifies the matched pattern for
// logging; it is never shown to the caller.
func DetectSQLInjection(s string) (bool, string) {
	for _, p := range sqlPatterns {
		if p.Pattern.MatchString(s) {
			return true, p.Name
		}
	}
	return false, ""
}

// NormalizeWhitespace collapses any run of whitespace into a single space
// and trims the result. Idempotent.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// ContainsForbiddenWord reports whether any configured word occurs in s,
// case-insensitively. An empty set never matches. The matched word from the
// configured set is returned for logging.
func ContainsForbiddenWord(s string, words []string) (bool, string) {
	if len(words) == 0 {
		return false, ""
	}
	lowered := strings.ToLower(s)
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(w)) {
			return true, w
		}
	}
	return false, ""
}

// SQLPatterns exposes the detection table so each entry can be exercised
// individually in tests.
func SQLPatterns() []SQLPattern {
	return sqlPatterns
}
