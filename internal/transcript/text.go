package transcript

import (
	"regexp"
	"time"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI removes ANSI escape sequences (ESC [ ... letter) from
// s. Transcript text that originated in a terminal may carry color
// and cursor control codes.
func StripANSI(s string) string {
	if s == "" {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// Truncate shortens s to at most max runes, appending "..." when
// anything was cut. A max of zero or below disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ParseTimestamp parses an ISO-8601 timestamp, accepting both
// fractional-second and whole-second forms. The zero time and
// false are returned for empty or malformed input.
func ParseTimestamp(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}
