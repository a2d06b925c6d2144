package waypoint

import (
	"log/slog"
	"regexp"
)

// Matcher evaluates the configured ignore patterns against vault paths.
//
// Each pattern is a regular expression. Empty patterns are skipped and a
// pattern that fails to compile is dropped (fail closed: it never matches)
// with a single warning at construction time, so a bad pattern can never
// abort a scan.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the pattern list.
func NewMatcher(patterns []string, logger *slog.Logger) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			if logger != nil {
				logger.Warn("ignore: invalid pattern dropped",
					slog.String("pattern", p),
					slog.String("error", err.Error()))
			}
			continue
		}
		m.patterns = append(m.patterns, re)
	}
	return m
}

// Ignored reports whether path matches any configured pattern.
func (m *Matcher) Ignored(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
