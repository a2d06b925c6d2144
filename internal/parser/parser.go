// Package parser extracts YAML frontmatter from Markdown content and
// provides typed access to the fields the table renderer reads.
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
}

// Parse separates YAML frontmatter (between leading --- delimiters) from
// the Markdown body. Invalid YAML falls back to body-only, never an error.
func Parse(data []byte) *Result {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return &Result{Body: string(data)}
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter — treat everything as body.
		return &Result{Body: string(data)}
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		return &Result{Body: string(data)}
	}

	return &Result{Frontmatter: fm, Body: body}
}

// Title returns the frontmatter "title" field, or empty string.
func (r *Result) Title() string {
	if r.Frontmatter == nil {
		return ""
	}
	if s, ok := r.Frontmatter["title"].(string); ok {
		return s
	}
	return ""
}

// Keys returns the frontmatter "keys" list: the extra column names a
// folder note declares for its index table.
func (r *Result) Keys() []string {
	if r.Frontmatter == nil {
		return nil
	}
	raw, ok := r.Frontmatter["keys"].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Date returns the first of the DATE/Date/date frontmatter fields as a
// string, or empty when none is set.
func (r *Result) Date() string {
	for _, key := range []string{"DATE", "Date", "date"} {
		if v, ok := r.Frontmatter[key]; ok {
			return Stringify(v)
		}
	}
	return ""
}

// Field returns the raw frontmatter value for key, matched exactly.
func (r *Result) Field(key string) (interface{}, bool) {
	if r.Frontmatter == nil {
		return nil, false
	}
	v, ok := r.Frontmatter[key]
	return v, ok
}

// Stringify renders a scalar frontmatter value as display text.
func Stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		// Unquoted YAML dates decode as timestamps.
		return s.Format("2006-01-02")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
