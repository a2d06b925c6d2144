package parser

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\nkeys:\n  - status\n  - tags\n---\n# Hello\nBody text.\n")
	r := Parse(input)
	if r.Title() != "Hello" {
		t.Errorf("title = %q, want %q", r.Title(), "Hello")
	}
	keys := r.Keys()
	if len(keys) != 2 || keys[0] != "status" || keys[1] != "tags" {
		t.Errorf("keys = %v, want [status tags]", keys)
	}
	if r.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r := Parse(input)
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r := Parse(input)
	// Invalid YAML falls back to treating everything as body.
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
	if r.Body != string(input) {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_UnclosedFrontmatter(t *testing.T) {
	input := []byte("---\ntitle: Dangling\nno closing delimiter")
	r := Parse(input)
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
}

func TestDate_KeyPriority(t *testing.T) {
	input := []byte("---\nDATE: \"2024-01-01\"\ndate: \"2024-12-31\"\n---\nx")
	r := Parse(input)
	if got := r.Date(); got != "2024-01-01" {
		t.Errorf("date = %q, want DATE to win", got)
	}
}

func TestDate_UnquotedTimestamp(t *testing.T) {
	input := []byte("---\ndate: 2024-03-15\n---\nx")
	r := Parse(input)
	if got := r.Date(); got != "2024-03-15" {
		t.Errorf("date = %q, want %q", got, "2024-03-15")
	}
}

func TestDate_Absent(t *testing.T) {
	r := Parse([]byte("---\ntitle: x\n---\nbody"))
	if got := r.Date(); got != "" {
		t.Errorf("date = %q, want empty", got)
	}
	if got := Parse([]byte("plain")).Date(); got != "" {
		t.Errorf("date = %q, want empty without frontmatter", got)
	}
}

func TestKeys_SkipsBlankAndNonString(t *testing.T) {
	input := []byte("---\nkeys:\n  - status\n  - \"  \"\n  - 42\n---\nx")
	r := Parse(input)
	keys := r.Keys()
	if len(keys) != 1 || keys[0] != "status" {
		t.Errorf("keys = %v, want [status]", keys)
	}
}

func TestField_ExactMatch(t *testing.T) {
	r := Parse([]byte("---\nstatus: active\n---\nx"))
	if v, ok := r.Field("status"); !ok || v != "active" {
		t.Errorf("Field(status) = %v, %v", v, ok)
	}
	if _, ok := r.Field("Status"); ok {
		t.Error("field lookup must be case sensitive")
	}
	if _, ok := r.Field("missing"); ok {
		t.Error("missing field must report absent")
	}
}

func TestStringify(t *testing.T) {
	if got := Stringify("s"); got != "s" {
		t.Errorf("Stringify(string) = %q", got)
	}
	if got := Stringify(nil); got != "" {
		t.Errorf("Stringify(nil) = %q", got)
	}
	if got := Stringify(42); got != "42" {
		t.Errorf("Stringify(int) = %q", got)
	}
}
