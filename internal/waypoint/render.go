package waypoint

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
)

// Column keys always present in a rendered table.
const (
	titleColumn = "Note"
	dateColumn  = "Date"
)

// linkifyThreshold is the length above which custom-column values are
// considered for link conversion.
const linkifyThreshold = 40

var dayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Render produces the index block body for a folder: heading, navigation
// line, and one table row per visible child, newest first. An ignored
// folder renders nothing.
func (e *Engine) Render(root models.Node) (string, error) {
	if root.Path != "" && e.ignore.Ignored(root.Path) {
		return "", nil
	}

	children, err := e.store.Children(root.Path)
	if err != nil {
		return "", fmt.Errorf("waypoint: render %q: %w", root.Path, err)
	}

	// Newest first; entries without a timestamp (folders) sort before
	// all timed entries.
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.CreatedAt.IsZero() != b.CreatedAt.IsZero() {
			return a.CreatedAt.IsZero()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	folderNotePath := e.resolver.NotePathFor(root.Path)
	var rows []models.Node
	for _, c := range children {
		if e.ignore.Ignored(c.Path) {
			continue
		}
		if c.Kind == models.KindFile && !c.IsMarkdown() && !e.set.ShowNonMarkdownFiles {
			continue
		}
		if c.Kind == models.KindFile && e.resolver.IsFolderNote(c.Path) && !e.set.ShowFolderNotes {
			if c.Path == folderNotePath && e.set.ShowEnclosingNote {
				rows = append(rows, c)
			}
			continue
		}
		rows = append(rows, c)
	}

	var b strings.Builder
	b.WriteString("# " + root.Name + "\n")
	b.WriteString(e.navLine(root) + "\n\n")

	extraKeys := e.extraKeys(root, folderNotePath)
	header := append([]string{titleColumn, dateColumn}, extraKeys...)
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")

	for _, c := range rows {
		cells, err := e.rowCells(c, extraKeys)
		if err != nil {
			e.log.Debug("render: row skipped", "path", c.Path, "error", err.Error())
			continue
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// navLine emits the creation links for a new note and, in inside mode,
// a new sub-folder.
func (e *Engine) navLine(root models.Node) string {
	sep := strings.Repeat(" ", e.set.IndentWidth)
	if e.set.IndentStyle == "tabs" {
		sep = "\t"
	}
	join := func(parts ...string) string {
		out := ""
		for _, p := range parts {
			if p == "" {
				continue
			}
			if out != "" {
				out += "/"
			}
			out += p
		}
		return out
	}
	line := e.link(join(root.Path, "Untitled.md"), "+ New note")
	if e.set.FolderNoteMode == ModeInside {
		folderNote := e.resolver.noteName("New folder") + ".md"
		line += sep + e.link(join(root.Path, "New folder", folderNote), "+ New folder")
	}
	return line
}

// link formats a note link per the configured style. Wiki links drop the
// .md extension; inline links percent-encode spaces.
func (e *Engine) link(target, label string) string {
	if e.set.UseWikiLinks {
		return "[[" + strings.TrimSuffix(target, ".md") + "|" + label + "]]"
	}
	return "[" + label + "](" + strings.ReplaceAll(target, " ", "%20") + ")"
}

// extraKeys reads the "keys" frontmatter list of the representative note:
// the folder note when present, otherwise the rendered node itself.
func (e *Engine) extraKeys(root models.Node, folderNotePath string) []string {
	rep := folderNotePath
	if rep != "" {
		if _, err := e.store.Stat(rep); err != nil {
			rep = root.Path
		}
	} else {
		rep = root.Path
	}
	if rep == "" {
		return nil
	}
	data, err := e.store.Read(rep)
	if err != nil {
		return nil
	}
	return parser.Parse(data).Keys()
}

// rowCells renders one table row for a child node.
func (e *Engine) rowCells(c models.Node, extraKeys []string) ([]string, error) {
	var fm *parser.Result
	if c.IsMarkdown() {
		if data, err := e.store.Read(c.Path); err == nil {
			fm = parser.Parse(data)
		}
	}

	cells := make([]string, 0, 2+len(extraKeys))
	cells = append(cells, e.titleCell(c, fm))
	cells = append(cells, e.dateCell(c, fm))
	for _, key := range extraKeys {
		cells = append(cells, fieldCell(fm, key))
	}
	return cells, nil
}

// titleCell links a folder to its prospective folder note and a file to
// itself. Files use the frontmatter title as label when configured.
func (e *Engine) titleCell(c models.Node, fm *parser.Result) string {
	if c.IsFolder() {
		return e.link(e.resolver.NotePathFor(c.Path), c.Name)
	}
	label := c.Name
	if c.IsMarkdown() {
		label = strings.TrimSuffix(label, ".md")
		if e.set.UseFrontmatterTitle && fm != nil {
			if t := fm.Title(); t != "" {
				label = t
			}
		}
	}
	return e.link(c.Path, label)
}

// dateCell prefers the DATE/Date/date frontmatter field over the file
// creation time. Parseable values render as YYYY-MM-DD (Weekday).
func (e *Engine) dateCell(c models.Node, fm *parser.Result) string {
	if fm != nil {
		if raw := fm.Date(); raw != "" {
			if t, err := time.Parse("2006-01-02", raw); err == nil {
				return formatDate(t)
			}
			return raw
		}
	}
	if !c.CreatedAt.IsZero() {
		return formatDate(c.CreatedAt)
	}
	return ""
}

func formatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d (%s)", t.Year(), int(t.Month()), t.Day(), dayNames[t.Weekday()])
}

// fieldCell renders a custom column: tags join with spaces, arrays join
// with commas after per-value link conversion, missing fields are empty.
func fieldCell(fm *parser.Result, key string) string {
	if fm == nil {
		return ""
	}
	v, ok := fm.Field(key)
	if !ok {
		return ""
	}
	if key == "tags" {
		if arr, ok := v.([]interface{}); ok {
			parts := make([]string, 0, len(arr))
			for _, item := range arr {
				parts = append(parts, parser.Stringify(item))
			}
			return strings.Join(parts, " ")
		}
		return parser.Stringify(v)
	}
	if arr, ok := v.([]interface{}); ok {
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			parts = append(parts, convertValue(parser.Stringify(item)))
		}
		return strings.Join(parts, ", ")
	}
	return convertValue(parser.Stringify(v))
}

// convertValue applies link conversion to long values: wiki-link values
// gain a display label before the closing brackets, http(s) URLs become
// labeled links, anything else passes through verbatim.
func convertValue(s string) string {
	if len(s) <= linkifyThreshold {
		return s
	}
	if strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]") && !strings.Contains(s, "|") {
		inner := s[2 : len(s)-2]
		label := inner
		if i := strings.LastIndex(inner, "/"); i >= 0 {
			label = inner[i+1:]
		}
		return "[[" + inner + "|" + label + "]]"
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return "[link](" + s + ")"
	}
	return s
}
