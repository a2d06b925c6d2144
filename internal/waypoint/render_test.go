package waypoint

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
)

func statNode(t *testing.T, e *Engine, path string) models.Node {
	t.Helper()
	n, err := e.store.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestRender_NewestFirst(t *testing.T) {
	dir, e := testEngine(t, nil)
	writeFile(t, dir, "Projects/Projects.md", "%% Waypoint %%")
	writeFile(t, dir, "Projects/Alpha.md", "a")
	writeFile(t, dir, "Projects/Beta.md", "b")
	touch(t, dir, "Projects/Alpha.md", time.Date(2024, 3, 14, 12, 0, 0, 0, time.Local))
	touch(t, dir, "Projects/Beta.md", time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local))

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	beta := strings.Index(out, "[[Projects/Beta|Beta]]")
	alpha := strings.Index(out, "[[Projects/Alpha|Alpha]]")
	if beta < 0 || alpha < 0 {
		t.Fatalf("missing rows in output:\n%s", out)
	}
	if beta > alpha {
		t.Errorf("newer Beta should come before Alpha:\n%s", out)
	}
	if !strings.Contains(out, "# Projects") {
		t.Errorf("missing heading:\n%s", out)
	}
	if strings.Contains(out, "Projects/Projects") {
		t.Errorf("folder note should not appear as a row:\n%s", out)
	}
}

func TestRender_UntimedChildrenSortFirst(t *testing.T) {
	dir, e := testEngine(t, nil)
	writeFile(t, dir, "Projects/Sub/Sub.md", "x")
	writeFile(t, dir, "Projects/Newest.md", "y")
	touch(t, dir, "Projects/Newest.md", time.Now())

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	sub := strings.Index(out, "[[Projects/Sub/Sub|Sub]]")
	newest := strings.Index(out, "[[Projects/Newest|Newest]]")
	if sub < 0 || newest < 0 {
		t.Fatalf("missing rows:\n%s", out)
	}
	if sub > newest {
		t.Errorf("untimed folder should sort before timed file:\n%s", out)
	}
}

func TestRender_IgnoredChildNeverAppears(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.IgnorePatterns = []string{"Secret"} })
	writeFile(t, dir, "Projects/Secret.md", "x")
	writeFile(t, dir, "Projects/Open.md", "y")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Secret") {
		t.Errorf("ignored child rendered:\n%s", out)
	}
	if !strings.Contains(out, "Open") {
		t.Errorf("missing visible child:\n%s", out)
	}
}

func TestRender_IgnoredRootRendersNothing(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.IgnorePatterns = []string{"^Projects$"} })
	writeFile(t, dir, "Projects/Alpha.md", "a")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("ignored root should render nothing, got:\n%s", out)
	}
}

func TestRender_FrontmatterDateColumn(t *testing.T) {
	dir, e := testEngine(t, nil)
	writeFile(t, dir, "Projects/Dated.md", "---\ndate: 2024-03-15\n---\nbody")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2024-03-15 (Friday)") {
		t.Errorf("missing formatted frontmatter date:\n%s", out)
	}
}

func TestRender_CustomKeysFromFolderNote(t *testing.T) {
	dir, e := testEngine(t, nil)
	writeFile(t, dir, "Projects/Projects.md", "---\nkeys:\n  - status\n  - tags\n---\n%% Waypoint %%")
	writeFile(t, dir, "Projects/Task.md", "---\nstatus: active\ntags:\n  - go\n  - vault\n---\nbody")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "| Note | Date | status | tags |") {
		t.Errorf("missing custom header:\n%s", out)
	}
	if !strings.Contains(out, "active") {
		t.Errorf("missing status cell:\n%s", out)
	}
	if !strings.Contains(out, "go vault") {
		t.Errorf("tags should join with spaces:\n%s", out)
	}
}

func TestRender_MissingFieldIsEmptyCell(t *testing.T) {
	dir, e := testEngine(t, nil)
	writeFile(t, dir, "Projects/Projects.md", "---\nkeys:\n  - status\n---\n%% Waypoint %%")
	writeFile(t, dir, "Projects/Bare.md", "no frontmatter")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "|  |") {
		t.Errorf("missing field should render an empty cell:\n%s", out)
	}
}

func TestRender_InlineLinkStyle(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.UseWikiLinks = false })
	writeFile(t, dir, "My Projects/Note One.md", "x")

	out, err := e.Render(statNode(t, e, "My Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[Note One](My%20Projects/Note%20One.md)") {
		t.Errorf("missing percent-encoded inline link:\n%s", out)
	}
	if !strings.Contains(out, "[+ New note](My%20Projects/Untitled.md)") {
		t.Errorf("missing inline creation link:\n%s", out)
	}
}

func TestRender_FrontmatterTitleLabel(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.UseFrontmatterTitle = true })
	writeFile(t, dir, "Projects/x1.md", "---\ntitle: Proper Title\n---\nbody")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[[Projects/x1|Proper Title]]") {
		t.Errorf("missing frontmatter title label:\n%s", out)
	}
}

func TestRender_NonMarkdownFilesHiddenByDefault(t *testing.T) {
	dir, e := testEngine(t, nil)
	writeFile(t, dir, "Projects/photo.png", "binary")
	writeFile(t, dir, "Projects/note.md", "x")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "photo.png") {
		t.Errorf("non-markdown file should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "note") {
		t.Errorf("markdown sibling should still appear:\n%s", out)
	}
}

func TestRender_ShowNonMarkdownFiles(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.ShowNonMarkdownFiles = true })
	writeFile(t, dir, "Projects/photo.png", "binary")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "photo.png") {
		t.Errorf("non-markdown file should appear when enabled:\n%s", out)
	}
}

func TestRender_ShowFolderNotes(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.ShowFolderNotes = true })
	writeFile(t, dir, "Projects/Projects.md", "%% Waypoint %%")
	writeFile(t, dir, "Projects/Other.md", "x")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[[Projects/Projects|Projects]]") {
		t.Errorf("folder note should appear as a row when enabled:\n%s", out)
	}
}

func TestRender_ShowEnclosingNote(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) { s.ShowEnclosingNote = true })
	writeFile(t, dir, "Projects/Projects.md", "%% Waypoint %%")
	writeFile(t, dir, "Projects/Other.md", "x")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[[Projects/Projects|Projects]]") {
		t.Errorf("enclosing note should appear as a row when enabled:\n%s", out)
	}
	if !strings.Contains(out, "[[Projects/Other|Other]]") {
		t.Errorf("sibling row missing:\n%s", out)
	}
}

func TestRender_ShowEnclosingNote_OtherFolderNotesStayHidden(t *testing.T) {
	dir, e := testEngine(t, func(s *Settings) {
		s.FolderNoteMode = ModeOutside
		s.ShowEnclosingNote = true
	})
	writeFile(t, dir, "Projects/Sub/inner.md", "x")
	writeFile(t, dir, "Projects/Sub.md", "y")

	out, err := e.Render(statNode(t, e, "Projects"))
	if err != nil {
		t.Fatal(err)
	}
	// One row for the Sub folder; Sub's own folder note stays hidden
	// because it does not enclose the rendered folder.
	if got := strings.Count(out, "[[Projects/Sub|Sub]]"); got != 1 {
		t.Errorf("want exactly the folder row, got %d occurrences:\n%s", got, out)
	}
}

func TestConvertValue(t *testing.T) {
	long := strings.Repeat("x", 50)
	cases := map[string]string{
		"short":  "short",
		"[[Deep/Path/" + long + "]]": "[[Deep/Path/" + long + "|" + long + "]]",
		"https://example.com/" + long: "[link](https://example.com/" + long + ")",
		long: long,
	}
	for in, want := range cases {
		if got := convertValue(in); got != want {
			t.Errorf("convertValue(%q) = %q, want %q", in, got, want)
		}
	}
}
