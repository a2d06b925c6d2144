package waypoint

import (
	"strings"
	"testing"
)

const testFlag = "%% Waypoint %%"

func TestFindFlag_Basic(t *testing.T) {
	lines := []string{"# Title", "", "%% Waypoint %%", "text"}
	if got := findFlag(lines, testFlag); got != 2 {
		t.Errorf("findFlag = %d, want 2", got)
	}
}

func TestFindFlag_CalloutAndWhitespace(t *testing.T) {
	lines := []string{"  > %% Waypoint %% ", "rest"}
	if got := findFlag(lines, testFlag); got != 0 {
		t.Errorf("findFlag = %d, want 0", got)
	}
}

func TestFindFlag_Absent(t *testing.T) {
	lines := []string{"# Title", "%% Begin Waypoint %%"}
	if got := findFlag(lines, testFlag); got != -1 {
		t.Errorf("findFlag = %d, want -1", got)
	}
}

func TestFindBounds_RawFlag(t *testing.T) {
	lines := []string{"intro", "%% Waypoint %%", "outro"}
	b, ok := findBounds(lines, testFlag, KindWaypoint)
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.start != 1 || b.end != -1 || !b.rawFlag || b.callout {
		t.Errorf("bounds = %+v", b)
	}
}

func TestFindBounds_EstablishedBlock(t *testing.T) {
	lines := []string{
		"intro",
		"%% Begin Waypoint %%",
		"| Note | Date |",
		"%% End Waypoint %%",
		"outro",
	}
	b, ok := findBounds(lines, testFlag, KindWaypoint)
	if !ok {
		t.Fatal("expected bounds")
	}
	if b.start != 1 || b.end != 3 || b.rawFlag {
		t.Errorf("bounds = %+v", b)
	}
}

func TestFindBounds_CalloutBlock(t *testing.T) {
	lines := []string{
		"> %% Begin Waypoint %%",
		"> | Note | Date |",
		"> %% End Waypoint %%",
	}
	b, ok := findBounds(lines, testFlag, KindWaypoint)
	if !ok {
		t.Fatal("expected bounds")
	}
	if !b.callout || b.start != 0 || b.end != 2 {
		t.Errorf("bounds = %+v", b)
	}
}

func TestFindBounds_FirstOccurrenceOnly(t *testing.T) {
	lines := []string{
		"%% Waypoint %%",
		"%% Waypoint %%",
	}
	b, ok := findBounds(lines, testFlag, KindWaypoint)
	if !ok || b.start != 0 {
		t.Errorf("bounds = %+v, ok = %v", b, ok)
	}
}

func TestFindBounds_LandmarkIgnoresWaypoint(t *testing.T) {
	lines := []string{"%% Begin Waypoint %%", "%% End Waypoint %%"}
	if _, ok := findBounds(lines, "%% Landmark %%", KindLandmark); ok {
		t.Error("landmark scan should not match a waypoint block")
	}
}

func TestKindDelimiters(t *testing.T) {
	if KindWaypoint.Begin() != "%% Begin Waypoint %%" || KindWaypoint.End() != "%% End Waypoint %%" {
		t.Errorf("waypoint delimiters = %q / %q", KindWaypoint.Begin(), KindWaypoint.End())
	}
	if !strings.Contains(KindLandmark.Begin(), "Landmark") {
		t.Errorf("landmark begin = %q", KindLandmark.Begin())
	}
}
