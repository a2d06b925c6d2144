package waypoint

import "strings"

// Kind identifies a marker family. Each kind has a configurable trigger
// flag and a fixed begin/end delimiter pair.
type Kind int

const (
	KindWaypoint Kind = iota
	KindLandmark
)

func (k Kind) String() string {
	if k == KindLandmark {
		return "Landmark"
	}
	return "Waypoint"
}

// Begin returns the begin delimiter line for the kind.
func (k Kind) Begin() string { return "%% Begin " + k.String() + " %%" }

// End returns the end delimiter line for the kind.
func (k Kind) End() string { return "%% End " + k.String() + " %%" }

// flag returns the configured trigger flag for a kind.
func (e *Engine) flag(k Kind) string {
	if k == KindLandmark {
		return e.set.LandmarkFlag
	}
	return e.set.WaypointFlag
}

// kinds is the detection priority order.
var kinds = [...]Kind{KindWaypoint, KindLandmark}

// bounds describes the located index block region within a note.
type bounds struct {
	start   int  // line index of the flag or begin delimiter
	end     int  // line index of the end delimiter, -1 when absent
	callout bool // block is wrapped in a "> " block quote
	rawFlag bool // start line is a raw trigger flag, not an established block
}

// stripCallout trims a line and removes at most one leading ">" marker,
// reporting whether one was present.
func stripCallout(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ">") {
		return strings.TrimSpace(trimmed[1:]), true
	}
	return trimmed, false
}

// findFlag returns the index of the first line containing flag, or -1.
func findFlag(lines []string, flag string) int {
	for i, line := range lines {
		stripped, _ := stripCallout(line)
		if strings.Contains(stripped, flag) {
			return i
		}
	}
	return -1
}

// findBounds locates the first index block of the given kind: the start is
// the first line matching either the trigger flag or the begin delimiter,
// the end is the next line equal to the end delimiter. Only the first
// occurrence is honored.
func findBounds(lines []string, flag string, k Kind) (bounds, bool) {
	b := bounds{start: -1, end: -1}
	for i, line := range lines {
		stripped, callout := stripCallout(line)
		if b.start < 0 {
			switch {
			case stripped == k.Begin():
				b.start, b.callout = i, callout
			case strings.Contains(stripped, flag):
				b.start, b.callout, b.rawFlag = i, callout, true
			}
			continue
		}
		if stripped == k.End() {
			b.end = i
			break
		}
	}
	if b.start < 0 {
		return bounds{}, false
	}
	return b, true
}
