package waypoint

import "strings"

// Propagate walks upward from a folder through its ancestor folder notes,
// regenerating every index it finds, until the chain is exhausted. The
// walk is a strict ancestor chain, so it cannot revisit a node.
func (e *Engine) Propagate(folder string, includeSelf bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.propagate(folder, includeSelf)
}

func (e *Engine) propagate(folder string, includeSelf bool) error {
	cur := folder
	if !includeSelf {
		if cur == "" {
			return nil
		}
		cur = parentOf(cur)
	}

	for {
		if notePath, ok := e.resolver.FolderNoteFor(cur); ok {
			kind, matched := e.markerIn(notePath)
			switch {
			case matched:
				if err := e.update(notePath, kind); err != nil {
					e.log.Warn("waypoint: regeneration failed",
						"note", notePath, "kind", kind.String(), "error", err.Error())
				}
			case e.set.StopScanAtFolderNotes:
				return nil
			}
		}
		if cur == "" {
			return nil
		}
		cur = parentOf(cur)
	}
}

// PropagateFrom ripples a regenerated note's change upward: the walk
// starts above the folder that the note indexes.
func (e *Engine) PropagateFrom(notePath string) error {
	return e.Propagate(parentOf(notePath), false)
}

// markerIn tests a note for an existing index, in priority order:
// Waypoint block or flag, then Landmark block or flag.
func (e *Engine) markerIn(notePath string) (Kind, bool) {
	raw, err := e.store.Read(notePath)
	if err != nil {
		return KindWaypoint, false
	}
	lines := strings.Split(string(raw), "\n")
	for _, kind := range kinds {
		if _, found := findBounds(lines, e.flag(kind), kind); found {
			return kind, true
		}
	}
	return KindWaypoint, false
}

// Nearest performs the ancestor walk without mutating anything and
// returns the closest marker-bearing folder note: the target of the
// "jump to the nearest index" action.
func (e *Engine) Nearest(path string) (string, Kind, bool) {
	cur := parentOf(path)
	for {
		if notePath, ok := e.resolver.FolderNoteFor(cur); ok {
			if kind, matched := e.markerIn(notePath); matched {
				return notePath, kind, true
			}
		}
		if cur == "" {
			return "", KindWaypoint, false
		}
		cur = parentOf(cur)
	}
}
