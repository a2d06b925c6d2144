package waypoint

import (
	"fmt"
	"strings"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/checksum"
)

// Update regenerates the index block of the given kind inside a note.
// The note must already contain the kind's trigger flag or an established
// block; anything else is caller misuse and returns ErrNoMarker.
func (e *Engine) Update(notePath string, kind Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.update(notePath, kind)
}

func (e *Engine) update(notePath string, kind Kind) error {
	target, ok := e.resolver.RenderTarget(notePath)
	if !ok {
		// Outside mode with no matching sibling folder: nothing to render.
		return fmt.Errorf("waypoint: no render target for %s: %w", notePath, apperr.ErrNotFound)
	}
	node, err := e.store.Stat(target)
	if err != nil {
		return fmt.Errorf("waypoint: stat render target %q: %w", target, err)
	}

	body, err := e.Render(node)
	if err != nil {
		return err
	}

	raw, err := e.store.Read(notePath)
	if err != nil {
		return err
	}
	lines := strings.Split(string(raw), "\n")

	b, found := findBounds(lines, e.flag(kind), kind)
	if !found {
		return fmt.Errorf("waypoint: update %s: %w", notePath, apperr.ErrNoMarker)
	}

	block := []string{kind.Begin()}
	if body != "" {
		block = append(block, strings.Split(body, "\n")...)
	}
	block = append(block, kind.End())
	if b.callout {
		for i := range block {
			block[i] = "> " + block[i]
		}
	}

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:b.start]...)
	out = append(out, block...)
	if b.end >= 0 {
		out = append(out, lines[b.end+1:]...)
	} else {
		out = append(out, lines[b.start+1:]...)
	}
	text := strings.Join(out, "\n")

	changed := text != string(raw)
	if changed {
		if err := e.store.Write(notePath, []byte(text)); err != nil {
			return err
		}
		e.log.Debug("waypoint: block written", "note", notePath, "kind", kind.String())
	}

	// The stored checksum gates redundant registry writes and update
	// notifications on idempotent passes.
	if e.reg != nil {
		cs := checksum.Block(block)
		prev, err := e.reg.GetChecksum(notePath, kind.String())
		if err != nil {
			e.log.Warn("waypoint: registry lookup failed", "note", notePath, "error", err.Error())
		}
		if prev != cs {
			changed = true
			if err := e.reg.Upsert(notePath, kind.String(), cs); err != nil {
				e.log.Warn("waypoint: registry upsert failed", "note", notePath, "error", err.Error())
			}
		}
	}
	if changed && e.notify != nil {
		e.notify("updated", notePath)
	}
	return nil
}

// DetectFlags scans a modified note for raw trigger flags and generates a
// first-time index block for each valid one, then propagates upward.
// Misplaced flags are overwritten in place with an error comment and end
// processing for this pass.
func (e *Engine) DetectFlags(notePath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, kind := range kinds {
		raw, err := e.store.Read(notePath)
		if err != nil {
			return err
		}
		lines := strings.Split(string(raw), "\n")

		i := findFlag(lines, e.flag(kind))
		if i < 0 {
			continue
		}
		// Ignore a flag sitting inside an already established block.
		if b, found := findBounds(lines, e.flag(kind), kind); found && !b.rawFlag {
			continue
		}

		if parentOf(notePath) == "" {
			e.log.Info("waypoint: flag in vault root", "note", notePath)
			return e.printError(notePath, lines, i,
				fmt.Sprintf("Cannot generate a %s in the root folder of the vault.", kind))
		}
		if !e.resolver.IsFolderNote(notePath) {
			e.log.Info("waypoint: flag outside folder note", "note", notePath)
			return e.printError(notePath, lines, i,
				fmt.Sprintf("A %s can only be generated in a folder note.", kind))
		}

		if err := e.update(notePath, kind); err != nil {
			e.log.Warn("waypoint: first generation failed",
				"note", notePath, "kind", kind.String(), "error", err.Error())
			continue
		}
		if err := e.propagate(parentOf(notePath), false); err != nil {
			e.log.Warn("waypoint: propagation failed", "note", notePath, "error", err.Error())
		}
	}
	return nil
}

// printError overwrites the offending line with an inline error comment.
func (e *Engine) printError(notePath string, lines []string, line int, msg string) error {
	_, callout := stripCallout(lines[line])
	comment := "%% Error: " + msg + " %%"
	if callout {
		comment = "> " + comment
	}
	lines[line] = comment
	return e.store.Write(notePath, []byte(strings.Join(lines, "\n")))
}
