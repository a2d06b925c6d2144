package waypoint

import (
	"fmt"
	"strings"
)

// SyncAll runs one full pass over the vault: every note carrying an index
// block or trigger flag is regenerated (or error-stamped when misplaced),
// and registry rows whose notes no longer qualify are purged.
func (e *Engine) SyncAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	paths, err := e.store.List("")
	if err != nil {
		return fmt.Errorf("waypoint: sync: %w", err)
	}

	live := make(map[string]struct{})
	for _, p := range paths {
		for _, kind := range kinds {
			raw, readErr := e.store.Read(p)
			if readErr != nil {
				e.log.Warn("sync: read failed", "path", p, "error", readErr.Error())
				break
			}
			lines := strings.Split(string(raw), "\n")

			b, found := findBounds(lines, e.flag(kind), kind)
			if !found {
				continue
			}
			if b.rawFlag {
				if parentOf(p) == "" || !e.resolver.IsFolderNote(p) {
					msg := fmt.Sprintf("A %s can only be generated in a folder note.", kind)
					if parentOf(p) == "" {
						msg = fmt.Sprintf("Cannot generate a %s in the root folder of the vault.", kind)
					}
					if printErr := e.printError(p, lines, b.start, msg); printErr != nil {
						e.log.Warn("sync: error print failed", "path", p, "error", printErr.Error())
					}
					continue
				}
			}
			if updErr := e.update(p, kind); updErr != nil {
				e.log.Warn("sync: regeneration failed", "path", p, "kind", kind.String(), "error", updErr.Error())
				continue
			}
			live[p+"\x00"+kind.String()] = struct{}{}
			e.log.Debug("sync: regenerated", "path", p, "kind", kind.String())
		}
	}

	if e.reg != nil {
		rows, listErr := e.reg.List()
		if listErr != nil {
			return listErr
		}
		for _, row := range rows {
			if _, ok := live[row.Path+"\x00"+row.Kind]; ok {
				continue
			}
			if delErr := e.reg.Delete(row.Path); delErr == nil {
				e.log.Debug("sync: removed stale", "path", row.Path)
				if e.notify != nil {
					e.notify("removed", row.Path)
				}
			}
		}
	}
	return nil
}
