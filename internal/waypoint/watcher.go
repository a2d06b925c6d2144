package waypoint

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch starts an fsnotify watcher on the vault root and feeds change
// events into the coalescer until ctx is cancelled.
//
// Create, remove, and rename events pend the affected path's parent
// folder for a debounced propagation pass. A write to a Markdown note
// triggers synchronous flag detection instead, which is how a brand-new
// index is born. New directories are added to the watch list at runtime.
func (e *Engine) Watch(ctx context.Context, vaultRoot string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, vaultRoot); err != nil {
		return err
	}

	coal := NewCoalescer(e.set.Debounce, func(folders []string) {
		for _, f := range folders {
			if err := e.Propagate(f, true); err != nil {
				e.log.Warn("watcher: propagation failed", "folder", f, "error", err.Error())
			}
		}
	})
	defer coal.Stop()

	e.log.Info("watcher: started", "root", vaultRoot)

	for {
		select {
		case <-ctx.Done():
			e.log.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			rel, relErr := filepath.Rel(vaultRoot, ev.Name)
			if relErr != nil || rel == "." {
				continue
			}
			rel = filepath.ToSlash(rel)
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						e.log.Warn("watcher: add new dir failed", "path", ev.Name, "error", addErr.Error())
					}
				}
				coal.Add(parentOf(rel))
			}

			if ev.Op&fsnotify.Write != 0 && strings.HasSuffix(rel, ".md") {
				if detErr := e.DetectFlags(rel); detErr != nil {
					e.log.Warn("watcher: flag detection failed", "path", rel, "error", detErr.Error())
				}
			}

			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				// The node no longer resolves; the parent comes from the
				// path string. A rename's new path arrives as a Create.
				coal.Add(parentOf(rel))
				if e.reg != nil {
					if strings.HasSuffix(rel, ".md") {
						if delErr := e.reg.Delete(rel); delErr == nil && e.notify != nil {
							e.notify("removed", rel)
						}
					} else {
						// A folder takes every registered descendant with it.
						gone, delErr := e.reg.DeleteTree(rel)
						if delErr == nil && e.notify != nil {
							for _, p := range gone {
								e.notify("removed", p)
							}
						}
					}
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.log.Error("watcher: error", "error", watchErr.Error())
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}
