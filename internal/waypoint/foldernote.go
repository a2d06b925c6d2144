package waypoint

import (
	"path"
	"strings"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/storage"
)

// Resolver maps folders to their folder notes and back, under the
// configured naming mode. The root folder never has a folder note.
type Resolver struct {
	store    storage.Provider
	mode     string
	override string // folder-note name override, without extension
}

// NewResolver creates a Resolver. mode is ModeInside or ModeOutside.
func NewResolver(store storage.Provider, mode, override string) *Resolver {
	if mode == "" {
		mode = ModeInside
	}
	return &Resolver{store: store, mode: mode, override: override}
}

// noteName returns the folder-note base name for a folder.
func (r *Resolver) noteName(folderName string) string {
	if r.override != "" {
		return r.override
	}
	return folderName
}

// NotePathFor returns the prospective folder-note path for a folder,
// whether or not the note exists. The root folder yields "".
func (r *Resolver) NotePathFor(folder string) string {
	if folder == "" {
		return ""
	}
	if r.mode == ModeOutside {
		return folder + ".md"
	}
	return folder + "/" + r.noteName(path.Base(folder)) + ".md"
}

// FolderNoteFor returns the existing folder note for a folder, if any.
func (r *Resolver) FolderNoteFor(folder string) (string, bool) {
	p := r.NotePathFor(folder)
	if p == "" {
		return "", false
	}
	n, err := r.store.Stat(p)
	if err != nil || n.Kind != models.KindFile {
		return "", false
	}
	return p, true
}

// IsFolderNote reports whether a note is the folder note of some folder.
func (r *Resolver) IsFolderNote(notePath string) bool {
	if notePath == "" || !strings.HasSuffix(notePath, ".md") {
		return false
	}
	base := strings.TrimSuffix(path.Base(notePath), ".md")
	if r.mode == ModeOutside {
		// A sibling folder with the note's own name.
		sibling := strings.TrimSuffix(notePath, ".md")
		n, err := r.store.Stat(sibling)
		return err == nil && n.Kind == models.KindFolder
	}
	parent := parentOf(notePath)
	if parent == "" {
		return false
	}
	return base == r.noteName(path.Base(parent))
}

// RenderTarget returns the folder whose children a note's index lists:
// the note's parent in inside mode, the matching sibling folder in
// outside mode (ok=false when no such folder exists).
func (r *Resolver) RenderTarget(notePath string) (string, bool) {
	if r.mode == ModeOutside {
		sibling := strings.TrimSuffix(notePath, ".md")
		n, err := r.store.Stat(sibling)
		if err != nil || n.Kind != models.KindFolder {
			return "", false
		}
		return sibling, true
	}
	return parentOf(notePath), true
}
