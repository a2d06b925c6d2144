// Package waypoint implements the incremental index-generation engine:
// scanning notes for markers, rendering folder index tables, splicing them
// into note text, and propagating regeneration up the ancestor chain.
package waypoint

import (
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/starford/raido/internal/registry"
	"github.com/starford/raido/internal/storage"
)

// Folder-note naming modes.
const (
	ModeInside  = "inside"
	ModeOutside = "outside"
)

// Settings holds the engine configuration. All fields have working
// zero-adjacent defaults via DefaultSettings.
type Settings struct {
	WaypointFlag          string
	LandmarkFlag          string
	FolderNoteMode        string
	FolderNoteName        string // override; empty means "same as folder"
	ShowFolderNotes       bool
	ShowNonMarkdownFiles  bool
	ShowEnclosingNote     bool
	StopScanAtFolderNotes bool
	UseWikiLinks          bool
	UseFrontmatterTitle   bool
	IndentStyle           string // "spaces" or "tabs"
	IndentWidth           int
	IgnorePatterns        []string
	Debounce              time.Duration
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		WaypointFlag:   "%% Waypoint %%",
		LandmarkFlag:   "%% Landmark %%",
		FolderNoteMode: ModeInside,
		UseWikiLinks:   true,
		IndentStyle:    "spaces",
		IndentWidth:    2,
		Debounce:       500 * time.Millisecond,
	}
}

// NotifyFunc is called after a registry-visible change.
// kind is one of "updated", "removed".
type NotifyFunc func(kind, path string)

// Engine owns the marker scanner, renderer, updater, and propagation walk.
// A single mutex serializes mutation passes; reads (Nearest) are lock-free
// and accept eventual consistency with an overlapping pass.
type Engine struct {
	mu       sync.Mutex
	store    storage.Provider
	reg      *registry.DB // optional; nil disables the registry
	set      Settings
	resolver *Resolver
	ignore   *Matcher
	log      *slog.Logger
	notify   NotifyFunc
}

// New creates an Engine. reg and notify may be nil.
func New(store storage.Provider, reg *registry.DB, set Settings, logger *slog.Logger, notify NotifyFunc) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:    store,
		reg:      reg,
		set:      set,
		resolver: NewResolver(store, set.FolderNoteMode, set.FolderNoteName),
		ignore:   NewMatcher(set.IgnorePatterns, logger),
		log:      logger,
		notify:   notify,
	}
}

// parentOf returns the parent folder of a vault path ("" for the root).
func parentOf(p string) string {
	d := path.Dir(p)
	if d == "." || d == "/" {
		return ""
	}
	return d
}
