package internal

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/waypoint"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Vault    VaultConfig       `yaml:"vault"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Auth     AuthConfig        `yaml:"auth"`
	Waypoint WaypointConfig    `yaml:"waypoint"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Waypoint.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds API authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// flagRe describes a valid trigger flag: double-percent delimited with
// non-blank content in between.
var flagRe = regexp.MustCompile(`^%%\s*\S.*%%$`)

// WaypointConfig holds the index-generation engine settings.
type WaypointConfig struct {
	WaypointFlag          string   `yaml:"waypoint_flag"`
	LandmarkFlag          string   `yaml:"landmark_flag"`
	FolderNoteMode        string   `yaml:"folder_note_mode"`
	FolderNoteName        string   `yaml:"folder_note_name"`
	ShowFolderNotes       bool     `yaml:"show_folder_notes"`
	ShowNonMarkdownFiles  bool     `yaml:"show_non_markdown_files"`
	ShowEnclosingNote     bool     `yaml:"show_enclosing_note"`
	StopScanAtFolderNotes bool     `yaml:"stop_scan_at_folder_notes"`
	UseWikiLinks          *bool    `yaml:"use_wiki_links"`
	UseFrontmatterTitle   bool     `yaml:"use_frontmatter_title"`
	IndentStyle           string   `yaml:"indent_style"`
	IndentWidth           int      `yaml:"indent_width"`
	IgnorePatterns        []string `yaml:"ignore_patterns"`
	DebounceMs            int      `yaml:"debounce_ms"`
	DebugLogging          bool     `yaml:"debug_logging"`
}

// Validate normalizes and validates the waypoint configuration. Malformed
// flag strings and empty ignore patterns are reverted/dropped rather than
// rejected: an invalid user value never reaches the engine.
func (c *WaypointConfig) Validate() error {
	defaults := waypoint.DefaultSettings()

	if !flagRe.MatchString(strings.TrimSpace(c.WaypointFlag)) {
		c.WaypointFlag = defaults.WaypointFlag
	}
	if !flagRe.MatchString(strings.TrimSpace(c.LandmarkFlag)) {
		c.LandmarkFlag = defaults.LandmarkFlag
	}
	if c.FolderNoteMode == "" {
		c.FolderNoteMode = defaults.FolderNoteMode
	}
	if c.IndentStyle == "" {
		c.IndentStyle = defaults.IndentStyle
	}
	if c.IndentWidth <= 0 {
		c.IndentWidth = defaults.IndentWidth
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = int(defaults.Debounce / time.Millisecond)
	}
	kept := c.IgnorePatterns[:0]
	for _, p := range c.IgnorePatterns {
		if p != "" {
			kept = append(kept, p)
		}
	}
	c.IgnorePatterns = kept

	return validation.ValidateStruct(c,
		validation.Field(&c.FolderNoteMode, validation.In(waypoint.ModeInside, waypoint.ModeOutside)),
		validation.Field(&c.IndentStyle, validation.In("spaces", "tabs")),
	)
}

// Settings converts the configuration into engine settings.
func (c *WaypointConfig) Settings() waypoint.Settings {
	s := waypoint.DefaultSettings()
	s.WaypointFlag = c.WaypointFlag
	s.LandmarkFlag = c.LandmarkFlag
	s.FolderNoteMode = c.FolderNoteMode
	s.FolderNoteName = c.FolderNoteName
	s.ShowFolderNotes = c.ShowFolderNotes
	s.ShowNonMarkdownFiles = c.ShowNonMarkdownFiles
	s.ShowEnclosingNote = c.ShowEnclosingNote
	s.StopScanAtFolderNotes = c.StopScanAtFolderNotes
	if c.UseWikiLinks != nil {
		s.UseWikiLinks = *c.UseWikiLinks
	}
	s.UseFrontmatterTitle = c.UseFrontmatterTitle
	s.IndentStyle = c.IndentStyle
	s.IndentWidth = c.IndentWidth
	s.IgnorePatterns = c.IgnorePatterns
	s.Debounce = time.Duration(c.DebounceMs) * time.Millisecond
	return s
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	defaults := waypoint.DefaultSettings()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./raido.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Waypoint: WaypointConfig{
			WaypointFlag:   defaults.WaypointFlag,
			LandmarkFlag:   defaults.LandmarkFlag,
			FolderNoteMode: defaults.FolderNoteMode,
			IndentStyle:    defaults.IndentStyle,
			IndentWidth:    defaults.IndentWidth,
			DebounceMs:     int(defaults.Debounce / time.Millisecond),
		},
	}
}
