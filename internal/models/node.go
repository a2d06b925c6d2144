// Package models defines the domain types for Raido.
package models

import "time"

// NodeKind distinguishes files from folders.
type NodeKind int

const (
	KindFile NodeKind = iota
	KindFolder
)

// Node represents a file or folder in the vault tree. Paths are relative
// to the vault root with forward slashes; the root itself has Path "".
type Node struct {
	Name      string
	Path      string
	Kind      NodeKind
	CreatedAt time.Time // files only; zero for folders
	Ext       string    // files only, includes the dot (".md")
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool { return n.Kind == KindFolder }

// IsMarkdown reports whether the node is a Markdown file.
func (n Node) IsMarkdown() bool { return n.Kind == KindFile && n.Ext == ".md" }
