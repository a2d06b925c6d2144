// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/raido/internal/models"

// Provider is the interface for vault tree queries and note IO.
// All paths are relative to the vault root with forward slashes;
// the empty string designates the root folder.
type Provider interface {
	// Root returns a Node describing the vault root folder.
	Root() models.Node
	// Children returns the immediate children of dir (files and folders).
	Children(dir string) ([]models.Node, error)
	// Stat resolves a path to a node. Returns os.ErrNotExist when absent.
	Stat(path string) (models.Node, error)
	// List walks dir recursively and returns every .md file path.
	List(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
}
