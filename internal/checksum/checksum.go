// Package checksum fingerprints rendered index blocks for the registry.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Block returns the hex-encoded SHA-256 digest of an index block, given
// its lines as spliced into the note.
func Block(lines []string) string {
	h := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(h[:])
}
