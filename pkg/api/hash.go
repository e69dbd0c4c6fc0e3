package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the hex BLAKE3 digest of document content.
func Digest(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Changed reports whether content no longer matches the recorded digest.
// An empty digest never matches.
func (d RecentDocument) Changed(content string) bool {
	return d.Digest == "" || d.Digest != Digest(content)
}
