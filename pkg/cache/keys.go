package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// RenderKeyOpts are the render parameters that change the output for
// the same deck bytes. All of them participate in the key.
type RenderKeyOpts struct {
	Format    string `json:"format"`
	Engine    string `json:"engine"`
	ThemeHash string `json:"theme_hash,omitempty"`
	Slide     string `json:"slide,omitempty"`
}

// RenderKey builds the cache key for one rendered artifact.
// The key format is render:<deck hash>:<opts hash>.
func RenderKey(deck []byte, opts RenderKeyOpts) string {
	optData, _ := json.Marshal(opts)
	return fmt.Sprintf("render:%s:%s", Hash(deck), Hash(optData))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
