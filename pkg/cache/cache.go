// Package cache stores generated documents so that repeated requests for the
// same model response skip extraction and link encoding.
//
// Three backends implement [Cache]:
//
//   - [FileCache] writes JSON entries under the user cache directory (CLI)
//   - [RedisCache] shares entries between server replicas
//   - [NullCache] disables caching
//
// Keys are built by a [Keyer] so that every option that changes the output is
// part of the key.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries.
const (
	// TTLDocument is how long an assembled document stays valid. Documents are
	// a pure function of their inputs, so the TTL only bounds disk usage.
	TTLDocument = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent or expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// DocumentKeyOpts holds the options that influence an assembled document.
type DocumentKeyOpts struct {
	BaseURL       string `json:"base_url,omitempty"`
	Theme         string `json:"theme,omitempty"`
	MaxDepth      int    `json:"max_depth,omitempty"`
	MaxLineLength int    `json:"max_line_length,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey identifies the document generated for a model response.
	DocumentKey(model, responseHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey returns "document:<sha256>" over the model, response hash and options.
func (DefaultKeyer) DocumentKey(model, responseHash string, opts DocumentKeyOpts) string {
	return hashKey("document", model, responseHash, opts)
}
