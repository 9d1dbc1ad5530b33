// Package cache provides the caching layer used by the layout pipeline
// and the HTTP server.
//
// Two backends are available: FileCache for CLI usage (entries live under
// the user cache directory) and RedisCache for the served platform. The
// NullCache disables caching entirely. Key construction is separated into
// the Keyer interface so the server can namespace keys per deployment
// without the backends knowing about it.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Datasets are cheap to re-parse, so they
// expire first; rendered artifacts are the most expensive to recompute.
const (
	TTLDataset  = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures, never for absent keys.
// Set with a zero TTL stores without expiry; a negative TTL means the
// entry is already expired and must never be returned by Get.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey identifies a parsed dataset by the hash of its source bytes.
	DatasetKey(sourceHash string) string
	// LayoutKey identifies a computed layout by dataset hash and layout options.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that affect layout computation.
// Any field change must produce a different cache key.
type LayoutKeyOpts struct {
	VizType string `json:"viz_type"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Inset   int    `json:"inset"`
}

// ArtifactKeyOpts are the options that affect rendering.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	ShowLabels bool   `json:"show_labels"`
	ShowValues bool   `json:"show_values"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without a namespace prefix.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for parsed-dataset caching.
func (k *DefaultKeyer) DatasetKey(sourceHash string) string {
	return "dataset:" + sourceHash
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
