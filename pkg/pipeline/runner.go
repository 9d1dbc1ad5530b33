package pipeline

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/httputil"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher *httputil.Fetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: httputil.NewFetcher(),
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	d, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ItemCount = len(d.Items)
	result.CacheInfo.LoadHit = loadHit

	// Compute dataset hash for cache keys and API responses
	if data, err := json.Marshal(d); err == nil {
		result.DatasetHash = cache.Hash(data)
	}

	r.Logger.Info("loaded dataset",
		"name", d.Name,
		"items", len(d.Items),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CellCount = len(layout.Cells)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"viz_type", layout.VizType,
		"cells", len(layout.Cells),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the dataset with caching and returns cache hit info.
//
// When opts.Dataset is set (API requests carry the dataset inline) the
// cache is bypassed; the dataset is validated and sorted in place.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*dataset.Dataset, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Dataset != nil {
		if err := opts.Dataset.Validate(); err != nil {
			return nil, false, err
		}
		opts.Dataset.SortDescending()
		return opts.Dataset, false, nil
	}

	remote := isRemoteDataset(opts.Path)

	var raw []byte
	var err error
	if remote {
		raw, err = r.fetcher().Fetch(ctx, opts.Path)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "fetch dataset %s", opts.Path)
		}
	} else {
		raw, err = os.ReadFile(opts.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, false, errors.New(errors.ErrCodeFileNotFound, "dataset file not found: %s", opts.Path)
			}
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.Path)
		}
	}

	// Keyed by content hash, so edits to the source miss naturally.
	cacheKey := r.Keyer.DatasetKey(cache.Hash(raw))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var d dataset.Dataset
			if err := json.Unmarshal(data, &d); err == nil {
				return &d, true, nil // Cache hit
			}
		}
	}

	var d *dataset.Dataset
	if remote {
		d, err = dataset.Parse(raw, remoteFormat(opts.Path, opts.Format))
		if err == nil && d.Name == "" {
			d.Name = remoteName(opts.Path)
		}
	} else if opts.Format != "" {
		d, err = dataset.LoadAs(opts.Path, opts.Format)
	} else {
		d, err = dataset.Load(opts.Path)
	}
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(d); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDataset)
	}

	return d, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	d, _, err := r.LoadWithCacheInfo(ctx, opts)
	return d, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, d *dataset.Dataset, opts Options) (mosaic.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return mosaic.Layout{}, false, err
	}
	r.applyLogger(&opts)

	datasetData, _ := json.Marshal(d)
	datasetHash := cache.Hash(datasetData)
	cacheKey := r.Keyer.LayoutKey(datasetHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := mosaic.Unmarshal(data)
		if err == nil {
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}

	layout, err := GenerateLayout(d, opts)
	if err != nil {
		return mosaic.Layout{}, false, err
	}

	if data, err := mosaic.Marshal(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return layout, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, d *dataset.Dataset, opts Options) (mosaic.Layout, error) {
	layout, _, err := r.ComputeLayoutWithCacheInfo(ctx, d, opts)
	return layout, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout mosaic.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := mosaic.Marshal(layout)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := RenderFromLayout(ctx, layout, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout mosaic.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) fetcher() *httputil.Fetcher {
	if r.Fetcher != nil {
		return r.Fetcher
	}
	return httputil.NewFetcher()
}

// isRemoteDataset reports whether the dataset path is an HTTP(S) URL.
func isRemoteDataset(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// remoteFormat resolves the dataset format for a URL: an explicit format
// wins, then the URL path extension, then JSON.
func remoteFormat(rawURL, format string) string {
	if format != "" {
		return format
	}
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.TrimPrefix(path.Ext(u.Path), "."); ext != "" {
			return ext
		}
	}
	return "json"
}

// remoteName derives a dataset name from the URL path, mirroring how file
// loads default the name to the base filename.
func remoteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return u.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
