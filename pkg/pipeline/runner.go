package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/footlights/pkg/cache"
	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/dataurl"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/imagesize"
	"github.com/matzehuels/footlights/pkg/observability"
)

const cacheKeyType = "artifact"

// Runner renders documents with artifact caching.
//
// A Runner holds no per-render state, so one Runner can serve concurrent
// renders with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Sizes  imagesize.Provider
	Logger *log.Logger

	// Sources loads image bytes for embedding before PNG and PDF
	// conversion. Without it, rasterizing a document whose images are not
	// data URLs fails.
	Sources imagesize.Loader

	convert func(svg []byte, opts Options) ([]byte, error)
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default. When sizes is also an [imagesize.Loader], such as an
// [imagesize.Prober], it becomes the runner's Sources.
func NewRunner(c cache.Cache, sizes imagesize.Provider, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Sizes:   sizes,
		Logger:  logger,
		convert: Convert,
	}
	if l, ok := sizes.(imagesize.Loader); ok {
		r.Sources = l
	}
	return r
}

// Render builds doc, renders it and converts the result to opts.Format.
func (r *Runner) Render(ctx context.Context, doc *config.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no document")
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	docHash, err := HashDocument(doc)
	if err != nil {
		return nil, err
	}
	result := &Result{Format: opts.Format, DocHash: docHash}
	result.Stats.Layers = len(doc.Layers)

	contentHash := docHash
	if opts.Format != FormatSVG {
		embedded, err := embedImages(ctx, doc, r.Sources)
		if err != nil {
			return nil, err
		}
		if embedded != doc {
			doc = embedded
			if contentHash, err = HashDocument(doc); err != nil {
				return nil, err
			}
			logger.Debug("embedded image sources", "format", opts.Format)
		}
	}

	useCache := !opts.NoCache && selfContained(doc)
	key := r.keyer().ArtifactKey(contentHash, opts.ArtifactKeyOpts())
	if useCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			logger.Debug("artifact cache hit", "format", opts.Format, "doc", docHash[:12])
			result.Artifact = data
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	} else if !opts.NoCache {
		logger.Debug("artifact cache bypassed", "reason", "image sources outside the document")
	}

	hooks := observability.Pipeline()

	hooks.OnBuildStart(ctx, len(doc.Layers))
	buildStart := time.Now()
	c, err := doc.Build(ctx, r.Sizes, config.WithLogger(logger))
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, len(doc.Layers), result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}
	logger.Info("built canvas", "layers", c.Len(), "duration", result.Stats.BuildTime)

	hooks.OnRenderStart(ctx, opts.Format)
	renderStart := time.Now()
	svg, err := c.RenderString()
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Format, 0, result.Stats.RenderTime, err)
		return nil, err
	}
	result.Size, _ = c.Layout()

	convertStart := time.Now()
	data, err := r.converter()([]byte(svg), opts)
	result.Stats.ConvertTime = time.Since(convertStart)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), result.Stats.RenderTime+result.Stats.ConvertTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = data

	logger.Info("rendered document",
		"format", opts.Format,
		"size", result.Size,
		"bytes", len(data),
		"duration", result.Stats.RenderTime+result.Stats.ConvertTime)

	if useCache {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		} else {
			logger.Warn("cache artifact", "err", err)
		}
	}
	return result, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) converter() func([]byte, Options) ([]byte, error) {
	if r.convert == nil {
		return Convert
	}
	return r.convert
}

func (r *Runner) keyer() cache.Keyer {
	if r.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return r.Keyer
}

// HashDocument returns the content hash of doc's canonical JSON encoding.
func HashDocument(doc *config.Document) (string, error) {
	data, err := config.Marshal(doc, config.FormatJSON)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// selfContained reports whether every image the document references is
// carried in the document itself. Files and URLs can change without the
// document hash changing.
func selfContained(doc *config.Document) bool {
	for _, style := range doc.Styles {
		if style.Image != nil && !dataurl.IsDataURL(*style.Image) {
			return false
		}
	}
	return true
}
