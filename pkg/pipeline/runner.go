package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/document"
	"github.com/matzehuels/archdiagram/pkg/links"
	"github.com/matzehuels/archdiagram/pkg/mermaid"
	"github.com/matzehuels/archdiagram/pkg/observability"
)

const cacheKeyType = "document"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Sink receives extraction and detection events.
	Sink observability.Sink
	// Detector bounds the cycle check.
	Detector mermaid.Detector
	// Links configures the Mermaid Live Editor links.
	Links links.Options
	// TTL is how long generated documents stay cached.
	TTL time.Duration
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
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Sink:     observability.NoopSink{},
		Detector: mermaid.Detector{},
		TTL:      cache.TTLDocument,
	}
}

// cachedDocument is the cache representation of the link and assemble stages.
// Extraction and the cycle check always run on the live response.
type cachedDocument struct {
	ViewLink string `json:"view_link"`
	EditLink string `json:"edit_link"`
	Document string `json:"document"`
}

// Execute runs the complete extract → check → link → assemble pipeline.
// Extraction and the cycle check run on every call so diagnostics are emitted
// for cached documents too; only the link and assemble stages are cached.
// The only error a valid request can produce is the NO_DIAGRAM error from
// extraction; detection problems are reported on the sink instead.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID: uuid.New(),
		Stats: Stats{ResponseSize: len(opts.Response)},
	}
	logger := opts.Logger.With("run", result.RunID.String())

	// Stage 1: Extract
	hooks := observability.Pipeline()
	extractStart := time.Now()
	hooks.OnExtractStart(ctx, len(opts.Response))
	block, err := mermaid.ExtractBlock(ctx, opts.Response, r.sink())
	result.Stats.ExtractTime = time.Since(extractStart)
	hooks.OnExtractComplete(ctx, result.Stats.ExtractTime, err)
	if err != nil {
		logger.Debug("no diagram in response", "size", len(opts.Response))
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Block = block

	if len(block.Raw) != len(opts.Response) {
		r.logInventory(logger, opts.Response)
	}

	// Stage 2: Check
	if !opts.SkipDetection {
		checkStart := time.Now()
		mermaid.NewReporter(r.Detector, r.sink(), logger).Report(ctx, block.Body)
		result.Stats.CheckTime = time.Since(checkStart)
	}

	cacheKey := r.Keyer.DocumentKey(opts.ModelName, cache.Hash([]byte(opts.Response)), r.keyOpts())

	// Try cache before linking (unless refresh requested)
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, cacheKey); ok {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			result.ViewLink = cached.ViewLink
			result.EditLink = cached.EditLink
			result.Document = cached.Document
			result.Stats.DocumentSize = len(cached.Document)
			result.CacheHit = true
			logger.Debug("document cache hit", "model", opts.ModelName)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	// Stage 3: Link
	gen := links.New(block.Body, r.Links)
	if result.ViewLink, err = gen.ViewLink(); err != nil {
		return nil, fmt.Errorf("view link: %w", err)
	}
	if result.EditLink, err = gen.EditLink(); err != nil {
		return nil, fmt.Errorf("edit link: %w", err)
	}

	// Stage 4: Assemble
	docStart := time.Now()
	hooks.OnDocumentStart(ctx, opts.ModelName)
	doc, err := document.Diagram(document.DiagramInfo{
		ModelName: opts.ModelName,
		ViewURL:   result.ViewLink,
		EditURL:   result.EditLink,
		Block:     block.Raw,
	})
	result.Stats.DocumentTime = time.Since(docStart)
	hooks.OnDocumentComplete(ctx, opts.ModelName, len(doc), result.Stats.DocumentTime, err)
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}
	result.Document = doc
	result.Stats.DocumentSize = len(doc)

	r.store(ctx, cacheKey, result)

	logger.Info("generated document",
		"model", opts.ModelName,
		"size", result.Stats.DocumentSize,
		"duration", result.Stats.ExtractTime+result.Stats.CheckTime+result.Stats.DocumentTime)

	return result, nil
}

// Check extracts the diagram from response and runs cycle detection on it
// directly, returning the detector's verdict instead of reporting it.
// Extraction events are still recorded on the sink.
func (r *Runner) Check(ctx context.Context, response string) (mermaid.CycleResult, error) {
	block, err := mermaid.ExtractBlock(ctx, response, r.sink())
	if err != nil {
		return mermaid.NoCycle(), err
	}
	return r.Detector.Detect(block.Body)
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedDocument, bool) {
	var cached cachedDocument
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return cached, false
	}
	if !hit {
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil {
		// If deserialization fails, fall through to regenerate
		return cached, false
	}
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(cachedDocument{
		ViewLink: result.ViewLink,
		EditLink: result.EditLink,
		Document: result.Document,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// logInventory lists the fenced blocks of a response that carried more than
// the diagram. Only evaluated at debug level.
func (r *Runner) logInventory(logger *log.Logger, response string) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	blocks, err := mermaid.Inventory(response)
	if err != nil {
		return
	}
	for _, b := range blocks {
		logger.Debug("fenced block", "lang", b.Lang, "lines", b.Lines)
	}
}

func (r *Runner) keyOpts() cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		BaseURL:       r.Links.BaseURL,
		Theme:         r.Links.Theme,
		MaxDepth:      r.Detector.MaxDepth,
		MaxLineLength: r.Detector.MaxLineLength,
	}
}

func (r *Runner) sink() observability.Sink {
	if r.Sink == nil {
		return observability.NoopSink{}
	}
	return r.Sink
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
