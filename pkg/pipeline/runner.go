package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/circuitgen/pkg/buildinfo"
	"github.com/matzehuels/circuitgen/pkg/cache"
	"github.com/matzehuels/circuitgen/pkg/decoders"
	"github.com/matzehuels/circuitgen/pkg/observability"
	"github.com/matzehuels/circuitgen/pkg/route"
)

// Result contains the outputs of one build.
type Result struct {
	// Decoder is the decoder name.
	Decoder string

	// JobHash is the content hash of the decoder's job.
	JobHash string

	// Layout is the routed grid. It is nil when everything came from the
	// cache.
	Layout *route.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Report holds the build statistics.
	Report *Report

	// CacheHit is set when artifacts and report all came from the cache.
	CacheHit bool

	// Duration is the wall time of the build call.
	Duration time.Duration
}

// Runner encapsulates builds with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// JobHash returns the content hash of a decoder build: the layout version,
// the decoder name and description, and its ops in text form. Editing a
// description or upgrading circuitgen therefore never serves a stale
// report.
func JobHash(d *decoders.Decoder) string {
	var b strings.Builder
	b.WriteString(strconv.Quote(buildinfo.Version))
	b.WriteByte('\n')
	b.WriteString(strconv.Quote(d.Name))
	b.WriteByte('\n')
	b.WriteString(strconv.Quote(d.Description))
	for _, op := range d.Ops {
		b.WriteByte('\n')
		b.WriteString(op.String())
	}
	return cache.Hash([]byte(b.String()))
}

// Build validates d, routes it and renders the requested formats, reading
// and writing the cache.
func (r *Runner) Build(ctx context.Context, d *decoders.Decoder, opts Options) (*Result, error) {
	start := time.Now()
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	job := d.Job()
	result := &Result{Decoder: d.Name, JobHash: JobHash(d)}
	logger := opts.Logger.With("decoder", d.Name)

	if !opts.NoCache {
		if report, artifacts, ok := r.cached(ctx, result.JobHash, opts); ok {
			result.Report = report
			result.Artifacts = artifacts
			result.CacheHit = true
			result.Duration = time.Since(start)
			logger.Debug("cache hit", "hash", result.JobHash[:12])
			return result, nil
		}
	}

	// Route
	observability.Pipeline().OnBuildStart(ctx, d.Name)
	buildStart := time.Now()
	layout, err := job.Build(logger)
	buildTime := time.Since(buildStart)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, d.Name, 0, buildTime, err)
		return nil, fmt.Errorf("build %s: %w", d.Name, err)
	}
	report := newReport(layout, job)
	report.BuildID = uuid.NewString()
	report.Description = d.Description
	report.JobHash = result.JobHash
	report.Version = buildinfo.Version
	report.BuildTime = buildTime
	observability.Pipeline().OnBuildComplete(ctx, d.Name, report.Cells(), buildTime, nil)

	logger.Info("routed decoder",
		"size", fmt.Sprintf("%dx%dx%d", report.Size[0], report.Size[1], report.Size[2]),
		"lanes", report.Lanes,
		"connections", len(report.Connections),
		"duration", buildTime)

	// Render
	observability.Pipeline().OnRenderStart(ctx, d.Name, opts.Formats)
	renderStart := time.Now()
	artifacts, err := Render(ctx, layout, job, report, opts)
	observability.Pipeline().OnRenderComplete(ctx, d.Name, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", d.Name, err)
	}
	logger.Debug("rendered outputs", "formats", opts.Formats, "duration", time.Since(renderStart))

	r.store(ctx, result.JobHash, report, artifacts, opts)

	result.Layout = layout
	result.Report = report
	result.Artifacts = artifacts
	result.Duration = time.Since(start)
	return result, nil
}

// BuildAll builds every decoder concurrently, at most opts.Workers at a
// time. Results are in input order. The first error cancels the rest.
func (r *Runner) BuildAll(ctx context.Context, ds []*decoders.Decoder, opts Options) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(ds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, d := range ds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Build(ctx, d, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// cached returns the report and every requested artifact if all are in
// the cache.
func (r *Runner) cached(ctx context.Context, jobHash string, opts Options) (*Report, map[string][]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ReportKey(jobHash))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, nil, false
	}
	report, err := DecodeReport(data, FormatCBOR)
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "report")

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(jobHash, opts.ArtifactKeyOpts(format)))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return report, artifacts, true
}

// store writes the report and artifacts. Cache failures are logged and
// otherwise ignored.
func (r *Runner) store(ctx context.Context, jobHash string, report *Report, artifacts map[string][]byte, opts Options) {
	set := func(keyType, key string, data []byte) {
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", keyType, "err", err)
			return
		}
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}

	if data, err := report.EncodeCBOR(); err == nil {
		set("report", r.Keyer.ReportKey(jobHash), data)
	}
	for format, data := range artifacts {
		set("artifact", r.Keyer.ArtifactKey(jobHash, opts.ArtifactKeyOpts(format)), data)
	}
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
