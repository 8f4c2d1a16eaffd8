package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nirmanlabs/nirman/pkg/assist"
	"github.com/nirmanlabs/nirman/pkg/cache"
	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/estimate"
	"github.com/nirmanlabs/nirman/pkg/layout"
	"github.com/nirmanlabs/nirman/pkg/observability"
)

// Runner executes planning runs with caching. It is stateless apart
// from the cache and logger; one Runner serves concurrent callers.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching via
// [cache.NullCache]; a nil keyer selects [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs estimate, layout, and analyze for one spec, serving the
// whole result from cache when possible. Cached results keep their
// original PlanID and GeneratedAt so repeated requests are traceable to
// one computation.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	specData, err := json.Marshal(opts.Spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode spec")
	}
	specHash := cache.Hash(specData)
	key := r.Keyer.PlanKey(specHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				logger.Debug("plan served from cache", "hash", specHash[:12])
				cached.CacheInfo.Hit = true
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	start := time.Now()
	result := &Result{
		PlanID:      uuid.NewString(),
		SpecHash:    specHash,
		Spec:        opts.Spec,
		GeneratedAt: time.Now().UTC(),
	}

	// Stage 1: Estimate
	stageStart := time.Now()
	observability.Pipeline().OnStageStart(ctx, "estimate")
	result.Workers = estimate.EstimateWorkers(opts.Spec)
	result.Costs = estimate.EstimateCosts(opts.Spec)
	result.Materials = estimate.EstimateMaterials(opts.Spec)
	result.Timeline = estimate.GenerateSchedule(opts.Spec)
	result.Schedule = result.Timeline
	result.Stats.EstimateTime = time.Since(stageStart)
	observability.Pipeline().OnStageComplete(ctx, "estimate", result.Stats.EstimateTime, nil)

	logger.Info("computed estimates",
		"total_cost", result.Costs.Total,
		"workers", result.Workers.Total,
		"duration", result.Stats.EstimateTime)

	// Stage 2: Layout
	stageStart = time.Now()
	observability.Pipeline().OnStageStart(ctx, "layout")
	var provider layout.Provider
	if opts.Assist != nil {
		provider = opts.Assist
	}
	planner, err := layout.NewPlanner(layout.Options{
		Strategy:    opts.Strategy,
		AspectRatio: opts.AspectRatio,
	}, provider, logger)
	if err != nil {
		return nil, err
	}
	result.Blueprint, err = planner.Plan(ctx, opts.Spec)
	if err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = time.Since(stageStart)
	observability.Pipeline().OnStageComplete(ctx, "layout", result.Stats.LayoutTime, nil)

	logger.Info("generated blueprint",
		"floors", len(result.Blueprint.Floors),
		"rooms", result.Blueprint.TotalRooms(),
		"source", result.Blueprint.Source,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Analyze
	stageStart = time.Now()
	observability.Pipeline().OnStageStart(ctx, "analyze")
	result.Analysis = r.analyze(ctx, opts, result, logger)
	result.Stats.AnalyzeTime = time.Since(stageStart)
	observability.Pipeline().OnStageComplete(ctx, "analyze", result.Stats.AnalyzeTime, nil)

	result.Stats.TotalTime = time.Since(start)

	if data, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.PlanTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return result, nil
}

// analyze produces the narrative section. A missing client or a failed
// model call degrades to the deterministic fallback; analysis problems
// never fail the run.
func (r *Runner) analyze(ctx context.Context, opts Options, result *Result, logger *log.Logger) *assist.Analysis {
	if opts.Assist == nil {
		return assist.FallbackAnalysis(opts.Spec, result.Costs, result.Workers)
	}
	analysis, err := opts.Assist.Analyze(ctx, opts.Spec, result.Costs, result.Workers, result.Materials)
	if err != nil {
		logger.Warn("analysis failed, using fallback", "err", err)
		return assist.FallbackAnalysis(opts.Spec, result.Costs, result.Workers)
	}
	return analysis
}

// logger picks the per-run logger, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
