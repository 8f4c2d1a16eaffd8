// Package pipeline runs the complete planning flow shared by the CLI
// and the API server.
//
// # Architecture
//
// One run has three stages:
//
//  1. Estimate: workforce, costs, materials, and schedule from the spec
//  2. Layout: the architectural blueprint via the layout planner
//  3. Analyze: the narrative assessment (model-backed or fallback)
//
// Results are cached as a whole, keyed by the content hash of the
// validated spec, so identical requests are served without recomputing.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Spec: spec})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/nirmanlabs/nirman/pkg/assist"
	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/estimate"
	"github.com/nirmanlabs/nirman/pkg/layout"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// Options configures one pipeline run. The struct supports JSON
// serialization for API requests.
type Options struct {
	// Spec is the project to plan. Zero-valued optional fields are
	// filled with defaults before validation.
	Spec plan.ProjectSpec `json:"spec"`

	// Strategy selects the corridor placement. Empty selects the
	// layout package default.
	Strategy string `json:"strategy,omitempty"`

	// AspectRatio overrides the footprint shape. Zero selects the
	// layout package default.
	AspectRatio float64 `json:"aspect_ratio,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Assist *assist.Client `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills spec defaults and validates the options.
// Idempotent; every Runner entry point calls it.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Spec.ApplyDefaults()
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if o.Strategy != "" && !layout.ValidStrategies[o.Strategy] {
		return errors.New(errors.ErrCodeInvalidStrategy, "invalid strategy: %q", o.Strategy)
	}
	o.validated = true
	return nil
}

// Result is the complete plan bundle. The JSON field names form the
// API wire format; Timeline and Schedule intentionally carry the same
// data, the latter kept as a legacy alias.
type Result struct {
	PlanID   string `json:"plan_id"`
	SpecHash string `json:"spec_hash"`

	Spec      plan.ProjectSpec    `json:"input"`
	Workers   estimate.Workers    `json:"workers"`
	Costs     estimate.Costs      `json:"cost_breakdown"`
	Materials []estimate.Material `json:"materials"`
	Timeline  []estimate.Phase    `json:"timeline"`
	Schedule  []estimate.Phase    `json:"schedule"`
	Blueprint *layout.Blueprint   `json:"blueprint"`
	Analysis  *assist.Analysis    `json:"ai_analysis"`

	GeneratedAt time.Time `json:"generated_at"`

	Stats     Stats     `json:"-"`
	CacheInfo CacheInfo `json:"-"`
}

// Stats carries timing information for one run.
type Stats struct {
	EstimateTime time.Duration
	LayoutTime   time.Duration
	AnalyzeTime  time.Duration
	TotalTime    time.Duration
}

// CacheInfo reports how the cache served this run.
type CacheInfo struct {
	Hit bool // whole result came from cache
}
