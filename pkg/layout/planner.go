// Package layout implements the procedural floor-plan engine.
//
// The engine partitions a rectangular building footprint into a
// corridor band, a vertical-circulation core, and per-flat room
// sub-partitions. It prefers a candidate layout from an optional
// external collaborator; every external candidate is untrusted and must
// pass the structural Validator, and any failure or rejection falls
// back to the deterministic pipeline.
//
// # Pipeline
//
// The deterministic pipeline has three stages, shared by all corridor
// strategies:
//
//  1. DeriveEnvelope: footprint width/depth from the target area
//  2. PartitionFlats: equal-share flat rectangles per corridor region
//  3. SizeRooms: proportional room placement inside each flat
//
// The pipeline is a pure function of the ProjectSpec: no randomness, no
// wall-clock reads, no hidden counters. Two runs over the same spec
// produce byte-identical coordinates.
//
// # Usage
//
//	planner, err := layout.NewPlanner(layout.Options{Strategy: layout.StrategyCenter}, provider, logger)
//	if err != nil {
//	    return err
//	}
//	bp, err := planner.Plan(ctx, spec)
package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/observability"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// Hints carries the derived footprint to the external collaborator so
// its candidate has a chance of fitting the validated bounds.
type Hints struct {
	Envelope       Envelope `json:"envelope"`
	Strategy       string   `json:"strategy"`
	CorridorY      float64  `json:"corridor_y"`
	CorridorHeight float64  `json:"corridor_height"`
}

// Provider supplies candidate layouts from an external (possibly
// AI-driven) generator. Implementations must return either a complete
// candidate or an error; there is no partial-result handling. The
// planner issues at most one ProposeLayout call per planning run and
// treats every successful return as untrusted input.
type Provider interface {
	ProposeLayout(ctx context.Context, spec plan.ProjectSpec, hints Hints) ([]Floor, error)
}

// Options configures a Planner. The zero value selects the default
// strategy and heuristics.
type Options struct {
	// Strategy selects the corridor placement: "edge" or "center".
	// Empty selects DefaultStrategy.
	Strategy string

	// AspectRatio overrides the footprint width/sqrt(area) multiplier.
	// Zero selects DefaultAspectRatio.
	AspectRatio float64

	// Core, Sizer and Validator override the empirical constants.
	// Zero values select the defaults.
	Core      CoreConfig
	Sizer     SizerConfig
	Validator ValidatorConfig
}

// Planner drives the attempt/validate/fallback state machine and
// assembles the output blueprint. A Planner is stateless across calls;
// concurrent Plan calls with different specs are independent.
type Planner struct {
	opts      Options
	strategy  CorridorStrategy
	validator *Validator
	provider  Provider
	logger    *log.Logger
}

// NewPlanner creates a planner. The provider is optional: passing nil
// disables the external attempt and every plan goes straight to the
// deterministic pipeline. If logger is nil, log.Default() is used.
func NewPlanner(opts Options, provider Provider, logger *log.Logger) (*Planner, error) {
	strategy, err := StrategyFor(opts.Strategy)
	if err != nil {
		return nil, err
	}
	if opts.AspectRatio == 0 {
		opts.AspectRatio = DefaultAspectRatio
	}
	if opts.Core == (CoreConfig{}) {
		opts.Core = DefaultCoreConfig()
	}
	if opts.Sizer == (SizerConfig{}) {
		opts.Sizer = DefaultSizerConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{
		opts:      opts,
		strategy:  strategy,
		validator: NewValidator(opts.Validator),
		provider:  provider,
		logger:    logger,
	}, nil
}

// attemptKind tags the outcome of the external layout attempt.
type attemptKind int

const (
	attemptAbsent    attemptKind = iota // no provider configured
	attemptFailed                       // provider returned an error
	attemptCandidate                    // provider returned a candidate
)

// attempt is the tagged outcome consumed by Plan's state machine.
type attempt struct {
	kind   attemptKind
	floors []Floor
	err    error
}

// Plan produces exactly one Blueprint for the spec. It asks the
// external provider for a candidate when one is configured, validates
// it, and falls back to the deterministic pipeline on absence, failure
// or rejection. External problems never surface to the caller; the only
// error Plan can return is an internal defect in the deterministic
// pipeline itself.
func (p *Planner) Plan(ctx context.Context, spec plan.ProjectSpec) (*Blueprint, error) {
	env := DeriveEnvelope(spec.AreaSqft, p.opts.AspectRatio)

	switch res := p.attemptExternal(ctx, spec, env); res.kind {
	case attemptCandidate:
		if err := p.validator.Validate(env, res.floors); err != nil {
			observability.Planner().OnCandidateRejected(ctx, err)
			p.logger.Warn("external layout rejected, falling back",
				"reason", errors.UserMessage(err))
		} else {
			observability.Planner().OnCandidateAccepted(ctx, len(res.floors))
			p.logger.Info("using external layout", "floors", len(res.floors))
			return Assemble(spec, env, res.floors, SourceExternal), nil
		}
	case attemptFailed:
		observability.Planner().OnExternalFailure(ctx, res.err)
		p.logger.Warn("external layout attempt failed, falling back", "err", res.err)
	}

	start := time.Now()
	floors := p.GenerateFloors(spec, env)
	if err := p.validator.Validate(env, floors); err != nil {
		// A structurally invalid deterministic layout is a contract
		// violation inside this package, not an environmental condition.
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"deterministic pipeline produced an invalid layout")
	}
	observability.Planner().OnDeterministic(ctx, len(floors), time.Since(start))

	return Assemble(spec, env, floors, SourceDeterministic), nil
}

// attemptExternal performs at most one external request and tags the
// outcome. There is no retry: a provider that fails once falls back to
// the deterministic pipeline for this planning run.
func (p *Planner) attemptExternal(ctx context.Context, spec plan.ProjectSpec, env Envelope) attempt {
	if p.provider == nil {
		return attempt{kind: attemptAbsent}
	}

	observability.Planner().OnExternalAttempt(ctx)
	corridorY, corridorH := p.strategy.Corridor(env)
	floors, err := p.provider.ProposeLayout(ctx, spec, Hints{
		Envelope:       env,
		Strategy:       p.strategy.Name(),
		CorridorY:      corridorY,
		CorridorHeight: corridorH,
	})
	if err != nil {
		return attempt{kind: attemptFailed, err: err}
	}
	if len(floors) == 0 {
		return attempt{kind: attemptFailed, err: errors.New(errors.ErrCodeInvalidLayout, "provider returned an empty layout")}
	}
	return attempt{kind: attemptCandidate, floors: floors}
}

// GenerateFloors runs the deterministic pipeline for every floor.
// Floors share one envelope and are structurally identical; only the
// room IDs differ by floor index. The result is valid by construction.
func (p *Planner) GenerateFloors(spec plan.ProjectSpec, env Envelope) []Floor {
	floors := make([]Floor, 0, spec.Floors)
	for f := 0; f < spec.Floors; f++ {
		floors = append(floors, p.generateFloor(spec, env, f))
	}
	return floors
}

// generateFloor builds one floor: corridor band, flats per region, and
// the circulation core.
func (p *Planner) generateFloor(spec plan.ProjectSpec, env Envelope, floor int) Floor {
	corridorY, corridorH := p.strategy.Corridor(env)

	rooms := []Room{{
		ID:     roomID(floor, "corridor"),
		Name:   "Corridor",
		X:      0,
		Y:      corridorY,
		Width:  env.Width,
		Height: corridorH,
		Type:   RoomCorridor,
	}}

	var flats []Flat
	flatIdx := 0
	for _, reg := range p.strategy.Regions(env, spec.Flats.FlatsPerFloor) {
		for _, rect := range PartitionFlats(env, reg) {
			flatRooms := SizeRooms(floor, flatIdx, rect, spec.Flats, p.opts.Sizer)
			ids := make([]string, len(flatRooms))
			for i, r := range flatRooms {
				ids[i] = r.ID
			}
			flats = append(flats, Flat{
				ID:    flatRoomPrefix(floor, flatIdx),
				Label: fmt.Sprintf("Flat %d", flatIdx+1),
				Rooms: ids,
			})
			rooms = append(rooms, flatRooms...)
			flatIdx++
		}
	}

	flatWidth := env.Width / float64(spec.Flats.FlatsPerFloor)
	lift := spec.Amenities.Lift && spec.Housing()
	rooms = append(rooms, PlaceCore(floor, env, corridorY, corridorH, flatWidth, lift, p.opts.Core)...)

	return Floor{
		Index: floor,
		Label: floorLabel(floor),
		Rooms: rooms,
		Flats: flats,
	}
}

// floorLabel returns the display label for a floor index.
func floorLabel(floor int) string {
	if floor == 0 {
		return "Ground Floor"
	}
	return fmt.Sprintf("Floor %d", floor)
}
