// Package estimate derives the quantity side of a plan: workforce,
// cost breakdown, material schedule, and construction timeline.
//
// Every estimator is a pure function of the ProjectSpec. The empirical
// rates are calibrated for Indian residential construction and are
// exported as constants so callers can surface them in documentation.
package estimate

import (
	"math"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

// ============================================================================
// Workforce
// ============================================================================

// Coverage areas: one worker of a trade per this many sqft of built-up area.
const (
	sqftPerMason       = 400
	sqftPerHelper      = 200
	sqftPerCarpenter   = 800
	sqftPerSteelWorker = 1000
	sqftPerPlumber     = 1500
	sqftPerElectrician = 1200
	sqftPerPainter     = 2000
)

// Speed factor bounds. A schedule shorter than the 18-month baseline
// inflates the crew, never past 2.5x; a relaxed schedule can shrink it
// to 0.8x at most.
const (
	baselineMonths = 18
	minSpeedFactor = 0.8
	maxSpeedFactor = 2.5
)

// Workers is the per-trade crew estimate for the whole project.
type Workers struct {
	Masons       int `json:"masons"`
	Helpers      int `json:"helpers"`
	Carpenters   int `json:"carpenters"`
	SteelWorkers int `json:"steel_workers"`
	Plumbers     int `json:"plumbers"`
	Electricians int `json:"electricians"`
	Painters     int `json:"painters"`
	Total        int `json:"total_workers"`
}

// EstimateWorkers sizes the crew from the built-up area, then scales it
// by the schedule pressure. Each trade has a floor so very small
// projects still get a workable team.
func EstimateWorkers(spec plan.ProjectSpec) Workers {
	area := spec.TotalArea()

	baseMasons := atLeast(2, perArea(area, sqftPerMason))
	baseHelpers := atLeast(3, perArea(area, sqftPerHelper))
	baseCarpenters := atLeast(1, perArea(area, sqftPerCarpenter))
	baseSteel := atLeast(1, perArea(area, sqftPerSteelWorker))
	basePlumbers := atLeast(1, perArea(area, sqftPerPlumber))
	baseElectricians := atLeast(1, perArea(area, sqftPerElectrician))
	basePainters := atLeast(1, perArea(area, sqftPerPainter))

	factor := speedFactor(spec.MonthsToBuild)

	w := Workers{
		Masons:       scale(baseMasons, factor),
		Helpers:      scale(baseHelpers, factor),
		Carpenters:   scale(baseCarpenters, factor),
		SteelWorkers: scale(baseSteel, factor),
		Plumbers:     scale(basePlumbers, factor),
		Electricians: scale(baseElectricians, factor),
		Painters:     scale(basePainters, factor),
	}
	w.Total = w.Masons + w.Helpers + w.Carpenters + w.SteelWorkers +
		w.Plumbers + w.Electricians + w.Painters
	return w
}

// speedFactor maps the requested schedule onto a crew multiplier.
func speedFactor(months int) float64 {
	if months < 1 {
		months = 1
	}
	factor := baselineMonths / float64(months)
	if factor < minSpeedFactor {
		return minSpeedFactor
	}
	if factor > maxSpeedFactor {
		return maxSpeedFactor
	}
	return factor
}

func perArea(area float64, sqftPerWorker float64) int {
	return int(math.Ceil(area / sqftPerWorker))
}

func atLeast(min, n int) int {
	if n < min {
		return min
	}
	return n
}

func scale(n int, factor float64) int {
	return int(math.Ceil(float64(n) * factor))
}
