package estimate

import (
	"math"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

// ============================================================================
// Construction schedule
// ============================================================================

// MinScheduleWeeks is the shortest realistic build: schedules below two
// months are stretched to this floor before phasing.
const MinScheduleWeeks = 8

// Phase is one contiguous block of the construction timeline. Weeks are
// 1-based and inclusive on both ends.
type Phase struct {
	Name        string `json:"phase"`
	StartWeek   int    `json:"start_week"`
	EndWeek     int    `json:"end_week"`
	Duration    int    `json:"duration_weeks"`
	Description string `json:"description"`
}

// phaseTemplate holds the canonical phase sequence with each phase's
// share of the total schedule. Shares sum to 1.0.
type phaseTemplate struct {
	Name  string
	Share float64
	Desc  string
}

var phaseTemplates = []phaseTemplate{
	{"Site Preparation", 0.08, "Site clearing, leveling, temporary structures, boundary marking"},
	{"Foundation", 0.15, "Excavation, PCC, RCC footing, anti-termite treatment, waterproofing"},
	{"Structure / RCC", 0.22, "Column casting, beam work, slab casting for each floor"},
	{"Slab Work", 0.10, "Final slab curing, shuttering removal, surface leveling"},
	{"Plumbing & Drainage", 0.08, "Internal plumbing, drainage lines, water tank connections"},
	{"Electrical Work", 0.08, "Conduit laying, wiring, DB boxes, switch boards"},
	{"Brickwork & Plastering", 0.12, "Brick walls, internal/external plastering, window frames"},
	{"Finishing", 0.12, "Flooring, tiling, painting, door/window fitting, fixtures"},
	{"Handover & Inspection", 0.05, "Final inspection, snag fixing, documentation, handover"},
}

// GenerateSchedule lays the canonical phases end to end over the
// requested schedule (4 weeks per month, floor of MinScheduleWeeks).
// Phases never overlap and every phase lasts at least one week, so the
// laid-out schedule can run slightly past the requested weeks.
func GenerateSchedule(spec plan.ProjectSpec) []Phase {
	totalWeeks := spec.MonthsToBuild * 4
	if totalWeeks < MinScheduleWeeks {
		totalWeeks = MinScheduleWeeks
	}

	schedule := make([]Phase, 0, len(phaseTemplates))
	week := 1
	for _, t := range phaseTemplates {
		duration := int(math.Ceil(float64(totalWeeks) * t.Share))
		if duration < 1 {
			duration = 1
		}
		end := week + duration - 1
		schedule = append(schedule, Phase{
			Name:        t.Name,
			StartWeek:   week,
			EndWeek:     end,
			Duration:    duration,
			Description: t.Desc,
		})
		week = end + 1
	}
	return schedule
}
