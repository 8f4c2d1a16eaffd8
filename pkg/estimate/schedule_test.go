package estimate

import (
	"testing"

	"github.com/nirmanlabs/nirman/pkg/plan"
)

func TestGenerateSchedule(t *testing.T) {
	spec := plan.DefaultSpec() // 12 months -> 48 weeks

	phases := GenerateSchedule(spec)
	if len(phases) != len(phaseTemplates) {
		t.Fatalf("got %d phases, want %d", len(phases), len(phaseTemplates))
	}

	if phases[0].Name != "Site Preparation" || phases[0].StartWeek != 1 {
		t.Errorf("first phase = %+v, want Site Preparation starting week 1", phases[0])
	}
	if last := phases[len(phases)-1]; last.Name != "Handover & Inspection" {
		t.Errorf("last phase = %q, want Handover & Inspection", last.Name)
	}

	// Contiguous, no overlap, no gaps.
	for i := 1; i < len(phases); i++ {
		if phases[i].StartWeek != phases[i-1].EndWeek+1 {
			t.Errorf("phase %q starts week %d, previous ends week %d",
				phases[i].Name, phases[i].StartWeek, phases[i-1].EndWeek)
		}
	}
	for _, p := range phases {
		if p.Duration < 1 {
			t.Errorf("phase %q has duration %d", p.Name, p.Duration)
		}
		if p.EndWeek-p.StartWeek+1 != p.Duration {
			t.Errorf("phase %q week span disagrees with duration: %+v", p.Name, p)
		}
	}

	// Structure / RCC is the longest block: ceil(48 * 0.22) = 11 weeks.
	for _, p := range phases {
		if p.Name == "Structure / RCC" && p.Duration != 11 {
			t.Errorf("Structure / RCC duration = %d, want 11", p.Duration)
		}
	}
}

func TestGenerateScheduleMinimumFloor(t *testing.T) {
	spec := plan.DefaultSpec()
	spec.MonthsToBuild = 1 // 4 weeks, below the 8 week floor

	phases := GenerateSchedule(spec)
	var total int
	for _, p := range phases {
		total += p.Duration
	}
	if total < MinScheduleWeeks {
		t.Errorf("total schedule %d weeks, want at least %d", total, MinScheduleWeeks)
	}
}

func TestPhaseSharesSumToOne(t *testing.T) {
	var sum float64
	for _, p := range phaseTemplates {
		sum += p.Share
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("phase shares sum to %g, want 1.0", sum)
	}
}
