// Package scenario applies what-if scenarios to a copy of engine input
// before capacity and constraint evaluation. Persisted schedule data is
// never touched; malformed scenario data is dropped silently because the
// engine treats it as "does not apply", not as an error.
package scenario

import (
	"fmt"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// Effect reports what one scenario did to the input copy
type Effect struct {
	ScenarioID      string
	Type            model.ScenarioType
	RemovedShiftIDs []string
	InjectedRules   int
	Note            string
}

// Apply runs the scenarios against a copy of the input in insertion order
// and returns the transformed input plus one effect per scenario. The
// original input is never mutated.
func Apply(input model.EngineInput, scenarios []model.Scenario) (model.EngineInput, []Effect) {
	out := cloneInput(input)
	effects := make([]Effect, 0, len(scenarios))

	for _, sc := range scenarios {
		effect := Effect{ScenarioID: sc.ID, Type: sc.Type}

		switch sc.Type {
		case model.ScenarioSickness:
			effect.RemovedShiftIDs = applySickness(&out, sc)
		case model.ScenarioEvent, model.ScenarioPeak:
			effect.InjectedRules = applyCoverageOverrides(&out, sc)
		case model.ScenarioLastMinute:
			// Recorded for later diffing only; no input mutation yet.
			effect.Note = "last-minute scenarios are stored but not applied"
		default:
			// Unknown tag: recognized no-op.
			effect.Note = fmt.Sprintf("unknown scenario type %q ignored", sc.Type)
		}

		effects = append(effects, effect)
	}

	return out, effects
}

func applySickness(input *model.EngineInput, sc model.Scenario) []string {
	if sc.Payload.UserID == "" {
		return nil
	}
	sickDays := make(map[string]bool)
	for _, dateKey := range sc.DateKeys {
		if timeslot.IsDateKey(dateKey) {
			sickDays[dateKey] = true
		}
	}
	if len(sickDays) == 0 {
		return nil
	}

	var removed []string
	kept := input.Shifts[:0]
	for _, shift := range input.Shifts {
		if shift.UserID == sc.Payload.UserID && sickDays[shift.DateKey] {
			removed = append(removed, shift.ID)
			continue
		}
		kept = append(kept, shift)
	}
	input.Shifts = kept
	return removed
}

func applyCoverageOverrides(input *model.EngineInput, sc model.Scenario) int {
	// A malformed time range skips the scenario's whole time-bound effect.
	if _, ok := timeslot.ParseClock(sc.Payload.TimeRange.Start); !ok {
		return 0
	}
	if _, ok := timeslot.ParseClock(sc.Payload.TimeRange.End); !ok {
		return 0
	}

	var dateKeys []string
	for _, dateKey := range sc.DateKeys {
		if timeslot.IsDateKey(dateKey) {
			dateKeys = append(dateKeys, dateKey)
		}
	}
	if len(dateKeys) == 0 {
		return 0
	}

	injected := 0
	for _, override := range sc.Payload.Overrides {
		if override.PositionID == "" || override.MinCount <= 0 {
			continue
		}
		input.Ruleset.Coverage = append(input.Ruleset.Coverage, model.MinCoverageByPositionRule{
			PositionID: override.PositionID,
			DateKeys:   dateKeys,
			StartTime:  sc.Payload.TimeRange.Start,
			EndTime:    sc.Payload.TimeRange.End,
			MinCount:   override.MinCount,
			Severity:   model.SeverityHigh,
		})
		injected++
	}
	return injected
}

func cloneInput(input model.EngineInput) model.EngineInput {
	out := input

	out.WeekDays = append([]string(nil), input.WeekDays...)
	out.Shifts = append([]model.Shift(nil), input.Shifts...)

	out.Ruleset.Coverage = append([]model.MinCoverageByPositionRule(nil), input.Ruleset.Coverage...)
	if input.Ruleset.Rest != nil {
		rest := *input.Ruleset.Rest
		out.Ruleset.Rest = &rest
	}
	if input.Ruleset.DailyHours != nil {
		daily := *input.Ruleset.DailyHours
		out.Ruleset.DailyHours = &daily
	}

	if input.Settings.ClosingTimeByDay != nil {
		byDay := make(map[string]string, len(input.Settings.ClosingTimeByDay))
		for day, clock := range input.Settings.ClosingTimeByDay {
			byDay[day] = clock
		}
		out.Settings.ClosingTimeByDay = byDay
	}

	return out
}
