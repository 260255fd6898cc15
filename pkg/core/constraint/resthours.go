package constraint

import (
	"fmt"
	"sort"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// RestHoursEvaluator checks the minimum rest gap between consecutive shifts
// of the same user, using resolved absolute bounds so cross-midnight shifts
// compare correctly.
type RestHoursEvaluator struct{}

func NewRestHoursEvaluator() *RestHoursEvaluator {
	return &RestHoursEvaluator{}
}

func (e *RestHoursEvaluator) Name() string {
	return model.ConstraintMinRestHours
}

type boundShift struct {
	shift  model.Shift
	bounds timeslot.Interval
}

func (e *RestHoursEvaluator) Evaluate(input model.EngineInput, _ model.CapacityMap) []model.Violation {
	rule := input.Ruleset.Rest
	if rule == nil || rule.MinRestHours <= 0 {
		return nil
	}

	byUser := make(map[string][]boundShift)
	for _, shift := range input.Shifts {
		if shift.IsDayOff || shift.UserID == "" {
			continue
		}
		bounds, ok := timeslot.ShiftBounds(shift, input.Settings)
		if !ok {
			continue
		}
		byUser[shift.UserID] = append(byUser[shift.UserID], boundShift{shift: shift, bounds: bounds})
	}

	userIDs := make([]string, 0, len(byUser))
	for userID := range byUser {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	var violations []model.Violation
	for _, userID := range userIDs {
		shifts := byUser[userID]
		sort.Slice(shifts, func(i, j int) bool {
			a, b := shifts[i], shifts[j]
			if a.shift.DateKey != b.shift.DateKey {
				return a.shift.DateKey < b.shift.DateKey
			}
			if a.shift.StartTime != b.shift.StartTime {
				return a.shift.StartTime < b.shift.StartTime
			}
			return a.shift.ID < b.shift.ID
		})

		for i := 1; i < len(shifts); i++ {
			prev, next := shifts[i-1], shifts[i]
			rest := timeslot.HoursBetween(prev.bounds.End, next.bounds.Start)
			if rest >= rule.MinRestHours {
				continue
			}
			violations = append(violations, model.Violation{
				ConstraintID: model.ConstraintMinRestHours,
				Severity:     severityOrDefault(rule.Severity),
				Message: fmt.Sprintf("User %s has %.1fh rest between shifts %s and %s (minimum %.1fh)",
					userID, rest, prev.shift.ID, next.shift.ID, rule.MinRestHours),
				Affected: model.Affected{
					UserIDs:  []string{userID},
					ShiftIDs: []string{prev.shift.ID, next.shift.ID},
					DateKeys: dedupeOrdered([]string{prev.shift.DateKey, next.shift.DateKey}),
				},
			})
		}
	}

	return violations
}

// dedupeOrdered removes duplicates while keeping first-seen order
func dedupeOrdered(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := keys[:0]
	for _, key := range keys {
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
