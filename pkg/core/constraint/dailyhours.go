package constraint

import (
	"fmt"
	"sort"
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// DailyHoursEvaluator caps the total hours a user works on one calendar day.
// Shifts crossing midnight are split so each half credits its own date key.
type DailyHoursEvaluator struct{}

func NewDailyHoursEvaluator() *DailyHoursEvaluator {
	return &DailyHoursEvaluator{}
}

func (e *DailyHoursEvaluator) Name() string {
	return model.ConstraintMaxHoursPerDay
}

type dayTotal struct {
	hours    float64
	shiftIDs []string
}

func (e *DailyHoursEvaluator) Evaluate(input model.EngineInput, _ model.CapacityMap) []model.Violation {
	rule := input.Ruleset.DailyHours
	if rule == nil || rule.MaxHoursPerDay <= 0 {
		return nil
	}

	// user -> date key -> accumulated hours
	totals := make(map[string]map[string]*dayTotal)

	for _, shift := range input.Shifts {
		if shift.IsDayOff || shift.UserID == "" {
			continue
		}
		bounds, ok := timeslot.ShiftBounds(shift, input.Settings)
		if !ok {
			continue
		}

		for start := bounds.Start; start.Before(bounds.End); {
			dayEnd := start.Truncate(24 * time.Hour).Add(24 * time.Hour)
			segmentEnd := bounds.End
			if dayEnd.Before(segmentEnd) {
				segmentEnd = dayEnd
			}

			dateKey := timeslot.DateKeyOf(start)
			userTotals := totals[shift.UserID]
			if userTotals == nil {
				userTotals = make(map[string]*dayTotal)
				totals[shift.UserID] = userTotals
			}
			total := userTotals[dateKey]
			if total == nil {
				total = &dayTotal{}
				userTotals[dateKey] = total
			}
			total.hours += timeslot.HoursBetween(start, segmentEnd)
			total.shiftIDs = append(total.shiftIDs, shift.ID)

			start = segmentEnd
		}
	}

	var violations []model.Violation
	userIDs := make([]string, 0, len(totals))
	for userID := range totals {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		dateKeys := make([]string, 0, len(totals[userID]))
		for dateKey := range totals[userID] {
			dateKeys = append(dateKeys, dateKey)
		}
		sort.Strings(dateKeys)

		for _, dateKey := range dateKeys {
			total := totals[userID][dateKey]
			if total.hours <= rule.MaxHoursPerDay {
				continue
			}
			violations = append(violations, model.Violation{
				ConstraintID: model.ConstraintMaxHoursPerDay,
				Severity:     severityOrDefault(rule.Severity),
				Message: fmt.Sprintf("User %s works %.1fh on %s (maximum %.1fh)",
					userID, total.hours, dateKey, rule.MaxHoursPerDay),
				Affected: model.Affected{
					UserIDs:  []string{userID},
					ShiftIDs: dedupeOrdered(total.shiftIDs),
					DateKeys: []string{dateKey},
				},
			})
		}
	}

	return violations
}
