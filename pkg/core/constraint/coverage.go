package constraint

import (
	"fmt"
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// CoverageEvaluator checks MinCoverageByPosition rules against the capacity
// map. One violation is emitted per rule, carrying every under-staffed slot,
// not one violation per slot.
type CoverageEvaluator struct{}

func NewCoverageEvaluator() *CoverageEvaluator {
	return &CoverageEvaluator{}
}

func (e *CoverageEvaluator) Name() string {
	return model.ConstraintMinCoverageByPosition
}

func (e *CoverageEvaluator) Evaluate(input model.EngineInput, capacity model.CapacityMap) []model.Violation {
	var violations []model.Violation
	bucketMins := timeslot.NormalizeBucket(input.Ruleset.BucketMinutes)

	for _, rule := range input.Ruleset.Coverage {
		if rule.PositionID == "" || rule.MinCount <= 0 {
			continue
		}

		var missingSlots []string
		var checkedDates []string

		for _, dateKey := range rule.DateKeys {
			if !timeslot.IsDateKey(dateKey) {
				continue
			}
			window, ok := timeslot.ResolveRange(dateKey, rule.StartTime, rule.EndTime)
			if !ok {
				// Malformed time range: the rule does not apply.
				continue
			}
			checkedDates = append(checkedDates, dateKey)

			step := time.Duration(bucketMins) * time.Minute
			for t := window.Start; t.Before(window.End); t = t.Add(step) {
				slot := timeslot.BucketKey(t, bucketMins)
				if capacity[slot][rule.PositionID] < rule.MinCount {
					missingSlots = append(missingSlots, slot)
				}
			}
		}

		if len(missingSlots) == 0 {
			continue
		}

		violations = append(violations, model.Violation{
			ConstraintID: model.ConstraintMinCoverageByPosition,
			Severity:     severityOrDefault(rule.Severity),
			Message: fmt.Sprintf("Position %s is below the minimum of %d between %s and %s on %d slot(s)",
				rule.PositionID, rule.MinCount, rule.StartTime, rule.EndTime, len(missingSlots)),
			Affected: model.Affected{
				Slots:      missingSlots,
				PositionID: rule.PositionID,
				DateKeys:   checkedDates,
			},
		})
	}

	return violations
}
