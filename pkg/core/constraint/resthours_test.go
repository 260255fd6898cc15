package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

func restInput(minRest float64, shifts []model.Shift) model.EngineInput {
	return model.EngineInput{
		WeekDays: []string{"2025-01-06", "2025-01-07"},
		Shifts:   shifts,
		Ruleset: model.Ruleset{
			BucketMinutes: 15,
			Rest:          &model.MinRestHoursBetweenShiftsRule{MinRestHours: minRest},
		},
	}
}

func TestRestHours_GapBelowMinimum(t *testing.T) {
	input := restInput(11, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "18:00", EndTime: "23:00"},
		{ID: "s2", UserID: "u1", DateKey: "2025-01-07", StartTime: "06:00", EndTime: "14:00"},
	})

	violations := NewRestHoursEvaluator().Evaluate(input, nil)

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, model.ConstraintMinRestHours, v.ConstraintID)
	assert.Equal(t, []string{"u1"}, v.Affected.UserIDs)
	assert.Equal(t, []string{"s1", "s2"}, v.Affected.ShiftIDs)
	assert.Equal(t, []string{"2025-01-06", "2025-01-07"}, v.Affected.DateKeys)
}

func TestRestHours_SufficientGapNoViolation(t *testing.T) {
	input := restInput(10, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
		{ID: "s2", UserID: "u1", DateKey: "2025-01-07", StartTime: "09:00", EndTime: "17:00"},
	})

	assert.Empty(t, NewRestHoursEvaluator().Evaluate(input, nil))
}

func TestRestHours_CrossMidnightEndAnchorsRest(t *testing.T) {
	// s1 ends at 02:00 on the 7th; s2 starts 20:00 the same day, 18h later.
	input := restInput(10, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "22:00", EndTime: "02:00"},
		{ID: "s2", UserID: "u1", DateKey: "2025-01-07", StartTime: "20:00", EndTime: "23:00"},
	})

	assert.Empty(t, NewRestHoursEvaluator().Evaluate(input, nil))

	// Tightening the rule past 18h flips it into a violation.
	input.Ruleset.Rest.MinRestHours = 19
	assert.Len(t, NewRestHoursEvaluator().Evaluate(input, nil), 1)
}

func TestRestHours_DifferentUsersNeverCompared(t *testing.T) {
	input := restInput(12, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "18:00", EndTime: "23:00"},
		{ID: "s2", UserID: "u2", DateKey: "2025-01-07", StartTime: "00:00", EndTime: "08:00"},
	})

	assert.Empty(t, NewRestHoursEvaluator().Evaluate(input, nil))
}

func TestRestHours_DayOffShiftsIgnored(t *testing.T) {
	input := restInput(12, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "18:00", EndTime: "23:00"},
		{ID: "off", UserID: "u1", DateKey: "2025-01-07", StartTime: "00:00", EndTime: "08:00", IsDayOff: true},
	})

	assert.Empty(t, NewRestHoursEvaluator().Evaluate(input, nil))
}

func TestRestHours_AbsentRuleNoViolations(t *testing.T) {
	input := restInput(0, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "18:00", EndTime: "23:00"},
		{ID: "s2", UserID: "u1", DateKey: "2025-01-06", StartTime: "23:30", EndTime: "23:45"},
	})
	input.Ruleset.Rest = nil

	assert.Empty(t, NewRestHoursEvaluator().Evaluate(input, nil))
}
