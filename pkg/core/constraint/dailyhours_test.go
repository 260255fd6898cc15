package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

func dailyInput(maxHours float64, shifts []model.Shift) model.EngineInput {
	return model.EngineInput{
		WeekDays: []string{"2025-01-06", "2025-01-07"},
		Shifts:   shifts,
		Ruleset: model.Ruleset{
			BucketMinutes: 15,
			DailyHours:    &model.MaxHoursPerDayRule{MaxHoursPerDay: maxHours},
		},
	}
}

func TestDailyHours_SingleShiftOverCap(t *testing.T) {
	input := dailyInput(10, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "08:00", EndTime: "20:00"},
	})

	violations := NewDailyHoursEvaluator().Evaluate(input, nil)

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, model.ConstraintMaxHoursPerDay, v.ConstraintID)
	assert.Equal(t, []string{"u1"}, v.Affected.UserIDs)
	assert.Equal(t, []string{"s1"}, v.Affected.ShiftIDs)
	assert.Equal(t, []string{"2025-01-06"}, v.Affected.DateKeys)
}

func TestDailyHours_MultipleShiftsAccumulate(t *testing.T) {
	input := dailyInput(8, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "08:00", EndTime: "13:00"},
		{ID: "s2", UserID: "u1", DateKey: "2025-01-06", StartTime: "15:00", EndTime: "20:00"},
	})

	violations := NewDailyHoursEvaluator().Evaluate(input, nil)

	require.Len(t, violations, 1)
	assert.Equal(t, []string{"s1", "s2"}, violations[0].Affected.ShiftIDs)
}

func TestDailyHours_CrossMidnightSplitsAcrossDays(t *testing.T) {
	// 22:00-02:00 is two hours on each day; neither exceeds a 3h cap.
	input := dailyInput(3, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "22:00", EndTime: "02:00"},
	})

	assert.Empty(t, NewDailyHoursEvaluator().Evaluate(input, nil))

	// With another shift on the 7th the second day tips over.
	input.Shifts = append(input.Shifts, model.Shift{
		ID: "s2", UserID: "u1", DateKey: "2025-01-07", StartTime: "10:00", EndTime: "12:00",
	})
	violations := NewDailyHoursEvaluator().Evaluate(input, nil)
	require.Len(t, violations, 1)
	assert.Equal(t, []string{"2025-01-07"}, violations[0].Affected.DateKeys)
	assert.Equal(t, []string{"s1", "s2"}, violations[0].Affected.ShiftIDs)
}

func TestDailyHours_ExactlyAtCapNoViolation(t *testing.T) {
	input := dailyInput(8, []model.Shift{
		{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
	})

	assert.Empty(t, NewDailyHoursEvaluator().Evaluate(input, nil))
}

func TestDailyHours_DeterministicOrderAcrossUsers(t *testing.T) {
	input := dailyInput(4, []model.Shift{
		{ID: "b1", UserID: "zoe", DateKey: "2025-01-06", StartTime: "08:00", EndTime: "14:00"},
		{ID: "a1", UserID: "amy", DateKey: "2025-01-06", StartTime: "08:00", EndTime: "14:00"},
	})

	violations := NewDailyHoursEvaluator().Evaluate(input, nil)

	require.Len(t, violations, 2)
	assert.Equal(t, []string{"amy"}, violations[0].Affected.UserIDs)
	assert.Equal(t, []string{"zoe"}, violations[1].Affected.UserIDs)
}

func TestEvaluateAll_ConcatenatesInEvaluatorOrder(t *testing.T) {
	input := model.EngineInput{
		WeekDays: []string{"2025-01-06"},
		Shifts: []model.Shift{
			{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "08:00", EndTime: "20:00"},
		},
		Ruleset: model.Ruleset{
			BucketMinutes: 15,
			Coverage: []model.MinCoverageByPositionRule{
				{PositionID: "p1", DateKeys: []string{"2025-01-06"}, StartTime: "08:00", EndTime: "09:00", MinCount: 2},
			},
			DailyHours: &model.MaxHoursPerDayRule{MaxHoursPerDay: 10},
		},
	}
	capMap := model.CapacityMap{}

	violations := EvaluateAll(input, capMap, DefaultEvaluators())

	require.Len(t, violations, 2)
	assert.Equal(t, model.ConstraintMinCoverageByPosition, violations[0].ConstraintID)
	assert.Equal(t, model.ConstraintMaxHoursPerDay, violations[1].ConstraintID)
}
