package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

func weekInput(shifts ...model.Shift) model.EngineInput {
	return model.EngineInput{
		WeekDays: []string{"2025-01-06", "2025-01-07"},
		Shifts:   shifts,
		Ruleset:  model.Ruleset{BucketMinutes: 15},
	}
}

func TestApply_SicknessRemovesMatchingShifts(t *testing.T) {
	input := weekInput(
		model.Shift{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
		model.Shift{ID: "s2", UserID: "u1", DateKey: "2025-01-07", StartTime: "09:00", EndTime: "17:00"},
		model.Shift{ID: "s3", UserID: "u2", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
	)
	sick := model.Scenario{
		ID:       "sc1",
		Type:     model.ScenarioSickness,
		Payload:  model.ScenarioPayload{UserID: "u1"},
		DateKeys: []string{"2025-01-06"},
	}

	out, effects := Apply(input, []model.Scenario{sick})

	require.Len(t, effects, 1)
	assert.Equal(t, []string{"s1"}, effects[0].RemovedShiftIDs)
	require.Len(t, out.Shifts, 2)
	assert.Equal(t, "s2", out.Shifts[0].ID)
	assert.Equal(t, "s3", out.Shifts[1].ID)
}

func TestApply_SicknessWithoutUserIsNoop(t *testing.T) {
	input := weekInput(
		model.Shift{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
	)
	sick := model.Scenario{ID: "sc1", Type: model.ScenarioSickness, DateKeys: []string{"2025-01-06"}}

	out, effects := Apply(input, []model.Scenario{sick})

	assert.Empty(t, effects[0].RemovedShiftIDs)
	assert.Len(t, out.Shifts, 1)
}

func TestApply_EventInjectsCoverageRules(t *testing.T) {
	input := weekInput()
	event := model.Scenario{
		ID:   "sc1",
		Type: model.ScenarioEvent,
		Payload: model.ScenarioPayload{
			TimeRange: model.TimeRange{Start: "18:00", End: "22:00"},
			Overrides: []model.CoverageOverride{
				{PositionID: "waiter", MinCount: 3},
				{PositionID: "cook", MinCount: 2},
			},
		},
		DateKeys: []string{"2025-01-06"},
	}

	out, effects := Apply(input, []model.Scenario{event})

	assert.Equal(t, 2, effects[0].InjectedRules)
	require.Len(t, out.Ruleset.Coverage, 2)
	rule := out.Ruleset.Coverage[0]
	assert.Equal(t, "waiter", rule.PositionID)
	assert.Equal(t, 3, rule.MinCount)
	assert.Equal(t, []string{"2025-01-06"}, rule.DateKeys)
	assert.Equal(t, model.SeverityHigh, rule.Severity)
}

func TestApply_EventMalformedTimeRangeSkipped(t *testing.T) {
	input := weekInput()
	event := model.Scenario{
		ID:   "sc1",
		Type: model.ScenarioPeak,
		Payload: model.ScenarioPayload{
			TimeRange: model.TimeRange{Start: "evening", End: "22:00"},
			Overrides: []model.CoverageOverride{{PositionID: "waiter", MinCount: 3}},
		},
		DateKeys: []string{"2025-01-06"},
	}

	out, effects := Apply(input, []model.Scenario{event})

	assert.Zero(t, effects[0].InjectedRules)
	assert.Empty(t, out.Ruleset.Coverage)
}

func TestApply_EventDropsBadOverridesAndDates(t *testing.T) {
	input := weekInput()
	event := model.Scenario{
		ID:   "sc1",
		Type: model.ScenarioEvent,
		Payload: model.ScenarioPayload{
			TimeRange: model.TimeRange{Start: "18:00", End: "22:00"},
			Overrides: []model.CoverageOverride{
				{PositionID: "", MinCount: 3},
				{PositionID: "cook", MinCount: 0},
				{PositionID: "bar", MinCount: 1},
			},
		},
		DateKeys: []string{"not-a-date", "2025-01-07"},
	}

	out, effects := Apply(input, []model.Scenario{event})

	assert.Equal(t, 1, effects[0].InjectedRules)
	require.Len(t, out.Ruleset.Coverage, 1)
	assert.Equal(t, "bar", out.Ruleset.Coverage[0].PositionID)
	assert.Equal(t, []string{"2025-01-07"}, out.Ruleset.Coverage[0].DateKeys)
}

func TestApply_LastMinuteIsRecordedNoop(t *testing.T) {
	input := weekInput(
		model.Shift{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
	)
	lastMinute := model.Scenario{
		ID:   "sc1",
		Type: model.ScenarioLastMinute,
		Payload: model.ScenarioPayload{
			Timestamp: "2025-01-06T08:00:00Z",
			Patches:   []model.ShiftPatch{{ShiftID: "s1", StartTime: "10:00"}},
		},
	}

	out, effects := Apply(input, []model.Scenario{lastMinute})

	assert.NotEmpty(t, effects[0].Note)
	assert.Equal(t, input.Shifts, out.Shifts)
}

func TestApply_UnknownTypeIgnored(t *testing.T) {
	input := weekInput()
	_, effects := Apply(input, []model.Scenario{{ID: "sc1", Type: "FLOOD"}})

	require.Len(t, effects, 1)
	assert.Contains(t, effects[0].Note, "FLOOD")
}

func TestApply_OriginalInputNeverMutated(t *testing.T) {
	input := weekInput(
		model.Shift{ID: "s1", UserID: "u1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00"},
	)
	scenarios := []model.Scenario{
		{ID: "sc1", Type: model.ScenarioSickness, Payload: model.ScenarioPayload{UserID: "u1"}, DateKeys: []string{"2025-01-06"}},
		{ID: "sc2", Type: model.ScenarioEvent, Payload: model.ScenarioPayload{
			TimeRange: model.TimeRange{Start: "18:00", End: "22:00"},
			Overrides: []model.CoverageOverride{{PositionID: "waiter", MinCount: 2}},
		}, DateKeys: []string{"2025-01-06"}},
	}

	out, _ := Apply(input, scenarios)

	assert.Empty(t, out.Shifts)
	assert.Len(t, out.Ruleset.Coverage, 1)
	// The caller's snapshot is untouched.
	assert.Len(t, input.Shifts, 1)
	assert.Empty(t, input.Ruleset.Coverage)
}
