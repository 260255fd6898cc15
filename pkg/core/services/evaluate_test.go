package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/db"
)

func evaluationInput() model.EngineInput {
	return model.EngineInput{
		WeekDays: []string{"2025-01-06", "2025-01-07"},
		Shifts: []model.Shift{
			{ID: "s1", UserID: "u1", UnitID: "unit1", DateKey: "2025-01-06", StartTime: "09:00", EndTime: "17:00", PositionID: "waiter"},
			{ID: "s2", UserID: "u2", UnitID: "unit1", DateKey: "2025-01-07", StartTime: "09:00", EndTime: "17:00", PositionID: "waiter"},
		},
		Ruleset: model.Ruleset{
			BucketMinutes: 30,
			Coverage: []model.MinCoverageByPositionRule{
				{PositionID: "waiter", DateKeys: []string{"2025-01-06"}, StartTime: "09:00", EndTime: "11:00", MinCount: 1},
			},
		},
	}
}

func TestEvaluate_FullPipeline(t *testing.T) {
	input := evaluationInput()

	result := Evaluate(input, nil, zap.NewNop())

	// Coverage is satisfied, so the pipeline reports a clean week.
	assert.NotEmpty(t, result.Capacity)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.ScenarioEffects)
}

func TestEvaluate_SicknessScenarioSurfacesGap(t *testing.T) {
	input := evaluationInput()
	sick := model.Scenario{
		ID:       "sc1",
		Type:     model.ScenarioSickness,
		Payload:  model.ScenarioPayload{UserID: "u1"},
		DateKeys: []string{"2025-01-06"},
	}

	result := Evaluate(input, []model.Scenario{sick}, zap.NewNop())

	require.Len(t, result.ScenarioEffects, 1)
	assert.Equal(t, []string{"s1"}, result.ScenarioEffects[0].RemovedShiftIDs)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, model.ConstraintMinCoverageByPosition, result.Violations[0].ConstraintID)
	// u2 is free on the 6th, so a remediation is proposed.
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "u2", result.Suggestions[0].Actions[0].UserID)
}

func TestEvaluateWeek_LoadsStoredScenarios(t *testing.T) {
	payload, err := json.Marshal(model.ScenarioPayload{UserID: "u1"})
	require.NoError(t, err)
	store := &fakeScenarioStore{scenarios: []db.Scenario{{
		ID:            "sc1",
		UnitID:        "unit1",
		WeekStartDate: "2025-01-06",
		Type:          string(model.ScenarioSickness),
		Payload:       payload,
		DateKeys:      []string{"2025-01-06"},
	}}}

	result, err := EvaluateWeek(context.Background(), store, evaluationInput(), zap.NewNop())

	require.NoError(t, err)
	require.Len(t, result.ScenarioEffects, 1)
	assert.Equal(t, "sc1", result.ScenarioEffects[0].ScenarioID)
}

func TestEvaluateWeek_SkipsUndecodableScenario(t *testing.T) {
	store := &fakeScenarioStore{scenarios: []db.Scenario{{
		ID:            "bad",
		UnitID:        "unit1",
		WeekStartDate: "2025-01-06",
		Type:          string(model.ScenarioSickness),
		Payload:       []byte("{not json"),
	}}}

	result, err := EvaluateWeek(context.Background(), store, evaluationInput(), zap.NewNop())

	require.NoError(t, err)
	assert.Empty(t, result.ScenarioEffects)
}

func TestEvaluateWeek_NoWeekDays(t *testing.T) {
	_, err := EvaluateWeek(context.Background(), &fakeScenarioStore{}, model.EngineInput{}, zap.NewNop())

	assert.Error(t, err)
}

func TestEvaluateWeek_StoreError(t *testing.T) {
	store := &fakeScenarioStore{err: errors.New("connection refused")}

	_, err := EvaluateWeek(context.Background(), store, evaluationInput(), zap.NewNop())

	assert.ErrorContains(t, err, "failed to load scenarios")
}
