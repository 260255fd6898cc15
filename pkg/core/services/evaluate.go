package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/pkg/core/capacity"
	"github.com/hostwell/shiftengine/pkg/core/constraint"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/scenario"
	"github.com/hostwell/shiftengine/pkg/core/suggest"
	"github.com/hostwell/shiftengine/pkg/db"
)

// EvaluateResult is the outcome of one evaluation pass
type EvaluateResult struct {
	Capacity        model.CapacityMap
	Violations      []model.Violation
	Suggestions     []model.Suggestion
	ScenarioEffects []scenario.Effect
}

// Evaluate runs the full pipeline over one input snapshot: scenario
// preprocessing, capacity aggregation, constraint evaluation and suggestion
// generation. Pure and deterministic; callers may run independent
// evaluations concurrently.
func Evaluate(input model.EngineInput, scenarios []model.Scenario, logger *zap.Logger) *EvaluateResult {
	logger.Debug("Starting evaluation",
		zap.Int("shifts", len(input.Shifts)),
		zap.Int("scenarios", len(scenarios)))

	preprocessed, effects := scenario.Apply(input, scenarios)

	capacityMap := capacity.Build(preprocessed.Shifts, preprocessed.Settings, preprocessed.Ruleset.BucketMinutes)

	violations := constraint.EvaluateAll(preprocessed, capacityMap, constraint.DefaultEvaluators())
	logger.Debug("Constraint evaluation finished", zap.Int("violations", len(violations)))

	suggestions := suggest.Generate(preprocessed, violations)
	logger.Debug("Suggestion generation finished", zap.Int("suggestions", len(suggestions)))

	return &EvaluateResult{
		Capacity:        capacityMap,
		Violations:      violations,
		Suggestions:     suggestions,
		ScenarioEffects: effects,
	}
}

// EvaluateWeek loads the stored scenarios for the input's unit and week and
// evaluates with them applied. The unit id is taken from the first shift
// that carries one.
func EvaluateWeek(ctx context.Context, store db.ScenarioStore, input model.EngineInput, logger *zap.Logger) (*EvaluateResult, error) {
	if len(input.WeekDays) == 0 {
		return nil, fmt.Errorf("engine input has no week days")
	}

	unitID := ""
	for _, shift := range input.Shifts {
		if shift.UnitID != "" {
			unitID = shift.UnitID
			break
		}
	}

	records, err := store.GetScenariosByWeek(ctx, unitID, input.WeekDays[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}

	scenarios := make([]model.Scenario, 0, len(records))
	for _, record := range records {
		sc, err := record.ToModel()
		if err != nil {
			// A scenario that cannot be decoded does not apply.
			logger.Warn("Skipping undecodable scenario", zap.String("scenario_id", record.ID), zap.Error(err))
			continue
		}
		scenarios = append(scenarios, sc)
	}

	return Evaluate(input, scenarios, logger), nil
}
