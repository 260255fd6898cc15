package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
	"github.com/hostwell/shiftengine/pkg/db"
)

// AddScenario stores a what-if scenario for later evaluation passes.
// Storage-time validation is deliberately shallow: payload details are
// validated at application time by the preprocessor, which drops what it
// cannot use.
func AddScenario(ctx context.Context, store db.ScenarioStore, sc model.Scenario, logger *zap.Logger) (model.Scenario, error) {
	if !sc.Type.IsValid() {
		return model.Scenario{}, fmt.Errorf("unknown scenario type %q", sc.Type)
	}
	if !timeslot.IsDateKey(sc.WeekStartDate) {
		return model.Scenario{}, fmt.Errorf("week start date %q is not a valid date", sc.WeekStartDate)
	}
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}

	record, err := db.ScenarioFromModel(sc)
	if err != nil {
		return model.Scenario{}, err
	}
	if err := store.InsertScenario(ctx, &record); err != nil {
		return model.Scenario{}, fmt.Errorf("failed to store scenario: %w", err)
	}

	logger.Info("Stored scenario",
		zap.String("scenario_id", sc.ID),
		zap.String("type", string(sc.Type)),
		zap.String("week_start", sc.WeekStartDate))
	return sc, nil
}

// ListScenarios returns the stored scenarios for one unit and week
func ListScenarios(ctx context.Context, store db.ScenarioStore, unitID, weekStartDate string) ([]model.Scenario, error) {
	records, err := store.GetScenariosByWeek(ctx, unitID, weekStartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]model.Scenario, 0, len(records))
	for _, record := range records {
		sc, err := record.ToModel()
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// RemoveScenario deletes a stored scenario
func RemoveScenario(ctx context.Context, store db.ScenarioStore, id string, logger *zap.Logger) error {
	if err := store.DeleteScenario(ctx, id); err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	logger.Info("Deleted scenario", zap.String("scenario_id", id))
	return nil
}
