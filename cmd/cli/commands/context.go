package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/internal/config"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/postgres"
)

// App holds the dependencies shared by all commands
type App struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string
}

// Close releases the app's resources
func (a *App) Close() {
	if a.Logger != nil {
		a.Logger.Sync()
	}
	if a.Database != nil {
		a.Database.Close()
	}
}

// snapshotFile is the on-disk shape of a weekly schedule snapshot. Settings
// and rules come from the config, not the snapshot.
type snapshotFile struct {
	WeekDays []string `json:"weekDays"`
	Shifts   []struct {
		ID         string `json:"id"`
		UserID     string `json:"userId"`
		UnitID     string `json:"unitId,omitempty"`
		DateKey    string `json:"dateKey"`
		StartTime  string `json:"startTime,omitempty"`
		EndTime    string `json:"endTime,omitempty"`
		PositionID string `json:"positionId,omitempty"`
		IsDayOff   bool   `json:"isDayOff,omitempty"`
	} `json:"shifts"`
}

// loadEngineInput reads a snapshot file and combines it with the configured
// settings and rule templates to form a complete engine input.
func loadEngineInput(app *App, path string) (model.EngineInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EngineInput{}, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var snapshot snapshotFile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.EngineInput{}, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if len(snapshot.WeekDays) == 0 {
		return model.EngineInput{}, fmt.Errorf("snapshot %s has no week days", path)
	}

	ruleset, err := app.Cfg.Ruleset(snapshot.WeekDays)
	if err != nil {
		return model.EngineInput{}, err
	}

	input := model.EngineInput{
		WeekDays: snapshot.WeekDays,
		Settings: app.Cfg.Settings(),
		Ruleset:  ruleset,
	}
	for _, s := range snapshot.Shifts {
		input.Shifts = append(input.Shifts, model.Shift{
			ID:         s.ID,
			UserID:     s.UserID,
			UnitID:     s.UnitID,
			DateKey:    s.DateKey,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			PositionID: s.PositionID,
			IsDayOff:   s.IsDayOff,
		})
	}
	return input, nil
}
