package postgres

import (
	"context"
	"fmt"

	"github.com/hostwell/shiftengine/pkg/db"
)

// InsertScenario stores a scenario document
func (d *DB) InsertScenario(ctx context.Context, scenario *db.Scenario) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO scenario (id, unit_id, week_start_date, type, payload, date_keys)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, scenario.ID, scenario.UnitID, scenario.WeekStartDate, scenario.Type, scenario.Payload, scenario.DateKeys)
	if err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// GetScenariosByWeek retrieves the scenarios for one unit and week start,
// oldest first so application order matches insertion order.
func (d *DB) GetScenariosByWeek(ctx context.Context, unitID, weekStartDate string) ([]db.Scenario, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, unit_id, week_start_date, type, payload, date_keys, created_at
		FROM scenario
		WHERE unit_id = $1 AND week_start_date = $2
		ORDER BY created_at, id
	`, unitID, weekStartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []db.Scenario
	for rows.Next() {
		var s db.Scenario
		if err := rows.Scan(&s.ID, &s.UnitID, &s.WeekStartDate, &s.Type, &s.Payload, &s.DateKeys, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}

	return scenarios, nil
}

// DeleteScenario removes a stored scenario by id
func (d *DB) DeleteScenario(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM scenario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scenario %s not found", id)
	}
	return nil
}
