package postgres

import (
	"context"
	"fmt"

	"github.com/hostwell/shiftengine/pkg/db"
)

// GetDecisions retrieves a session's decision log in insertion order
func (d *DB) GetDecisions(ctx context.Context, sessionID string) ([]db.Decision, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, session_id, suggestion_id, decision, source, reason, decided_at
		FROM session_decision
		WHERE session_id = $1
		ORDER BY decided_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []db.Decision
	for rows.Next() {
		var record db.Decision
		var reason *string
		if err := rows.Scan(&record.ID, &record.SessionID, &record.SuggestionID,
			&record.Decision, &record.Source, &reason, &record.DecidedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		if reason != nil {
			record.Reason = *reason
		}
		decisions = append(decisions, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decisions: %w", err)
	}

	return decisions, nil
}

// InsertDecision appends one decision record
func (d *DB) InsertDecision(ctx context.Context, decision *db.Decision) error {
	var reason *string
	if decision.Reason != "" {
		reason = &decision.Reason
	}
	_, err := d.pool.Exec(ctx, `
		INSERT INTO session_decision (id, session_id, suggestion_id, decision, source, reason, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, decision.ID, decision.SessionID, decision.SuggestionID, decision.Decision,
		decision.Source, reason, decision.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}
	return nil
}
