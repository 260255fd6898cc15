package postgres

import (
	"context"
	"fmt"

	"github.com/hostwell/shiftengine/pkg/db"
)

// GetAppliedSuggestionIDs returns the suggestion ids already applied to a draft
func (d *DB) GetAppliedSuggestionIDs(ctx context.Context, draftID string) ([]string, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT suggestion_id FROM applied_suggestion WHERE draft_id = $1
	`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied suggestions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan applied suggestion id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applied suggestions: %w", err)
	}

	return ids, nil
}

// MarkSuggestionApplied records that a suggestion was applied to a draft.
// Re-marking an already applied suggestion is a no-op.
func (d *DB) MarkSuggestionApplied(ctx context.Context, applied *db.AppliedSuggestion) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO applied_suggestion (draft_id, suggestion_id, applied_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (draft_id, suggestion_id) DO NOTHING
	`, applied.DraftID, applied.SuggestionID, applied.AppliedAt)
	if err != nil {
		return fmt.Errorf("failed to mark suggestion applied: %w", err)
	}
	return nil
}
