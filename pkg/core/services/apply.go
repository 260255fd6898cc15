package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/pkg/core/applier"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/db"
)

// ApplySuggestion applies one suggestion to a draft schedule, consulting the
// store for previously applied suggestion ids and recording a successful
// application. Undo stays with the caller: it must keep the pre-apply
// schedule itself, since the applier only produces forward effects.
func ApplySuggestion(
	ctx context.Context,
	store db.AppliedSuggestionStore,
	draftID string,
	suggestionID string,
	suggestion model.Suggestion,
	schedule model.ScheduleState,
	mode applier.Mode,
	logger *zap.Logger,
) (*applier.Result, error) {
	appliedIDs, err := store.GetAppliedSuggestionIDs(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applied suggestion ids: %w", err)
	}
	appliedSet := make(map[string]bool, len(appliedIDs))
	for _, id := range appliedIDs {
		appliedSet[id] = true
	}

	result, err := applier.Apply(suggestionID, suggestion, schedule, appliedSet, mode)
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case applier.StatusApplied:
		err := store.MarkSuggestionApplied(ctx, &db.AppliedSuggestion{
			DraftID:      draftID,
			SuggestionID: suggestionID,
			AppliedAt:    time.Now().UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to mark suggestion %s applied: %w", suggestionID, err)
		}
		logger.Info("Applied suggestion",
			zap.String("draft_id", draftID),
			zap.String("suggestion_id", suggestionID),
			zap.Int("effects", len(result.Effects)))
	case applier.StatusNoop:
		logger.Debug("Suggestion already applied",
			zap.String("draft_id", draftID),
			zap.String("suggestion_id", suggestionID))
	case applier.StatusFailed:
		logger.Warn("Suggestion application failed",
			zap.String("draft_id", draftID),
			zap.String("suggestion_id", suggestionID),
			zap.String("code", result.Errors[0].Code))
	}

	return result, nil
}
