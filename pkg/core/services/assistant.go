package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/pkg/core/assistant"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/db"
)

// BuildAssistantResponse assembles the suggestion/explanation payload for
// one evaluation result. The session may be nil when no decisions exist;
// it is read, never written.
func BuildAssistantResponse(input model.EngineInput, result *EvaluateResult, session *model.AssistantSession, logger *zap.Logger) assistant.Response {
	response := assistant.BuildResponse(input, result.Violations, result.Suggestions, session)
	logger.Debug("Built assistant response",
		zap.Int("suggestions", len(response.Suggestions)),
		zap.Int("explanations", len(response.Explanations)))
	return response
}

// LoadSession reads a session's decision log from the store
func LoadSession(ctx context.Context, store db.SessionStore, sessionID string) (*model.AssistantSession, error) {
	decisions, err := store.GetDecisions(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	session := &model.AssistantSession{ID: sessionID}
	for _, decision := range decisions {
		session.Decisions = append(session.Decisions, decision.ToModel())
	}
	return session, nil
}

// RecordDecision appends one decision to the session and persists it
func RecordDecision(ctx context.Context, store db.SessionStore, session *model.AssistantSession, record model.DecisionRecord, logger *zap.Logger) error {
	if record.SuggestionID == "" {
		return fmt.Errorf("decision is missing a suggestion id")
	}
	if record.Decision != model.DecisionAccepted && record.Decision != model.DecisionRejected {
		return fmt.Errorf("unknown decision %q", record.Decision)
	}
	if record.Source == "" {
		record.Source = model.DecisionSourceUser
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	assistant.ApplyDecisionToSession(session, record)
	stored := session.Decisions[len(session.Decisions)-1]

	err := store.InsertDecision(ctx, &db.Decision{
		ID:           uuid.NewString(),
		SessionID:    session.ID,
		SuggestionID: stored.SuggestionID,
		Decision:     string(stored.Decision),
		Source:       string(stored.Source),
		Reason:       stored.Reason,
		DecidedAt:    stored.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to persist decision: %w", err)
	}

	logger.Info("Recorded suggestion decision",
		zap.String("session_id", session.ID),
		zap.String("suggestion_id", stored.SuggestionID),
		zap.String("decision", string(stored.Decision)))
	return nil
}
