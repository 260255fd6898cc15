package db

import "context"

// ScenarioStore defines the database operations for scenario documents
type ScenarioStore interface {
	InsertScenario(ctx context.Context, scenario *Scenario) error
	GetScenariosByWeek(ctx context.Context, unitID, weekStartDate string) ([]Scenario, error)
	DeleteScenario(ctx context.Context, id string) error
}

// SessionStore defines the database operations for assistant sessions and
// their decision logs.
type SessionStore interface {
	GetDecisions(ctx context.Context, sessionID string) ([]Decision, error)
	InsertDecision(ctx context.Context, decision *Decision) error
}

// AppliedSuggestionStore tracks which suggestions have been applied to a
// draft, for idempotent replays.
type AppliedSuggestionStore interface {
	GetAppliedSuggestionIDs(ctx context.Context, draftID string) ([]string, error)
	MarkSuggestionApplied(ctx context.Context, applied *AppliedSuggestion) error
}
