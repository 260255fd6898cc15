package services

import (
	"context"

	"github.com/hostwell/shiftengine/pkg/db"
)

// In-memory store fakes shared by the service tests.

type fakeScenarioStore struct {
	scenarios []db.Scenario
	err       error
}

func (f *fakeScenarioStore) InsertScenario(_ context.Context, scenario *db.Scenario) error {
	if f.err != nil {
		return f.err
	}
	f.scenarios = append(f.scenarios, *scenario)
	return nil
}

func (f *fakeScenarioStore) GetScenariosByWeek(_ context.Context, unitID, weekStartDate string) ([]db.Scenario, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.Scenario
	for _, sc := range f.scenarios {
		if sc.UnitID == unitID && sc.WeekStartDate == weekStartDate {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScenarioStore) DeleteScenario(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	kept := f.scenarios[:0]
	for _, sc := range f.scenarios {
		if sc.ID != id {
			kept = append(kept, sc)
		}
	}
	f.scenarios = kept
	return nil
}

type fakeSessionStore struct {
	decisions []db.Decision
	err       error
}

func (f *fakeSessionStore) GetDecisions(_ context.Context, sessionID string) ([]db.Decision, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []db.Decision
	for _, d := range f.decisions {
		if d.SessionID == sessionID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) InsertDecision(_ context.Context, decision *db.Decision) error {
	if f.err != nil {
		return f.err
	}
	f.decisions = append(f.decisions, *decision)
	return nil
}

type fakeAppliedStore struct {
	applied []db.AppliedSuggestion
	err     error
}

func (f *fakeAppliedStore) GetAppliedSuggestionIDs(_ context.Context, draftID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, a := range f.applied {
		if a.DraftID == draftID {
			out = append(out, a.SuggestionID)
		}
	}
	return out, nil
}

func (f *fakeAppliedStore) MarkSuggestionApplied(_ context.Context, applied *db.AppliedSuggestion) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, *applied)
	return nil
}
