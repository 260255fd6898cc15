package assistant

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

func responseFixture() (model.EngineInput, []model.Violation, []model.Suggestion) {
	input := model.EngineInput{
		WeekDays: []string{"2025-01-06"},
		Ruleset:  model.Ruleset{BucketMinutes: 30},
	}
	violations := []model.Violation{
		{
			ConstraintID: model.ConstraintMinCoverageByPosition,
			Severity:     model.SeverityHigh,
			Message:      "Position waiter is under-staffed",
			Affected: model.Affected{
				PositionID: "waiter",
				DateKeys:   []string{"2025-01-06"},
				Slots:      []string{"2025-01-06T18:00", "2025-01-06T18:30"},
			},
		},
	}
	suggestions := []model.Suggestion{
		{
			Type:           model.SuggestionAddShift,
			ExpectedImpact: "Coverage restored",
			Explanation:    "Add a waiter shift",
			Actions: []model.SuggestionAction{{
				Type:       model.ActionCreateShift,
				UserID:     "u1",
				DateKey:    "2025-01-06",
				StartTime:  "18:00",
				EndTime:    "19:00",
				PositionID: "waiter",
			}},
		},
	}
	return input, violations, suggestions
}

func TestBuildResponse_LinksSuggestionToViolation(t *testing.T) {
	input, violations, suggestions := responseFixture()

	response := BuildResponse(input, violations, suggestions, nil)

	require.Len(t, response.Suggestions, 1)
	suggestionID := response.Suggestions[0].ID
	require.Len(t, response.Explanations, 2)

	violationExpl := response.Explanations[0]
	assert.Equal(t, model.ExplanationViolation, violationExpl.Kind)
	assert.Equal(t, "explanation:violation:MIN_COVERAGE_BY_POSITION:0", violationExpl.ID)
	assert.Equal(t, suggestionID, violationExpl.RelatedSuggestionID)

	suggestionExpl := response.Explanations[1]
	assert.Equal(t, model.ExplanationSuggestion, suggestionExpl.Kind)
	assert.Equal(t, "explanation:suggestion:"+suggestionID, suggestionExpl.ID)
	assert.Equal(t, model.ConstraintMinCoverageByPosition, suggestionExpl.RelatedConstraintID)
	// Linked suggestions inherit the violation's severity.
	assert.Equal(t, model.SeverityHigh, suggestionExpl.Severity)
	assert.Equal(t, "Add a waiter shift", suggestionExpl.Why)
	assert.Equal(t, "Addresses MIN_COVERAGE_BY_POSITION", suggestionExpl.WhyNow)
	assert.Equal(t, "Coverage restored", suggestionExpl.WhatIfAccepted)
}

func TestBuildResponse_UnlinkedSuggestionKeepsDefaults(t *testing.T) {
	input, _, suggestions := responseFixture()

	response := BuildResponse(input, nil, suggestions, nil)

	require.Len(t, response.Explanations, 1)
	expl := response.Explanations[0]
	assert.Equal(t, model.SeverityMedium, expl.Severity)
	assert.Empty(t, expl.RelatedConstraintID)
	assert.Empty(t, expl.WhyNow)
}

func TestBuildResponse_DecisionExplanationAppended(t *testing.T) {
	input, violations, suggestions := responseFixture()
	suggestionID := SuggestionID(suggestions[0])
	session := &model.AssistantSession{ID: "sess1"}
	ApplyDecisionToSession(session, model.DecisionRecord{
		SuggestionID: suggestionID,
		Decision:     model.DecisionRejected,
		Source:       model.DecisionSourceUser,
		Timestamp:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		Reason:       "staffing is fine",
	})

	response := BuildResponse(input, violations, suggestions, session)

	require.Len(t, response.Explanations, 3)
	decision := response.Explanations[2]
	assert.Equal(t, "explanation:decision:"+suggestionID, decision.ID)
	assert.Equal(t, "Suggestion dismissed", decision.Title)
	assert.Equal(t, "rejected", decision.Meta["decision"])
}

func TestBuildResponse_UndecidedSuggestionNoDecisionEntry(t *testing.T) {
	input, violations, suggestions := responseFixture()
	session := &model.AssistantSession{ID: "sess1"}
	ApplyDecisionToSession(session, model.DecisionRecord{
		SuggestionID: "assistant-suggestion:v1:0000000000000000",
		Decision:     model.DecisionAccepted,
	})

	response := BuildResponse(input, violations, suggestions, session)

	assert.Len(t, response.Explanations, 2)
}

func TestBuildResponse_DeepEqualAcrossCalls(t *testing.T) {
	input, violations, suggestions := responseFixture()
	session := &model.AssistantSession{ID: "sess1"}
	ApplyDecisionToSession(session, model.DecisionRecord{
		SuggestionID: SuggestionID(suggestions[0]),
		Decision:     model.DecisionAccepted,
		Timestamp:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
	})

	first := BuildResponse(input, violations, suggestions, session)
	second := BuildResponse(input, violations, suggestions, session)

	assert.Empty(t, cmp.Diff(first, second))
}

func TestLinkSuggestions_CapsLinksPerViolation(t *testing.T) {
	input := model.EngineInput{Ruleset: model.Ruleset{BucketMinutes: 30}}
	violation := model.Violation{
		ConstraintID: model.ConstraintMinCoverageByPosition,
		Affected:     model.Affected{PositionID: "waiter", DateKeys: []string{"2025-01-06"}},
	}
	var suggestions []model.Suggestion
	for _, userID := range []string{"u1", "u2", "u3", "u4", "u5"} {
		suggestions = append(suggestions, addShiftSuggestion(userID, "2025-01-06", "18:00", "19:00", "waiter"))
	}

	links := LinkSuggestions(input, suggestions, []model.Violation{violation})

	assert.Len(t, links, 3)
	for _, link := range links {
		assert.Equal(t, 0, link.ViolationIdx)
	}
}

func TestLinkSuggestions_BelowThresholdNotLinked(t *testing.T) {
	input := model.EngineInput{Ruleset: model.Ruleset{BucketMinutes: 30}}
	// Shared position only scores 2, below the threshold, and a move
	// suggestion has no date-match fallback.
	suggestion := model.Suggestion{
		Type: model.SuggestionMoveShift,
		Actions: []model.SuggestionAction{{
			Type: model.ActionMoveShift, ShiftID: "s1", UserID: "u1",
			DateKey: "2025-01-07", StartTime: "10:00", EndTime: "18:00", PositionID: "waiter",
		}},
	}
	violation := model.Violation{
		ConstraintID: model.ConstraintMinCoverageByPosition,
		Affected:     model.Affected{PositionID: "waiter", DateKeys: []string{"2025-01-06"}},
	}

	assert.Empty(t, LinkSuggestions(input, []model.Suggestion{suggestion}, []model.Violation{violation}))
}
