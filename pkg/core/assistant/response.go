// Package assistant turns an evaluation result into the response the UI
// renders: suggestions with stable identities plus their human-readable
// explanations. Everything here is deterministic: calling the builder twice
// with the same input, result and session snapshot yields deep-equal output.
package assistant

import (
	"fmt"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

// SuggestionWithID pairs a suggestion with its stable derived identity
type SuggestionWithID struct {
	ID string
	model.Suggestion
}

// Response is what the assistant hands to the caller for rendering
type Response struct {
	Suggestions  []SuggestionWithID
	Explanations []model.Explanation
}

// BuildResponse assembles the assistant response for one evaluation pass.
// The session is read-only here; pass nil when no decisions exist yet.
func BuildResponse(input model.EngineInput, violations []model.Violation, suggestions []model.Suggestion, session *model.AssistantSession) Response {
	links := LinkSuggestions(input, suggestions, violations)

	// First linked violation per suggestion, first linked suggestion per
	// violation; links are already in deterministic order.
	violationForSuggestion := make(map[int]int)
	suggestionForViolation := make(map[int]int)
	for _, link := range links {
		if _, seen := violationForSuggestion[link.SuggestionIdx]; !seen {
			violationForSuggestion[link.SuggestionIdx] = link.ViolationIdx
		}
		if _, seen := suggestionForViolation[link.ViolationIdx]; !seen {
			suggestionForViolation[link.ViolationIdx] = link.SuggestionIdx
		}
	}

	withIDs := make([]SuggestionWithID, len(suggestions))
	for i, suggestion := range suggestions {
		withIDs[i] = SuggestionWithID{ID: SuggestionID(suggestion), Suggestion: suggestion}
	}

	var explanations []model.Explanation

	for i, violation := range violations {
		explanation := model.Explanation{
			ID:                  fmt.Sprintf("explanation:violation:%s:%d", violation.ConstraintID, i),
			Kind:                model.ExplanationViolation,
			Severity:            violation.Severity,
			Title:               violation.ConstraintID,
			Details:             violation.Message,
			Affected:            violation.Affected,
			RelatedConstraintID: violation.ConstraintID,
		}
		if si, linked := suggestionForViolation[i]; linked {
			explanation.RelatedSuggestionID = withIDs[si].ID
		}
		explanations = append(explanations, explanation)
	}

	for i, suggestion := range suggestions {
		explanation := model.Explanation{
			ID:                  "explanation:suggestion:" + withIDs[i].ID,
			Kind:                model.ExplanationSuggestion,
			Severity:            model.SeverityMedium,
			Title:               suggestionTitle(suggestion.Type),
			Details:             suggestion.Explanation,
			Affected:            suggestionAffected(suggestion),
			RelatedSuggestionID: withIDs[i].ID,
			Why:                 suggestion.Explanation,
			WhyNow:              buildWhyNow(input, suggestion, violations),
			WhatIfAccepted:      suggestion.ExpectedImpact,
		}
		if vi, linked := violationForSuggestion[i]; linked {
			explanation.RelatedConstraintID = violations[vi].ConstraintID
			explanation.Severity = violations[vi].Severity
		}
		explanations = append(explanations, explanation)
	}

	// Decision-aware entries for suggestions the session has ruled on.
	for _, withID := range withIDs {
		if record := session.DecisionFor(withID.ID); record != nil {
			explanations = append(explanations, decisionExplanation(withID.ID, *record))
		}
	}

	return Response{Suggestions: withIDs, Explanations: explanations}
}

func suggestionTitle(t model.SuggestionType) string {
	switch t {
	case model.SuggestionAddShift:
		return "Add a shift"
	case model.SuggestionMoveShift:
		return "Move a shift"
	}
	return "Suggestion"
}

func suggestionAffected(s model.Suggestion) model.Affected {
	var affected model.Affected
	for _, action := range s.Actions {
		if action.UserID != "" {
			affected.UserIDs = append(affected.UserIDs, action.UserID)
		}
		if action.ShiftID != "" {
			affected.ShiftIDs = append(affected.ShiftIDs, action.ShiftID)
		}
		if action.DateKey != "" {
			affected.DateKeys = append(affected.DateKeys, action.DateKey)
		}
		if affected.PositionID == "" {
			affected.PositionID = action.PositionID
		}
	}
	affected.UserIDs = dedupe(affected.UserIDs)
	affected.DateKeys = dedupe(affected.DateKeys)
	return affected
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
