package model

import "time"

// SuggestionType distinguishes the remediation inventory
type SuggestionType string

const (
	SuggestionAddShift  SuggestionType = "ADD_SHIFT_SUGGESTION"
	SuggestionMoveShift SuggestionType = "SHIFT_MOVE_SUGGESTION"
)

// ActionType identifies what a suggestion action does to a schedule
type ActionType string

const (
	ActionCreateShift ActionType = "createShift"
	ActionMoveShift   ActionType = "moveShift"
)

// SuggestionAction is one concrete mutation proposed by a suggestion.
// CreateShift actions leave ShiftID empty; MoveShift actions require it.
type SuggestionAction struct {
	Type       ActionType
	ShiftID    string // moveShift only
	UserID     string
	DateKey    string
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	PositionID string // Empty string if unassigned
}

// Suggestion is a proposed remediation for one or more violations
type Suggestion struct {
	Type           SuggestionType
	ExpectedImpact string
	Explanation    string
	Actions        []SuggestionAction
}

// ExplanationKind classifies an explanation entry
type ExplanationKind string

const (
	ExplanationInfo       ExplanationKind = "info"
	ExplanationViolation  ExplanationKind = "violation"
	ExplanationSuggestion ExplanationKind = "suggestion"
)

// Explanation is one human-readable entry in an assistant response
type Explanation struct {
	ID                  string
	Kind                ExplanationKind
	Severity            Severity
	Title               string
	Details             string
	Affected            Affected
	RelatedConstraintID string
	RelatedSuggestionID string
	Why                 string
	WhyNow              string
	WhatIfAccepted      string
	Meta                map[string]string
}

// Decision is the outcome recorded against a suggestion identity
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// DecisionSource records who made a decision
type DecisionSource string

const (
	DecisionSourceUser   DecisionSource = "user"
	DecisionSourceSystem DecisionSource = "system"
)

// DecisionRecord is one accept/reject entry in an assistant session
type DecisionRecord struct {
	SuggestionID string
	Decision     Decision
	Timestamp    time.Time
	SessionID    string
	Reason       string // Sanitized before use, may be empty
	Source       DecisionSource
}

// AssistantSession accumulates an ordered, append-only decision log. The
// engine reads it to make explanations decision-aware; only
// ApplyDecisionToSession ever appends.
type AssistantSession struct {
	ID        string
	Decisions []DecisionRecord
}

// DecisionFor returns the latest decision recorded for a suggestion id,
// or nil when the session holds none.
func (s *AssistantSession) DecisionFor(suggestionID string) *DecisionRecord {
	if s == nil {
		return nil
	}
	for i := len(s.Decisions) - 1; i >= 0; i-- {
		if s.Decisions[i].SuggestionID == suggestionID {
			return &s.Decisions[i]
		}
	}
	return nil
}

// ScheduleState is a draft schedule the applier mutates copy-on-write
type ScheduleState struct {
	Shifts []Shift
}

// Clone returns a deep copy of the schedule state
func (s ScheduleState) Clone() ScheduleState {
	shifts := make([]Shift, len(s.Shifts))
	copy(shifts, s.Shifts)
	return ScheduleState{Shifts: shifts}
}

// FindShift returns the index of the shift with the given id, or -1
func (s ScheduleState) FindShift(id string) int {
	for i, shift := range s.Shifts {
		if shift.ID == id {
			return i
		}
	}
	return -1
}
