package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

// Scenario represents a stored what-if scenario document. The payload is
// kept as JSON so each scenario type can carry its own shape.
type Scenario struct {
	ID            string
	UnitID        string
	WeekStartDate string // YYYY-MM-DD
	Type          string
	Payload       []byte // JSON-encoded model.ScenarioPayload
	DateKeys      []string
	CreatedAt     time.Time
}

// ToModel decodes a stored scenario into its engine representation
func (s Scenario) ToModel() (model.Scenario, error) {
	var payload model.ScenarioPayload
	if len(s.Payload) > 0 {
		if err := json.Unmarshal(s.Payload, &payload); err != nil {
			return model.Scenario{}, fmt.Errorf("failed to decode scenario %s payload: %w", s.ID, err)
		}
	}
	return model.Scenario{
		ID:            s.ID,
		UnitID:        s.UnitID,
		WeekStartDate: s.WeekStartDate,
		Type:          model.ScenarioType(s.Type),
		Payload:       payload,
		DateKeys:      s.DateKeys,
	}, nil
}

// ScenarioFromModel encodes an engine scenario for storage
func ScenarioFromModel(sc model.Scenario) (Scenario, error) {
	payload, err := json.Marshal(sc.Payload)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to encode scenario payload: %w", err)
	}
	return Scenario{
		ID:            sc.ID,
		UnitID:        sc.UnitID,
		WeekStartDate: sc.WeekStartDate,
		Type:          string(sc.Type),
		Payload:       payload,
		DateKeys:      sc.DateKeys,
	}, nil
}

// Decision represents a stored accept/reject decision record
type Decision struct {
	ID           string
	SessionID    string
	SuggestionID string
	Decision     string
	Source       string
	Reason       string
	DecidedAt    time.Time
}

// ToModel converts a stored decision into its engine representation
func (d Decision) ToModel() model.DecisionRecord {
	return model.DecisionRecord{
		SuggestionID: d.SuggestionID,
		Decision:     model.Decision(d.Decision),
		Timestamp:    d.DecidedAt,
		SessionID:    d.SessionID,
		Reason:       d.Reason,
		Source:       model.DecisionSource(d.Source),
	}
}

// AppliedSuggestion marks one suggestion as applied against a draft
type AppliedSuggestion struct {
	DraftID      string
	SuggestionID string
	AppliedAt    time.Time
}
