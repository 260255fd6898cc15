package assistant

import (
	"strings"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

// maxReasonLength caps a sanitized decision reason, truncation marker
// included.
const maxReasonLength = 200

// SanitizeReason collapses all whitespace runs to single spaces, trims the
// ends and truncates deterministically.
func SanitizeReason(reason string) string {
	collapsed := strings.Join(strings.Fields(reason), " ")
	return truncate(collapsed, maxReasonLength)
}

// ApplyDecisionToSession appends one decision record to the session's
// ordered log. The reason is sanitized before storage; everything else is
// recorded as given.
func ApplyDecisionToSession(session *model.AssistantSession, record model.DecisionRecord) {
	record.Reason = SanitizeReason(record.Reason)
	record.SessionID = session.ID
	session.Decisions = append(session.Decisions, record)
}

// decisionExplanation synthesizes the decision-aware explanation for a
// suggestion the session has ruled on.
func decisionExplanation(suggestionID string, record model.DecisionRecord) model.Explanation {
	title := "Suggestion applied"
	if record.Decision == model.DecisionRejected {
		title = "Suggestion dismissed"
	}

	explanation := model.Explanation{
		ID:                  "explanation:decision:" + suggestionID,
		Kind:                model.ExplanationInfo,
		Severity:            model.SeverityLow,
		Title:               title,
		RelatedSuggestionID: suggestionID,
		Meta: map[string]string{
			"decision":          string(record.Decision),
			"decisionSource":    string(record.Source),
			"decisionTimestamp": record.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			"hasDecisionReason": "false",
		},
	}

	if reason := SanitizeReason(record.Reason); reason != "" {
		source := "User"
		if record.Source == model.DecisionSourceSystem {
			source = "System"
		}
		explanation.WhyNow = source + " decision: " + string(record.Decision) + " — " + reason
		explanation.Meta["hasDecisionReason"] = "true"
	}

	return explanation
}
