package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

func TestSanitizeReason_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "too many hours", SanitizeReason("  too   many\t\nhours  "))
}

func TestSanitizeReason_TruncatesLongReason(t *testing.T) {
	out := SanitizeReason(strings.Repeat("a ", 300))

	assert.Len(t, []rune(out), 200)
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestSanitizeReason_EmptyStaysEmpty(t *testing.T) {
	assert.Empty(t, SanitizeReason("   \t\n  "))
}

func TestApplyDecisionToSession_AppendsInOrder(t *testing.T) {
	session := &model.AssistantSession{ID: "sess1"}

	ApplyDecisionToSession(session, model.DecisionRecord{
		SuggestionID: "sug1",
		Decision:     model.DecisionAccepted,
		Reason:       "  covers   the gap ",
	})
	ApplyDecisionToSession(session, model.DecisionRecord{
		SuggestionID: "sug2",
		Decision:     model.DecisionRejected,
	})

	require.Len(t, session.Decisions, 2)
	assert.Equal(t, "sess1", session.Decisions[0].SessionID)
	assert.Equal(t, "covers the gap", session.Decisions[0].Reason)
	assert.Equal(t, "sug2", session.Decisions[1].SuggestionID)
}

func TestDecisionFor_LatestWins(t *testing.T) {
	session := &model.AssistantSession{ID: "sess1"}
	ApplyDecisionToSession(session, model.DecisionRecord{SuggestionID: "sug1", Decision: model.DecisionRejected})
	ApplyDecisionToSession(session, model.DecisionRecord{SuggestionID: "sug1", Decision: model.DecisionAccepted})

	record := session.DecisionFor("sug1")

	require.NotNil(t, record)
	assert.Equal(t, model.DecisionAccepted, record.Decision)
	assert.Nil(t, session.DecisionFor("unknown"))
}

func TestDecisionFor_NilSession(t *testing.T) {
	var session *model.AssistantSession

	assert.Nil(t, session.DecisionFor("sug1"))
}

func TestDecisionExplanation_AcceptedWithReason(t *testing.T) {
	record := model.DecisionRecord{
		SuggestionID: "sug1",
		Decision:     model.DecisionAccepted,
		Source:       model.DecisionSourceUser,
		Timestamp:    time.Date(2025, 1, 6, 12, 30, 0, 0, time.UTC),
		Reason:       "fits the roster",
	}

	explanation := decisionExplanation("sug1", record)

	assert.Equal(t, "explanation:decision:sug1", explanation.ID)
	assert.Equal(t, model.ExplanationInfo, explanation.Kind)
	assert.Equal(t, "Suggestion applied", explanation.Title)
	assert.Contains(t, explanation.WhyNow, "User decision: accepted")
	assert.Contains(t, explanation.WhyNow, "fits the roster")
	assert.Equal(t, "accepted", explanation.Meta["decision"])
	assert.Equal(t, "2025-01-06T12:30:00Z", explanation.Meta["decisionTimestamp"])
	assert.Equal(t, "true", explanation.Meta["hasDecisionReason"])
}

func TestDecisionExplanation_RejectedWithoutReason(t *testing.T) {
	record := model.DecisionRecord{
		SuggestionID: "sug1",
		Decision:     model.DecisionRejected,
		Source:       model.DecisionSourceSystem,
	}

	explanation := decisionExplanation("sug1", record)

	assert.Equal(t, "Suggestion dismissed", explanation.Title)
	assert.Empty(t, explanation.WhyNow)
	assert.Equal(t, "false", explanation.Meta["hasDecisionReason"])
}
