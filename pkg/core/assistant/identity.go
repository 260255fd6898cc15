package assistant

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

const suggestionIDPrefix = "assistant-suggestion:v1:"

// SuggestionID derives the stable identity of a suggestion from its first
// action's identifying fields. The same suggestion content always yields the
// same id, so replays and session decisions line up across runs. This is the
// single derivation used everywhere; nothing else may hash suggestions.
func SuggestionID(s model.Suggestion) string {
	var a model.SuggestionAction
	if len(s.Actions) > 0 {
		a = s.Actions[0]
	}
	material := strings.Join([]string{
		string(s.Type), a.UserID, a.DateKey, a.StartTime, a.EndTime, a.PositionID,
	}, "|")
	sum := sha256.Sum256([]byte(material))
	return suggestionIDPrefix + hex.EncodeToString(sum[:])[:16]
}
