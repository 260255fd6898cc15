package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

const (
	// maxWhyNowedIDs is how many constraint ids a whyNow summary lists
	// before folding the rest into a "(+N more)" suffix.
	maxWhyNowIDs = 5

	// maxWhyNowLength caps the whole whyNow string, truncation marker
	// included.
	maxWhyNowLength = 240

	truncationMarker = "..."
)

// buildWhyNow summarizes the constraint ids of every violation whose
// affected entities overlap the suggestion. Ids are sorted lexicographically,
// capped at maxWhyNowIDs with a "(+N more)" suffix, and the whole string is
// truncated to maxWhyNowLength. Byte-identical output for identical input.
func buildWhyNow(input model.EngineInput, suggestion model.Suggestion, violations []model.Violation) string {
	var ids []string
	for _, violation := range violations {
		if overlaps(input, suggestion, violation) {
			ids = append(ids, violation.ConstraintID)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)

	kept := ids
	extra := 0
	if len(ids) > maxWhyNowIDs {
		kept = ids[:maxWhyNowIDs]
		extra = len(ids) - maxWhyNowIDs
	}

	summary := "Addresses " + strings.Join(kept, ", ")
	if extra > 0 {
		summary += fmt.Sprintf(" (+%d more)", extra)
	}
	return truncate(summary, maxWhyNowLength)
}

// overlaps reports whether a violation touches the suggestion's action
// dates, positions or time ranges.
func overlaps(input model.EngineInput, suggestion model.Suggestion, violation model.Violation) bool {
	return datesMatch(suggestion, violation) ||
		positionsMatch(suggestion, violation) ||
		timeRangesOverlap(input, suggestion, violation)
}

// truncate shortens s to at most limit runes, replacing the tail with the
// truncation marker when it does.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(truncationMarker) {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(truncationMarker)]) + truncationMarker
}
