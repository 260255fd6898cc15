package assistant

import (
	"sort"
	"strings"
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// Linking thresholds. These values are empirically tuned; keep them as
// constants rather than re-deriving them.
const (
	scoreDateMatch   = 3
	scorePosition    = 2
	scoreTimeOverlap = 1

	// linkScoreThreshold is the minimum score for a suggestion/violation
	// pair to qualify as linked.
	linkScoreThreshold = 3

	// maxLinksPerSide caps how many violations one suggestion links to and
	// how many suggestions one violation links to.
	maxLinksPerSide = 3
)

// Link ties one suggestion (by index) to one violation (by index)
type Link struct {
	SuggestionIdx int
	ViolationIdx  int
	Score         int
}

// violationSortKey orders violations reproducibly for tie-breaking
func violationSortKey(v model.Violation) string {
	parts := []string{v.ConstraintID, v.Affected.PositionID}
	parts = append(parts, v.Affected.DateKeys...)
	parts = append(parts, v.Affected.ShiftIDs...)
	return strings.Join(parts, "|")
}

// LinkSuggestions scores every suggestion/violation pair and keeps the
// qualifying links, at most maxLinksPerSide per suggestion and per violation.
// Ties are broken by lexicographic key order so the result is reproducible.
func LinkSuggestions(input model.EngineInput, suggestions []model.Suggestion, violations []model.Violation) []Link {
	var candidates []Link
	for si, suggestion := range suggestions {
		for vi, violation := range violations {
			score := linkScore(input, suggestion, violation)
			qualifies := score >= linkScoreThreshold ||
				(suggestion.Type == model.SuggestionAddShift && datesMatch(suggestion, violation))
			if qualifies {
				candidates = append(candidates, Link{SuggestionIdx: si, ViolationIdx: vi, Score: score})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aKey := SuggestionID(suggestions[a.SuggestionIdx])
		bKey := SuggestionID(suggestions[b.SuggestionIdx])
		if aKey != bKey {
			return aKey < bKey
		}
		return violationSortKey(violations[a.ViolationIdx]) < violationSortKey(violations[b.ViolationIdx])
	})

	perSuggestion := make(map[int]int)
	perViolation := make(map[int]int)
	var links []Link
	for _, candidate := range candidates {
		if perSuggestion[candidate.SuggestionIdx] >= maxLinksPerSide ||
			perViolation[candidate.ViolationIdx] >= maxLinksPerSide {
			continue
		}
		perSuggestion[candidate.SuggestionIdx]++
		perViolation[candidate.ViolationIdx]++
		links = append(links, candidate)
	}
	return links
}

// linkScore rates how strongly a suggestion addresses a violation:
// shared date +3, shared position +2, overlapping time range +1.
func linkScore(input model.EngineInput, suggestion model.Suggestion, violation model.Violation) int {
	score := 0
	if datesMatch(suggestion, violation) {
		score += scoreDateMatch
	}
	if positionsMatch(suggestion, violation) {
		score += scorePosition
	}
	if timeRangesOverlap(input, suggestion, violation) {
		score += scoreTimeOverlap
	}
	return score
}

func datesMatch(suggestion model.Suggestion, violation model.Violation) bool {
	for _, action := range suggestion.Actions {
		for _, dateKey := range violation.Affected.DateKeys {
			if action.DateKey == dateKey {
				return true
			}
		}
	}
	return false
}

func positionsMatch(suggestion model.Suggestion, violation model.Violation) bool {
	if violation.Affected.PositionID == "" {
		return false
	}
	for _, action := range suggestion.Actions {
		if action.PositionID == violation.Affected.PositionID {
			return true
		}
	}
	return false
}

// timeRangesOverlap checks whether any action interval overlaps any of the
// violation's slot buckets.
func timeRangesOverlap(input model.EngineInput, suggestion model.Suggestion, violation model.Violation) bool {
	if len(violation.Affected.Slots) == 0 {
		return false
	}
	bucketMins := timeslot.NormalizeBucket(input.Ruleset.BucketMinutes)

	for _, action := range suggestion.Actions {
		interval, ok := timeslot.ResolveRange(action.DateKey, action.StartTime, action.EndTime)
		if !ok {
			continue
		}
		for _, slot := range violation.Affected.Slots {
			parts := strings.SplitN(slot, "T", 2)
			if len(parts) != 2 {
				continue
			}
			slotStart, ok := timeslot.ResolveRange(parts[0], parts[1], parts[1])
			if !ok {
				continue
			}
			bucketEnd := slotStart.Start.Add(time.Duration(bucketMins) * time.Minute)
			if interval.Start.Before(bucketEnd) && slotStart.Start.Before(interval.End) {
				return true
			}
		}
	}
	return false
}
