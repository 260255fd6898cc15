// Package suggest derives remediation suggestions from constraint
// violations. The inventory is deliberately small and tied to specific
// violation types; generation is deterministic so re-running on unchanged
// input yields identical suggestions.
package suggest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// Generate produces suggestions for the given violations against the
// (scenario-preprocessed) input. Violations are handled in their given
// order; all candidate tie-breaks are lexicographic.
func Generate(input model.EngineInput, violations []model.Violation) []model.Suggestion {
	var suggestions []model.Suggestion
	seen := make(map[string]bool)

	for _, violation := range violations {
		var candidates []model.Suggestion
		switch violation.ConstraintID {
		case model.ConstraintMinCoverageByPosition:
			candidates = coverageSuggestions(input, violation)
		case model.ConstraintMinRestHours:
			candidates = restSuggestions(input, violation)
		case model.ConstraintMaxHoursPerDay:
			candidates = dailyHoursSuggestions(input, violation)
		}

		for _, suggestion := range candidates {
			key := dedupeKey(suggestion)
			if seen[key] {
				continue
			}
			seen[key] = true
			suggestions = append(suggestions, suggestion)
		}
	}

	return suggestions
}

// dedupeKey folds a suggestion to its first action's identifying fields,
// mirroring how suggestion identities are derived downstream.
func dedupeKey(s model.Suggestion) string {
	if len(s.Actions) == 0 {
		return string(s.Type)
	}
	a := s.Actions[0]
	return strings.Join([]string{string(s.Type), a.UserID, a.DateKey, a.StartTime, a.EndTime, a.PositionID}, "|")
}

// coverageSuggestions proposes one added shift per under-staffed date,
// assigned to the least-loaded known user who is free that day.
func coverageSuggestions(input model.EngineInput, violation model.Violation) []model.Suggestion {
	bucketMins := timeslot.NormalizeBucket(input.Ruleset.BucketMinutes)

	// Group the missing slots by their date component.
	slotsByDate := make(map[string][]string)
	for _, slot := range violation.Affected.Slots {
		parts := strings.SplitN(slot, "T", 2)
		if len(parts) != 2 {
			continue
		}
		slotsByDate[parts[0]] = append(slotsByDate[parts[0]], parts[1])
	}

	dates := make([]string, 0, len(slotsByDate))
	for date := range slotsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var suggestions []model.Suggestion
	for _, dateKey := range dates {
		userID := pickFreeUser(input, dateKey)
		if userID == "" {
			continue
		}

		clocks := slotsByDate[dateKey]
		sort.Strings(clocks)
		start := clocks[0]
		end := clockAfter(clocks[len(clocks)-1], bucketMins)

		suggestions = append(suggestions, model.Suggestion{
			Type: model.SuggestionAddShift,
			ExpectedImpact: fmt.Sprintf("Coverage for position %s reaches the required minimum on %s",
				violation.Affected.PositionID, dateKey),
			Explanation: fmt.Sprintf("Add a %s shift for %s on %s from %s to %s to close the coverage gap",
				violation.Affected.PositionID, userID, dateKey, start, end),
			Actions: []model.SuggestionAction{{
				Type:       model.ActionCreateShift,
				UserID:     userID,
				DateKey:    dateKey,
				StartTime:  start,
				EndTime:    end,
				PositionID: violation.Affected.PositionID,
			}},
		})
	}
	return suggestions
}

// restSuggestions delays the later shift of an under-rested pair so the gap
// reaches the configured minimum, preserving the shift's duration.
func restSuggestions(input model.EngineInput, violation model.Violation) []model.Suggestion {
	rule := input.Ruleset.Rest
	if rule == nil || len(violation.Affected.ShiftIDs) != 2 {
		return nil
	}

	prev, okPrev := findShift(input, violation.Affected.ShiftIDs[0])
	next, okNext := findShift(input, violation.Affected.ShiftIDs[1])
	if !okPrev || !okNext {
		return nil
	}
	prevBounds, ok := timeslot.ShiftBounds(prev, input.Settings)
	if !ok {
		return nil
	}
	nextBounds, ok := timeslot.ShiftBounds(next, input.Settings)
	if !ok {
		return nil
	}

	dayStart, _ := timeslot.Combine(next.DateKey, 0)
	newStartMins := int(prevBounds.End.Sub(dayStart).Minutes()) + int(rule.MinRestHours*60)
	if newStartMins < 0 || newStartMins >= timeslot.MinutesPerDay {
		// The rest cannot be restored by a same-day move.
		return nil
	}
	durationMins := int(nextBounds.End.Sub(nextBounds.Start).Minutes())
	newStart := formatClock(newStartMins)
	newEnd := formatClock((newStartMins + durationMins) % timeslot.MinutesPerDay)

	return []model.Suggestion{{
		Type: model.SuggestionMoveShift,
		ExpectedImpact: fmt.Sprintf("User %s gets at least %.1fh rest before shift %s",
			next.UserID, rule.MinRestHours, next.ID),
		Explanation: fmt.Sprintf("Move shift %s on %s to start at %s so the rest after shift %s reaches %.1fh",
			next.ID, next.DateKey, newStart, prev.ID, rule.MinRestHours),
		Actions: []model.SuggestionAction{{
			Type:       model.ActionMoveShift,
			ShiftID:    next.ID,
			UserID:     next.UserID,
			DateKey:    next.DateKey,
			StartTime:  newStart,
			EndTime:    newEnd,
			PositionID: next.PositionID,
		}},
	}}
}

// dailyHoursSuggestions trims the excess over the daily cap off the end of
// the day's longest shift.
func dailyHoursSuggestions(input model.EngineInput, violation model.Violation) []model.Suggestion {
	rule := input.Ruleset.DailyHours
	if rule == nil || len(violation.Affected.DateKeys) != 1 {
		return nil
	}
	dateKey := violation.Affected.DateKeys[0]
	dayStart, ok := timeslot.Combine(dateKey, 0)
	if !ok {
		return nil
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	// Sum the minutes each referenced shift contributes inside the violation
	// day, and track the longest such segment, ties broken by id.
	var longest model.Shift
	var longestBounds timeslot.Interval
	var longestSegment, totalMins int
	found := false
	for _, shiftID := range violation.Affected.ShiftIDs {
		shift, shiftFound := findShift(input, shiftID)
		if !shiftFound {
			continue
		}
		bounds, resolvable := timeslot.ShiftBounds(shift, input.Settings)
		if !resolvable {
			continue
		}
		segStart, segEnd := bounds.Start, bounds.End
		if segStart.Before(dayStart) {
			segStart = dayStart
		}
		if segEnd.After(dayEnd) {
			segEnd = dayEnd
		}
		if !segEnd.After(segStart) {
			continue
		}
		segment := int(segEnd.Sub(segStart).Minutes())
		totalMins += segment
		if !found || segment > longestSegment ||
			(segment == longestSegment && shift.ID < longest.ID) {
			longest, longestBounds, longestSegment, found = shift, bounds, segment, true
		}
	}
	if !found {
		return nil
	}

	capMins := int(rule.MaxHoursPerDay * 60)
	if totalMins <= capMins {
		return nil
	}
	excessMins := totalMins - capMins
	if excessMins >= longestSegment {
		// The longest shift alone cannot absorb the trim.
		return nil
	}

	newEndAbs := longestBounds.End.Add(-time.Duration(excessMins) * time.Minute)
	if !newEndAbs.After(longestBounds.Start) {
		return nil
	}
	newEnd := formatClock((newEndAbs.Hour()*60 + newEndAbs.Minute()) % timeslot.MinutesPerDay)

	return []model.Suggestion{{
		Type: model.SuggestionMoveShift,
		ExpectedImpact: fmt.Sprintf("User %s stays within %.1fh on %s",
			longest.UserID, rule.MaxHoursPerDay, dateKey),
		Explanation: fmt.Sprintf("Shorten shift %s on %s to end at %s, removing %d minute(s) over the daily cap",
			longest.ID, longest.DateKey, newEnd, excessMins),
		Actions: []model.SuggestionAction{{
			Type:       model.ActionMoveShift,
			ShiftID:    longest.ID,
			UserID:     longest.UserID,
			DateKey:    longest.DateKey,
			StartTime:  longest.StartTime,
			EndTime:    newEnd,
			PositionID: longest.PositionID,
		}},
	}}
}

// pickFreeUser returns the known user with the fewest shifts this week who
// is not already working the given date, or "" when nobody qualifies.
func pickFreeUser(input model.EngineInput, dateKey string) string {
	load := make(map[string]int)
	working := make(map[string]bool)
	for _, shift := range input.Shifts {
		if shift.UserID == "" {
			continue
		}
		if _, seen := load[shift.UserID]; !seen {
			load[shift.UserID] = 0
		}
		if !shift.IsDayOff {
			load[shift.UserID]++
			if shift.DateKey == dateKey {
				working[shift.UserID] = true
			}
		}
	}

	best := ""
	for userID, count := range load {
		if working[userID] {
			continue
		}
		if best == "" || count < load[best] || (count == load[best] && userID < best) {
			best = userID
		}
	}
	return best
}

func findShift(input model.EngineInput, shiftID string) (model.Shift, bool) {
	for _, shift := range input.Shifts {
		if shift.ID == shiftID {
			return shift, true
		}
	}
	return model.Shift{}, false
}

func clockAfter(clock string, bucketMins int) string {
	mins, ok := timeslot.ParseClock(clock)
	if !ok {
		return clock
	}
	return formatClock((mins + bucketMins) % timeslot.MinutesPerDay)
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
