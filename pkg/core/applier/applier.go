// Package applier validates and applies a suggestion's actions against a
// draft schedule. Application is all-or-nothing: any failing action reverts
// the schedule to its pre-call snapshot. Only this package mutates schedule
// drafts, so it is also the only part of the engine with strict validation;
// the evaluators fail closed instead.
package applier

import (
	"encoding/json"
	"fmt"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// Mode selects how validation failures surface.
//
// ModeProduction captures every failure as a structured ApplyError in the
// result and never returns a Go error; it also enforces that a move action's
// user matches the shift's current owner. ModeDevelopment returns the first
// validation problem as an error from Apply itself so programming mistakes
// surface immediately in tests.
type Mode int

const (
	ModeProduction Mode = iota
	ModeDevelopment
)

// Status is the outcome of one suggestion application
type Status string

const (
	StatusApplied Status = "applied"
	StatusNoop    Status = "noop"
	StatusFailed  Status = "failed"
)

// Error codes recorded on failed applications
const (
	CodeMissingFields     = "missing_fields"
	CodeInvalidFields     = "invalid_fields"
	CodeInvalidTimeRange  = "invalid_time_range"
	CodeShiftNotFound     = "shift_not_found"
	CodeUserMismatch      = "user_mismatch"
	CodeDuplicateShift    = "duplicate_shift"
	CodeUnsupportedAction = "unsupported_action"
	CodeApplyFailed       = "apply_failed"
)

// Effect records one mutation that was actually committed
type Effect struct {
	Action  model.ActionType
	ShiftID string
	Detail  string
}

// ApplyError is a structured validation or runtime failure
type ApplyError struct {
	Code          string
	Message       string
	ActionIndex   int
	ActionType    model.ActionType
	ActionPreview string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("%s: %s (action %d)", e.Code, e.Message, e.ActionIndex)
}

// Result is the outcome of applying one suggestion
type Result struct {
	Status       Status
	NextSchedule model.ScheduleState
	Effects      []Effect
	Errors       []ApplyError
}

// Apply applies the suggestion's actions in order against a working copy of
// the schedule. A suggestion whose id is already in appliedIDs is a noop.
// On any failure the whole suggestion rolls back and the returned schedule
// is identical to the input.
func Apply(suggestionID string, suggestion model.Suggestion, schedule model.ScheduleState, appliedIDs map[string]bool, mode Mode) (result *Result, err error) {
	if appliedIDs[suggestionID] {
		return &Result{Status: StatusNoop, NextSchedule: schedule, Effects: []Effect{}}, nil
	}

	if mode == ModeProduction {
		defer func() {
			if r := recover(); r != nil {
				result = failedResult(schedule, &ApplyError{
					Code:    CodeApplyFailed,
					Message: fmt.Sprintf("unexpected failure: %v", r),
				})
				err = nil
			}
		}()
	}

	working := schedule.Clone()
	var effects []Effect

	for index, action := range suggestion.Actions {
		var applyErr *ApplyError
		var effect *Effect

		switch action.Type {
		case model.ActionCreateShift:
			effect, applyErr = applyCreate(&working, suggestionID, index, action)
		case model.ActionMoveShift:
			effect, applyErr = applyMove(&working, index, action, mode)
		default:
			applyErr = &ApplyError{
				Code:    CodeUnsupportedAction,
				Message: fmt.Sprintf("action type %q is not supported", action.Type),
			}
		}

		if applyErr != nil {
			applyErr.ActionIndex = index
			applyErr.ActionType = action.Type
			applyErr.ActionPreview = previewAction(action)
			if mode == ModeDevelopment {
				return nil, applyErr
			}
			return failedResult(schedule, applyErr), nil
		}
		if effect != nil {
			effects = append(effects, *effect)
		}
	}

	if effects == nil {
		effects = []Effect{}
	}
	return &Result{Status: StatusApplied, NextSchedule: working, Effects: effects}, nil
}

func failedResult(schedule model.ScheduleState, applyErr *ApplyError) *Result {
	return &Result{
		Status:       StatusFailed,
		NextSchedule: schedule,
		Effects:      []Effect{},
		Errors:       []ApplyError{*applyErr},
	}
}

// applyCreate appends a new shift with a deterministic generated id.
// Creating a shift identical to an existing one is a no-effect success, not
// an error.
func applyCreate(schedule *model.ScheduleState, suggestionID string, index int, action model.SuggestionAction) (*Effect, *ApplyError) {
	if applyErr := validateActionFields(action, false); applyErr != nil {
		return nil, applyErr
	}

	// HH:MM strings compare correctly as times of day.
	if action.StartTime >= action.EndTime {
		return nil, &ApplyError{
			Code:    CodeInvalidTimeRange,
			Message: fmt.Sprintf("start %s must be before end %s", action.StartTime, action.EndTime),
		}
	}

	for _, shift := range schedule.Shifts {
		if shift.UserID == action.UserID && shift.DateKey == action.DateKey &&
			shift.StartTime == action.StartTime && shift.EndTime == action.EndTime &&
			shift.PositionID == action.PositionID {
			// Identical shift already present; nothing to commit.
			return nil, nil
		}
	}

	shiftID := fmt.Sprintf("gen:%s:%d", suggestionID, index)
	if schedule.FindShift(shiftID) >= 0 {
		return nil, &ApplyError{
			Code:    CodeDuplicateShift,
			Message: fmt.Sprintf("shift %s already exists", shiftID),
		}
	}

	schedule.Shifts = append(schedule.Shifts, model.Shift{
		ID:         shiftID,
		UserID:     action.UserID,
		DateKey:    action.DateKey,
		StartTime:  action.StartTime,
		EndTime:    action.EndTime,
		PositionID: action.PositionID,
	})
	return &Effect{
		Action:  model.ActionCreateShift,
		ShiftID: shiftID,
		Detail:  fmt.Sprintf("created shift for %s on %s %s-%s", action.UserID, action.DateKey, action.StartTime, action.EndTime),
	}, nil
}

// applyMove rewrites an existing shift's date, times and position in place
func applyMove(schedule *model.ScheduleState, index int, action model.SuggestionAction, mode Mode) (*Effect, *ApplyError) {
	if applyErr := validateActionFields(action, true); applyErr != nil {
		return nil, applyErr
	}
	if action.StartTime >= action.EndTime {
		return nil, &ApplyError{
			Code:    CodeInvalidTimeRange,
			Message: fmt.Sprintf("start %s must be before end %s", action.StartTime, action.EndTime),
		}
	}

	shiftIdx := schedule.FindShift(action.ShiftID)
	if shiftIdx < 0 {
		return nil, &ApplyError{
			Code:    CodeShiftNotFound,
			Message: fmt.Sprintf("shift %s not found", action.ShiftID),
		}
	}

	if mode == ModeProduction && schedule.Shifts[shiftIdx].UserID != action.UserID {
		return nil, &ApplyError{
			Code: CodeUserMismatch,
			Message: fmt.Sprintf("shift %s belongs to %s, not %s",
				action.ShiftID, schedule.Shifts[shiftIdx].UserID, action.UserID),
		}
	}

	shift := schedule.Shifts[shiftIdx]
	shift.DateKey = action.DateKey
	shift.StartTime = action.StartTime
	shift.EndTime = action.EndTime
	if action.PositionID != "" {
		shift.PositionID = action.PositionID
	}
	schedule.Shifts[shiftIdx] = shift

	return &Effect{
		Action:  model.ActionMoveShift,
		ShiftID: action.ShiftID,
		Detail:  fmt.Sprintf("moved shift to %s %s-%s", action.DateKey, action.StartTime, action.EndTime),
	}, nil
}

// validateActionFields checks required fields are present and well-formed
func validateActionFields(action model.SuggestionAction, needShiftID bool) *ApplyError {
	var missing []string
	if needShiftID && action.ShiftID == "" {
		missing = append(missing, "shiftId")
	}
	if action.UserID == "" {
		missing = append(missing, "userId")
	}
	if action.DateKey == "" {
		missing = append(missing, "dateKey")
	}
	if action.StartTime == "" {
		missing = append(missing, "startTime")
	}
	if action.EndTime == "" {
		missing = append(missing, "endTime")
	}
	if len(missing) > 0 {
		return &ApplyError{
			Code:    CodeMissingFields,
			Message: fmt.Sprintf("missing required fields: %v", missing),
		}
	}

	if !timeslot.IsDateKey(action.DateKey) {
		return &ApplyError{
			Code:    CodeInvalidFields,
			Message: fmt.Sprintf("dateKey %q is not a valid date", action.DateKey),
		}
	}
	if _, ok := timeslot.ParseClock(action.StartTime); !ok {
		return &ApplyError{
			Code:    CodeInvalidFields,
			Message: fmt.Sprintf("startTime %q is not a valid HH:MM time", action.StartTime),
		}
	}
	if _, ok := timeslot.ParseClock(action.EndTime); !ok {
		return &ApplyError{
			Code:    CodeInvalidFields,
			Message: fmt.Sprintf("endTime %q is not a valid HH:MM time", action.EndTime),
		}
	}
	return nil
}

func previewAction(action model.SuggestionAction) string {
	preview, err := json.Marshal(action)
	if err != nil {
		return fmt.Sprintf("%+v", action)
	}
	return string(preview)
}
