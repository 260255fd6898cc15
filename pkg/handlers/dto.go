package handlers

import (
	"github.com/hostwell/shiftengine/pkg/core/applier"
	"github.com/hostwell/shiftengine/pkg/core/assistant"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/scenario"
	"github.com/hostwell/shiftengine/pkg/core/services"
)

// The core model carries no serialization concerns, so the HTTP surface
// maps it to and from these JSON shapes.

type shiftDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	UnitID     string `json:"unitId,omitempty"`
	DateKey    string `json:"dateKey"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	PositionID string `json:"positionId,omitempty"`
	IsDayOff   bool   `json:"isDayOff,omitempty"`
}

type settingsDTO struct {
	DefaultClosingTime string            `json:"defaultClosingTime,omitempty"`
	ClosingTimeByDay   map[string]string `json:"closingTimeByDay,omitempty"`
	ClosingOffsetMins  int               `json:"closingOffsetMins,omitempty"`
}

type coverageRuleDTO struct {
	PositionID string   `json:"positionId"`
	DateKeys   []string `json:"dateKeys"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	MinCount   int      `json:"minCount"`
	Severity   string   `json:"severity,omitempty"`
}

type rulesetDTO struct {
	BucketMinutes  int               `json:"bucketMinutes"`
	Coverage       []coverageRuleDTO `json:"coverage,omitempty"`
	MinRestHours   float64           `json:"minRestHours,omitempty"`
	MaxHoursPerDay float64           `json:"maxHoursPerDay,omitempty"`
}

type engineInputDTO struct {
	WeekDays []string    `json:"weekDays" binding:"required"`
	Shifts   []shiftDTO  `json:"shifts"`
	Settings settingsDTO `json:"scheduleSettings"`
	Ruleset  rulesetDTO  `json:"ruleset"`
}

type scenarioDTO struct {
	ID            string             `json:"id,omitempty"`
	UnitID        string             `json:"unitId,omitempty"`
	WeekStartDate string             `json:"weekStartDate"`
	Type          string             `json:"type"`
	Payload       scenarioPayloadDTO `json:"payload"`
	DateKeys      []string           `json:"dateKeys,omitempty"`
}

type scenarioPayloadDTO struct {
	UserID      string               `json:"userId,omitempty"`
	TimeRange   *timeRangeDTO        `json:"timeRange,omitempty"`
	Overrides   []coverageOverride   `json:"minCoverageOverrides,omitempty"`
	Timestamp   string               `json:"timestamp,omitempty"`
	Description string               `json:"description,omitempty"`
	Patches     []shiftPatchDTO      `json:"patches,omitempty"`
}

type timeRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type coverageOverride struct {
	PositionID string `json:"positionId"`
	MinCount   int    `json:"minCount"`
}

type shiftPatchDTO struct {
	ShiftID    string `json:"shiftId,omitempty"`
	UserID     string `json:"userId,omitempty"`
	DateKey    string `json:"dateKey,omitempty"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	PositionID string `json:"positionId,omitempty"`
}

type suggestionActionDTO struct {
	Type       string `json:"type"`
	ShiftID    string `json:"shiftId,omitempty"`
	UserID     string `json:"userId"`
	DateKey    string `json:"dateKey"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	PositionID string `json:"positionId,omitempty"`
}

type suggestionDTO struct {
	ID             string                `json:"id,omitempty"`
	Type           string                `json:"type"`
	ExpectedImpact string                `json:"expectedImpact,omitempty"`
	Explanation    string                `json:"explanation,omitempty"`
	Actions        []suggestionActionDTO `json:"actions"`
}

type affectedDTO struct {
	UserIDs    []string `json:"userIds,omitempty"`
	ShiftIDs   []string `json:"shiftIds,omitempty"`
	Slots      []string `json:"slots,omitempty"`
	PositionID string   `json:"positionId,omitempty"`
	DateKeys   []string `json:"dateKeys,omitempty"`
}

type violationDTO struct {
	ConstraintID string      `json:"constraintId"`
	Severity     string      `json:"severity"`
	Message      string      `json:"message"`
	Affected     affectedDTO `json:"affected"`
}

type explanationDTO struct {
	ID                  string            `json:"id"`
	Kind                string            `json:"kind"`
	Severity            string            `json:"severity"`
	Title               string            `json:"title"`
	Details             string            `json:"details,omitempty"`
	Affected            affectedDTO       `json:"affected"`
	RelatedConstraintID string            `json:"relatedConstraintId,omitempty"`
	RelatedSuggestionID string            `json:"relatedSuggestionId,omitempty"`
	Why                 string            `json:"why,omitempty"`
	WhyNow              string            `json:"whyNow,omitempty"`
	WhatIfAccepted      string            `json:"whatIfAccepted,omitempty"`
	Meta                map[string]string `json:"meta,omitempty"`
}

type scenarioEffectDTO struct {
	ScenarioID      string   `json:"scenarioId"`
	Type            string   `json:"type"`
	RemovedShiftIDs []string `json:"removedShiftIds,omitempty"`
	InjectedRules   int      `json:"injectedRules,omitempty"`
	Note            string   `json:"note,omitempty"`
}

type applyEffectDTO struct {
	Action  string `json:"action"`
	ShiftID string `json:"shiftId"`
	Detail  string `json:"detail,omitempty"`
}

type applyErrorDTO struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	ActionIndex   int    `json:"actionIndex"`
	ActionType    string `json:"actionType,omitempty"`
	ActionPreview string `json:"actionPreview,omitempty"`
}

func (d engineInputDTO) toModel() model.EngineInput {
	input := model.EngineInput{
		WeekDays: d.WeekDays,
		Settings: model.ScheduleSettings{
			DefaultClosingTime: d.Settings.DefaultClosingTime,
			ClosingTimeByDay:   d.Settings.ClosingTimeByDay,
			ClosingOffsetMins:  d.Settings.ClosingOffsetMins,
		},
		Ruleset: model.Ruleset{BucketMinutes: d.Ruleset.BucketMinutes},
	}
	for _, s := range d.Shifts {
		input.Shifts = append(input.Shifts, model.Shift(s))
	}
	for _, rule := range d.Ruleset.Coverage {
		input.Ruleset.Coverage = append(input.Ruleset.Coverage, model.MinCoverageByPositionRule{
			PositionID: rule.PositionID,
			DateKeys:   rule.DateKeys,
			StartTime:  rule.StartTime,
			EndTime:    rule.EndTime,
			MinCount:   rule.MinCount,
			Severity:   model.Severity(rule.Severity),
		})
	}
	if d.Ruleset.MinRestHours > 0 {
		input.Ruleset.Rest = &model.MinRestHoursBetweenShiftsRule{
			MinRestHours: d.Ruleset.MinRestHours,
			Severity:     model.SeverityHigh,
		}
	}
	if d.Ruleset.MaxHoursPerDay > 0 {
		input.Ruleset.DailyHours = &model.MaxHoursPerDayRule{
			MaxHoursPerDay: d.Ruleset.MaxHoursPerDay,
			Severity:       model.SeverityMedium,
		}
	}
	return input
}

func (d scenarioDTO) toModel() model.Scenario {
	sc := model.Scenario{
		ID:            d.ID,
		UnitID:        d.UnitID,
		WeekStartDate: d.WeekStartDate,
		Type:          model.ScenarioType(d.Type),
		DateKeys:      d.DateKeys,
		Payload: model.ScenarioPayload{
			UserID:      d.Payload.UserID,
			Timestamp:   d.Payload.Timestamp,
			Description: d.Payload.Description,
		},
	}
	if d.Payload.TimeRange != nil {
		sc.Payload.TimeRange = model.TimeRange{Start: d.Payload.TimeRange.Start, End: d.Payload.TimeRange.End}
	}
	for _, override := range d.Payload.Overrides {
		sc.Payload.Overrides = append(sc.Payload.Overrides, model.CoverageOverride(override))
	}
	for _, patch := range d.Payload.Patches {
		sc.Payload.Patches = append(sc.Payload.Patches, model.ShiftPatch(patch))
	}
	return sc
}

func scenarioToDTO(sc model.Scenario) scenarioDTO {
	dto := scenarioDTO{
		ID:            sc.ID,
		UnitID:        sc.UnitID,
		WeekStartDate: sc.WeekStartDate,
		Type:          string(sc.Type),
		DateKeys:      sc.DateKeys,
		Payload: scenarioPayloadDTO{
			UserID:      sc.Payload.UserID,
			Timestamp:   sc.Payload.Timestamp,
			Description: sc.Payload.Description,
		},
	}
	if sc.Payload.TimeRange != (model.TimeRange{}) {
		dto.Payload.TimeRange = &timeRangeDTO{Start: sc.Payload.TimeRange.Start, End: sc.Payload.TimeRange.End}
	}
	for _, override := range sc.Payload.Overrides {
		dto.Payload.Overrides = append(dto.Payload.Overrides, coverageOverride(override))
	}
	for _, patch := range sc.Payload.Patches {
		dto.Payload.Patches = append(dto.Payload.Patches, shiftPatchDTO(patch))
	}
	return dto
}

func (d suggestionDTO) toModel() model.Suggestion {
	suggestion := model.Suggestion{
		Type:           model.SuggestionType(d.Type),
		ExpectedImpact: d.ExpectedImpact,
		Explanation:    d.Explanation,
	}
	for _, action := range d.Actions {
		suggestion.Actions = append(suggestion.Actions, model.SuggestionAction{
			Type:       model.ActionType(action.Type),
			ShiftID:    action.ShiftID,
			UserID:     action.UserID,
			DateKey:    action.DateKey,
			StartTime:  action.StartTime,
			EndTime:    action.EndTime,
			PositionID: action.PositionID,
		})
	}
	return suggestion
}

func suggestionToDTO(id string, s model.Suggestion) suggestionDTO {
	dto := suggestionDTO{
		ID:             id,
		Type:           string(s.Type),
		ExpectedImpact: s.ExpectedImpact,
		Explanation:    s.Explanation,
	}
	for _, action := range s.Actions {
		dto.Actions = append(dto.Actions, suggestionActionDTO{
			Type:       string(action.Type),
			ShiftID:    action.ShiftID,
			UserID:     action.UserID,
			DateKey:    action.DateKey,
			StartTime:  action.StartTime,
			EndTime:    action.EndTime,
			PositionID: action.PositionID,
		})
	}
	return dto
}

func affectedToDTO(a model.Affected) affectedDTO {
	return affectedDTO{
		UserIDs:    a.UserIDs,
		ShiftIDs:   a.ShiftIDs,
		Slots:      a.Slots,
		PositionID: a.PositionID,
		DateKeys:   a.DateKeys,
	}
}

func violationsToDTO(violations []model.Violation) []violationDTO {
	out := make([]violationDTO, 0, len(violations))
	for _, v := range violations {
		out = append(out, violationDTO{
			ConstraintID: v.ConstraintID,
			Severity:     string(v.Severity),
			Message:      v.Message,
			Affected:     affectedToDTO(v.Affected),
		})
	}
	return out
}

func explanationsToDTO(explanations []model.Explanation) []explanationDTO {
	out := make([]explanationDTO, 0, len(explanations))
	for _, e := range explanations {
		out = append(out, explanationDTO{
			ID:                  e.ID,
			Kind:                string(e.Kind),
			Severity:            string(e.Severity),
			Title:               e.Title,
			Details:             e.Details,
			Affected:            affectedToDTO(e.Affected),
			RelatedConstraintID: e.RelatedConstraintID,
			RelatedSuggestionID: e.RelatedSuggestionID,
			Why:                 e.Why,
			WhyNow:              e.WhyNow,
			WhatIfAccepted:      e.WhatIfAccepted,
			Meta:                e.Meta,
		})
	}
	return out
}

func effectsToDTO(effects []scenario.Effect) []scenarioEffectDTO {
	out := make([]scenarioEffectDTO, 0, len(effects))
	for _, e := range effects {
		out = append(out, scenarioEffectDTO{
			ScenarioID:      e.ScenarioID,
			Type:            string(e.Type),
			RemovedShiftIDs: e.RemovedShiftIDs,
			InjectedRules:   e.InjectedRules,
			Note:            e.Note,
		})
	}
	return out
}

func evaluateResultToDTO(result *services.EvaluateResult) map[string]any {
	return map[string]any{
		"capacityMap":     result.Capacity,
		"violations":      violationsToDTO(result.Violations),
		"suggestions":     suggestionsToDTO(result.Suggestions),
		"scenarioEffects": effectsToDTO(result.ScenarioEffects),
	}
}

func suggestionsToDTO(suggestions []model.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionToDTO(assistant.SuggestionID(s), s))
	}
	return out
}

func applyResultToDTO(result *applier.Result) map[string]any {
	effects := make([]applyEffectDTO, 0, len(result.Effects))
	for _, effect := range result.Effects {
		effects = append(effects, applyEffectDTO{
			Action:  string(effect.Action),
			ShiftID: effect.ShiftID,
			Detail:  effect.Detail,
		})
	}
	errors := make([]applyErrorDTO, 0, len(result.Errors))
	for _, applyErr := range result.Errors {
		errors = append(errors, applyErrorDTO{
			Code:          applyErr.Code,
			Message:       applyErr.Message,
			ActionIndex:   applyErr.ActionIndex,
			ActionType:    string(applyErr.ActionType),
			ActionPreview: applyErr.ActionPreview,
		})
	}

	shifts := make([]shiftDTO, 0, len(result.NextSchedule.Shifts))
	for _, shift := range result.NextSchedule.Shifts {
		shifts = append(shifts, shiftDTO(shift))
	}

	return map[string]any{
		"status":            string(result.Status),
		"nextScheduleState": map[string]any{"shifts": shifts},
		"effects":           effects,
		"errors":            errors,
	}
}
