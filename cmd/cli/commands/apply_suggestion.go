package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hostwell/shiftengine/pkg/core/applier"
	"github.com/hostwell/shiftengine/pkg/core/assistant"
	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/services"
)

type suggestionFile struct {
	Type           string `json:"type"`
	ExpectedImpact string `json:"expectedImpact,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
	Actions        []struct {
		Type       string `json:"type"`
		ShiftID    string `json:"shiftId,omitempty"`
		UserID     string `json:"userId"`
		DateKey    string `json:"dateKey"`
		StartTime  string `json:"startTime"`
		EndTime    string `json:"endTime"`
		PositionID string `json:"positionId,omitempty"`
	} `json:"actions"`
}

// ApplySuggestionCmd applies a suggestion file to a draft snapshot and
// prints the committed effects or the failure.
func ApplySuggestionCmd(app **App) *cobra.Command {
	var inputPath string
	var suggestionPath string
	var draftID string

	cmd := &cobra.Command{
		Use:   "apply-suggestion",
		Short: "Apply a suggestion to a draft schedule, atomically and idempotently",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			input, err := loadEngineInput(a, inputPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(suggestionPath)
			if err != nil {
				return fmt.Errorf("failed to read suggestion %s: %w", suggestionPath, err)
			}
			var file suggestionFile
			if err := json.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse suggestion %s: %w", suggestionPath, err)
			}

			suggestion := model.Suggestion{
				Type:           model.SuggestionType(file.Type),
				ExpectedImpact: file.ExpectedImpact,
				Explanation:    file.Explanation,
			}
			for _, action := range file.Actions {
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

			mode := applier.ModeProduction
			if a.Env != "prod" {
				mode = applier.ModeDevelopment
			}

			suggestionID := assistant.SuggestionID(suggestion)
			schedule := model.ScheduleState{Shifts: input.Shifts}

			result, err := services.ApplySuggestion(a.Ctx, a.Database, draftID, suggestionID, suggestion, schedule, mode, a.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("Status: %s\n", result.Status)
			for _, effect := range result.Effects {
				fmt.Printf("  %s %s: %s\n", effect.Action, effect.ShiftID, effect.Detail)
			}
			for _, applyErr := range result.Errors {
				fmt.Printf("  error %s: %s\n", applyErr.Code, applyErr.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the weekly snapshot JSON file (required)")
	cmd.MarkFlagRequired("input")
	cmd.Flags().StringVarP(&suggestionPath, "suggestion", "f", "", "Path to the suggestion JSON file (required)")
	cmd.MarkFlagRequired("suggestion")
	cmd.Flags().StringVarP(&draftID, "draft", "d", "", "Draft schedule identifier (required)")
	cmd.MarkFlagRequired("draft")

	return cmd
}
