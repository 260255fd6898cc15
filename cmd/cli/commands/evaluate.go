package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/services"
)

// EvaluateCmd evaluates a weekly snapshot and prints violations and
// suggestions with their explanations.
func EvaluateCmd(app **App) *cobra.Command {
	var inputPath string
	var sessionID string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a weekly schedule snapshot against the configured rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			input, err := loadEngineInput(a, inputPath)
			if err != nil {
				return err
			}

			result, err := services.EvaluateWeek(a.Ctx, a.Database, input, a.Logger)
			if err != nil {
				return err
			}

			var session *model.AssistantSession
			if sessionID != "" {
				session, err = services.LoadSession(a.Ctx, a.Database, sessionID)
				if err != nil {
					return err
				}
			}

			response := services.BuildAssistantResponse(input, result, session, a.Logger)

			fmt.Printf("Violations: %d\n", len(result.Violations))
			for _, violation := range result.Violations {
				fmt.Printf("  [%s] %s: %s\n", violation.Severity, violation.ConstraintID, violation.Message)
			}

			fmt.Printf("Suggestions: %d\n", len(response.Suggestions))
			for _, suggestion := range response.Suggestions {
				fmt.Printf("  %s (%s)\n    %s\n", suggestion.ID, suggestion.Type, suggestion.Explanation)
			}

			for _, explanation := range response.Explanations {
				if explanation.WhyNow != "" {
					fmt.Printf("  %s: %s\n", explanation.ID, explanation.WhyNow)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to the weekly snapshot JSON file (required)")
	cmd.MarkFlagRequired("input")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Assistant session id for decision-aware explanations")

	return cmd
}
