package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/services"
)

type scenarioFile struct {
	UnitID        string   `json:"unitId,omitempty"`
	WeekStartDate string   `json:"weekStartDate"`
	Type          string   `json:"type"`
	DateKeys      []string `json:"dateKeys,omitempty"`
	Payload       struct {
		UserID    string `json:"userId,omitempty"`
		TimeRange *struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"timeRange,omitempty"`
		Overrides []struct {
			PositionID string `json:"positionId"`
			MinCount   int    `json:"minCount"`
		} `json:"minCoverageOverrides,omitempty"`
		Timestamp   string `json:"timestamp,omitempty"`
		Description string `json:"description,omitempty"`
	} `json:"payload"`
}

// AddScenarioCmd stores a what-if scenario from a JSON file
func AddScenarioCmd(app **App) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "add-scenario",
		Short: "Store a what-if scenario for a unit and week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read scenario %s: %w", filePath, err)
			}
			var file scenarioFile
			if err := json.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse scenario %s: %w", filePath, err)
			}

			sc := model.Scenario{
				UnitID:        file.UnitID,
				WeekStartDate: file.WeekStartDate,
				Type:          model.ScenarioType(file.Type),
				DateKeys:      file.DateKeys,
				Payload: model.ScenarioPayload{
					UserID:      file.Payload.UserID,
					Timestamp:   file.Payload.Timestamp,
					Description: file.Payload.Description,
				},
			}
			if file.Payload.TimeRange != nil {
				sc.Payload.TimeRange = model.TimeRange{
					Start: file.Payload.TimeRange.Start,
					End:   file.Payload.TimeRange.End,
				}
			}
			for _, override := range file.Payload.Overrides {
				sc.Payload.Overrides = append(sc.Payload.Overrides, model.CoverageOverride{
					PositionID: override.PositionID,
					MinCount:   override.MinCount,
				})
			}

			stored, err := services.AddScenario(a.Ctx, a.Database, sc, a.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("Stored scenario %s (%s) for week %s\n", stored.ID, stored.Type, stored.WeekStartDate)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to the scenario JSON file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

// ListScenariosCmd lists the stored scenarios for a unit and week
func ListScenariosCmd(app **App) *cobra.Command {
	var unitID string
	var weekStart string

	cmd := &cobra.Command{
		Use:   "list-scenarios",
		Short: "List the stored scenarios for a unit and week",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *app

			scenarios, err := services.ListScenarios(a.Ctx, a.Database, unitID, weekStart)
			if err != nil {
				return err
			}

			if len(scenarios) == 0 {
				fmt.Println("No scenarios stored for this week")
				return nil
			}
			for _, sc := range scenarios {
				fmt.Printf("%s  %-12s  days=%v\n", sc.ID, sc.Type, sc.DateKeys)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&unitID, "unit", "u", "", "Unit identifier")
	cmd.Flags().StringVarP(&weekStart, "week", "w", "", "Week start date YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("week")

	return cmd
}
