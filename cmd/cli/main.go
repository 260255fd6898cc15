package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hostwell/shiftengine/cmd/cli/commands"
	"github.com/hostwell/shiftengine/internal/config"
	"github.com/hostwell/shiftengine/pkg/postgres"
	"github.com/hostwell/shiftengine/pkg/utils/logging"
)

var (
	env string
	app *commands.App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftengine",
		Short: "Shift scheduling assistant engine CLI",
		Long:  `A CLI for evaluating weekly schedules against coverage and working-time rules, managing what-if scenarios, and applying assistant suggestions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.EvaluateCmd(&app))
	rootCmd.AddCommand(commands.ApplySuggestionCmd(&app))
	rootCmd.AddCommand(commands.AddScenarioCmd(&app))
	rootCmd.AddCommand(commands.ListScenariosCmd(&app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initApp() error {
	logger, err := logging.New(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(ctx); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("Initialized application", zap.String("env", env))

	app = &commands.App{
		Cfg:      cfg,
		Database: database,
		Logger:   logger,
		Ctx:      ctx,
		Env:      env,
	}
	return nil
}
