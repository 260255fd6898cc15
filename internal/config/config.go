package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/hostwell/shiftengine/pkg/core/model"
)

// CoverageTemplate is a standing coverage rule declared once and expanded
// to concrete date keys for each evaluated week. The rrule selects which
// days of the week the rule applies to.
type CoverageTemplate struct {
	PositionID string `yaml:"positionId" validate:"required"`
	RRule      string `yaml:"rrule" validate:"required"`
	StartTime  string `yaml:"startTime" validate:"required"`
	EndTime    string `yaml:"endTime" validate:"required"`
	MinCount   int    `yaml:"minCount" validate:"required,min=1"`
	Severity   string `yaml:"severity,omitempty" validate:"omitempty,oneof=low medium high"`
}

// ClosingConfig configures the closing-time fallback chain
type ClosingConfig struct {
	Default       string            `yaml:"default,omitempty"`
	ByDay         map[string]string `yaml:"byDay,omitempty"`
	OffsetMinutes int               `yaml:"offsetMinutes,omitempty" validate:"omitempty,min=0"`
}

// RulesConfig declares the venue's rule set
type RulesConfig struct {
	BucketMinutes  int                `yaml:"bucketMinutes" validate:"required,min=1"`
	Coverage       []CoverageTemplate `yaml:"coverage,omitempty" validate:"dive"`
	MinRestHours   float64            `yaml:"minRestHours,omitempty" validate:"omitempty,gt=0"`
	MaxHoursPerDay float64            `yaml:"maxHoursPerDay,omitempty" validate:"omitempty,gt=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string        `yaml:"databaseURL" validate:"required"`
	Closing     ClosingConfig `yaml:"closing,omitempty"`
	Rules       RulesConfig   `yaml:"rules" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from shiftengine_config.yaml,
// looking in the current directory first, then in the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, template := range cfg.Rules.Coverage {
		if _, err := rrule.StrToRRule(template.RRule); err != nil {
			return fmt.Errorf("invalid rrule in rules.coverage[%d]: %w", i, err)
		}
	}

	return nil
}

// Settings returns the schedule settings the config describes
func (c *Config) Settings() model.ScheduleSettings {
	return model.ScheduleSettings{
		DefaultClosingTime: c.Closing.Default,
		ClosingTimeByDay:   c.Closing.ByDay,
		ClosingOffsetMins:  c.Closing.OffsetMinutes,
	}
}

// Ruleset expands the configured rule templates into a concrete ruleset for
// the given week days. Coverage templates contribute a rule only for the
// week days their rrule matches.
func (c *Config) Ruleset(weekDays []string) (model.Ruleset, error) {
	ruleset := model.Ruleset{BucketMinutes: c.Rules.BucketMinutes}

	if c.Rules.MinRestHours > 0 {
		ruleset.Rest = &model.MinRestHoursBetweenShiftsRule{
			MinRestHours: c.Rules.MinRestHours,
			Severity:     model.SeverityHigh,
		}
	}
	if c.Rules.MaxHoursPerDay > 0 {
		ruleset.DailyHours = &model.MaxHoursPerDayRule{
			MaxHoursPerDay: c.Rules.MaxHoursPerDay,
			Severity:       model.SeverityMedium,
		}
	}

	if len(weekDays) == 0 {
		return ruleset, nil
	}

	first, err := time.ParseInLocation("2006-01-02", weekDays[0], time.UTC)
	if err != nil {
		return model.Ruleset{}, fmt.Errorf("invalid week day %q: %w", weekDays[0], err)
	}
	last, err := time.ParseInLocation("2006-01-02", weekDays[len(weekDays)-1], time.UTC)
	if err != nil {
		return model.Ruleset{}, fmt.Errorf("invalid week day %q: %w", weekDays[len(weekDays)-1], err)
	}

	for i, template := range c.Rules.Coverage {
		rule, err := rrule.StrToRRule(template.RRule)
		if err != nil {
			return model.Ruleset{}, fmt.Errorf("invalid rrule in rules.coverage[%d]: %w", i, err)
		}
		rule.DTStart(first)

		// Occurrences fall at midnight, so an inclusive range over the
		// first and last day keys covers the whole week exactly.
		var dateKeys []string
		for _, occurrence := range rule.Between(first, last, true) {
			dateKeys = append(dateKeys, occurrence.Format("2006-01-02"))
		}
		if len(dateKeys) == 0 {
			continue
		}

		ruleset.Coverage = append(ruleset.Coverage, model.MinCoverageByPositionRule{
			PositionID: template.PositionID,
			DateKeys:   dateKeys,
			StartTime:  template.StartTime,
			EndTime:    template.EndTime,
			MinCount:   template.MinCount,
			Severity:   model.Severity(template.Severity),
		})
	}

	return ruleset, nil
}

func findConfigFile() (string, error) {
	const configName = "shiftengine_config.yaml"

	if _, err := os.Stat(configName); err == nil {
		return configName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	homePath := filepath.Join(home, configName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current or home directory", configName)
}
