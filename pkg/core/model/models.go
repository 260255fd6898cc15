package model

// Severity classifies how serious a constraint violation is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) IsValid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Shift represents one rostered shift inside an engine input snapshot.
// Optional fields use the empty string when absent.
type Shift struct {
	ID         string
	UserID     string
	UnitID     string // Empty string if not unit-scoped
	DateKey    string // YYYY-MM-DD
	StartTime  string // HH:MM, empty if unknown
	EndTime    string // HH:MM, empty means "until closing"
	PositionID string // Empty string if unassigned
	IsDayOff   bool
}

// ScheduleSettings carries the venue's closing-time configuration, used to
// infer an implicit shift end when EndTime is absent.
type ScheduleSettings struct {
	DefaultClosingTime string            // HH:MM
	ClosingTimeByDay   map[string]string // weekday name (Monday..Sunday) -> HH:MM
	ClosingOffsetMins  int               // minutes worked past closing
}

// MinCoverageByPositionRule requires a minimum headcount for one position
// across a time range on the listed dates.
type MinCoverageByPositionRule struct {
	PositionID string
	DateKeys   []string
	StartTime  string // HH:MM
	EndTime    string // HH:MM, numerically <= StartTime means the range crosses midnight
	MinCount   int
	Severity   Severity // Empty defaults to high
}

// MinRestHoursBetweenShiftsRule requires a minimum gap between any two
// consecutive shifts of the same user.
type MinRestHoursBetweenShiftsRule struct {
	MinRestHours float64
	Severity     Severity
}

// MaxHoursPerDayRule caps the hours one user may work on a single calendar day.
type MaxHoursPerDayRule struct {
	MaxHoursPerDay float64
	Severity       Severity
}

// Ruleset is the rule configuration for one evaluation pass. The rest and
// daily-hours rules are optional; an absent rule never produces violations.
type Ruleset struct {
	BucketMinutes int
	Coverage      []MinCoverageByPositionRule
	Rest          *MinRestHoursBetweenShiftsRule
	DailyHours    *MaxHoursPerDayRule
}

// EngineInput is the immutable snapshot evaluated in one pass
type EngineInput struct {
	WeekDays []string // Ordered date keys
	Shifts   []Shift
	Settings ScheduleSettings
	Ruleset  Ruleset
}

// PositionCounts maps a position id to assigned headcount within one slot
type PositionCounts map[string]int

// CapacityMap maps a date-qualified slot key ("2025-01-06T08:00") to the
// headcount per position inside that bucket. Built fresh per evaluation.
type CapacityMap map[string]PositionCounts

// Affected identifies the entities a violation or explanation touches
type Affected struct {
	UserIDs    []string
	ShiftIDs   []string
	Slots      []string
	PositionID string // Empty if not position-scoped
	DateKeys   []string
}

// Violation records one detected breach of a scheduling rule
type Violation struct {
	ConstraintID string
	Severity     Severity
	Message      string
	Affected     Affected
}

// Constraint identifiers emitted by the evaluators
const (
	ConstraintMinCoverageByPosition = "MIN_COVERAGE_BY_POSITION"
	ConstraintMinRestHours          = "MIN_REST_HOURS_BETWEEN_SHIFTS"
	ConstraintMaxHoursPerDay        = "MAX_HOURS_PER_DAY"
)
