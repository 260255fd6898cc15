package model

// ScenarioType tags the payload variant carried by a scenario
type ScenarioType string

const (
	ScenarioSickness   ScenarioType = "SICKNESS"
	ScenarioEvent      ScenarioType = "EVENT"
	ScenarioPeak       ScenarioType = "PEAK"
	ScenarioLastMinute ScenarioType = "LAST_MINUTE"
)

func (t ScenarioType) IsValid() bool {
	switch t {
	case ScenarioSickness, ScenarioEvent, ScenarioPeak, ScenarioLastMinute:
		return true
	}
	return false
}

// CoverageOverride raises the minimum headcount for one position while an
// event or peak scenario is in effect.
type CoverageOverride struct {
	PositionID string
	MinCount   int
}

// TimeRange is an HH:MM interval; End <= Start means it crosses midnight
type TimeRange struct {
	Start string
	End   string
}

// ScenarioPayload is the tagged-union body of a scenario. Which fields are
// meaningful depends on the scenario type; the rest stay zero.
type ScenarioPayload struct {
	// SICKNESS
	UserID string

	// EVENT / PEAK
	TimeRange TimeRange
	Overrides []CoverageOverride

	// LAST_MINUTE (stored only, never applied by the engine)
	Timestamp   string
	Description string
	Patches     []ShiftPatch
}

// ShiftPatch is a recorded last-minute change. The engine stores and returns
// patches but does not apply them to evaluation input.
type ShiftPatch struct {
	ShiftID    string
	UserID     string
	DateKey    string
	StartTime  string
	EndTime    string
	PositionID string
}

// Scenario is a temporary what-if modification applied to engine input
// before evaluation. Scenarios never touch persisted schedule data.
type Scenario struct {
	ID            string
	UnitID        string
	WeekStartDate string // YYYY-MM-DD
	Type          ScenarioType
	Payload       ScenarioPayload
	DateKeys      []string
}
