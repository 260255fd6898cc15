// Package constraint holds the rule evaluators. Each evaluator is pure and
// independent: it reads its own rule out of the input ruleset, never mutates
// shared state, and returns an empty slice when its rule is absent. Malformed
// rule data is skipped, never raised — partial scheduling data is the normal
// case.
package constraint

import "github.com/hostwell/shiftengine/pkg/core/model"

// Evaluator checks one rule family against an input snapshot
type Evaluator interface {
	Name() string
	Evaluate(input model.EngineInput, capacity model.CapacityMap) []model.Violation
}

// DefaultEvaluators returns the full evaluator set in its canonical order
func DefaultEvaluators() []Evaluator {
	return []Evaluator{
		NewCoverageEvaluator(),
		NewRestHoursEvaluator(),
		NewDailyHoursEvaluator(),
	}
}

// EvaluateAll runs every evaluator against the input and concatenates the
// violations in evaluator order.
func EvaluateAll(input model.EngineInput, capacity model.CapacityMap, evaluators []Evaluator) []model.Violation {
	var violations []model.Violation
	for _, evaluator := range evaluators {
		violations = append(violations, evaluator.Evaluate(input, capacity)...)
	}
	return violations
}

// severityOrDefault fills the high default the rules leave implicit
func severityOrDefault(s model.Severity) model.Severity {
	if !s.IsValid() {
		return model.SeverityHigh
	}
	return s
}
