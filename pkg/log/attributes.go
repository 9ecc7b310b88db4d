// Package log defines standard attribute keys for simulation operations.
//
// Using these keys consistently keeps run logs filterable: every trial,
// fit, and coverage event tags the same fields the same way.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "OLS".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "generate", "coverage"
	OperationKey = "sim.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "dataset", "linear", "simulate"
	ComponentKey = "sim.component"
)

// Simulation context.
const (
	// TrialKey is the zero-based index of the current simulation trial.
	TrialKey = "sim.trial"

	// TrialsKey is the total number of trials in a run.
	TrialsKey = "sim.trials"

	// SeedKey is the run's random seed (0 means fresh entropy).
	SeedKey = "sim.seed"

	// CoefficientKey names the coefficient an event refers to,
	// e.g. "(intercept)" or a predictor name.
	CoefficientKey = "sim.coefficient"

	// CoverageKey is an empirical coverage rate in [0, 1].
	CoverageKey = "sim.coverage"

	// LevelKey is the nominal confidence level of the intervals.
	LevelKey = "sim.level"
)

// Data shape.
const (
	// SamplesKey is the number of observations per trial dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of predictors in the design.
	FeaturesKey = "data.features"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey is the number of parallel workers used by a run.
	WorkersKey = "perf.workers"
)
