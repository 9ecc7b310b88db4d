// Package simulate runs the repeated-trial coverage experiment: generate
// a fresh dataset around a known linear truth, fit an OLS regression,
// record every coefficient's estimate and confidence interval, and
// evaluate how often the intervals cover the truth.
package simulate

import (
	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// Default values applied by Config.withDefaults.
const (
	DefaultLevel     = 0.95
	DefaultXMax      = 7.0
	DefaultSlopeName = "x"
)

// Config holds the fixed parameters of one simulation run. All fields
// are plain scalars; the zero value of an optional field selects its
// default.
type Config struct {
	// True generating parameters.
	Intercept float64
	Slope     float64
	NoiseSD   float64

	// SampleSize is the number of observations per trial.
	SampleSize int
	// Trials is the number of independent datasets to simulate.
	Trials int

	// Seed drives all randomness. 0 means fresh entropy; any other
	// value makes the entire run deterministic.
	Seed uint64

	// Level is the confidence level for coefficient intervals
	// (default 0.95).
	Level float64

	// Covariate law: uniform on [XMin, XMax] (default [0, 7]), or a
	// Bernoulli treatment indicator with probability PSuccess when
	// BinaryX is set.
	XMin     float64
	XMax     float64
	BinaryX  bool
	PSuccess float64

	// SlopeName names the single predictor (default "x").
	SlopeName string

	// ContinueOnError makes a failed trial non-fatal: the failure is
	// logged, its index recorded, and remaining trials proceed.
	ContinueOnError bool

	// Workers controls trial parallelism: 0 runs sequentially,
	// a negative value uses one worker per CPU core, a positive value
	// uses exactly that many workers. Results are identical for any
	// setting under a nonzero seed.
	Workers int
}

// withDefaults returns a copy with zero-valued optional fields filled in.
func (c Config) withDefaults() Config {
	if c.Level == 0 {
		c.Level = DefaultLevel
	}
	if c.SlopeName == "" {
		c.SlopeName = DefaultSlopeName
	}
	if !c.BinaryX && c.XMin == 0 && c.XMax == 0 {
		c.XMax = DefaultXMax
	}
	return c
}

// validate rejects configurations the run could never complete with.
// Generator parameters (noise SD, covariate bounds, probability) are
// validated by dataset.NewGenerator.
func (c Config) validate() error {
	if c.Trials < 1 {
		return errors.NewInvalidParameterError("trials", "must run at least one trial", c.Trials)
	}
	if c.SampleSize < 1 {
		return errors.NewInvalidParameterError("sample_size", "must be positive", c.SampleSize)
	}
	if c.Level <= 0 || c.Level >= 1 {
		return errors.NewInvalidParameterError("level", "must be strictly between 0 and 1", c.Level)
	}
	return nil
}
