package linear

// Option is a function that configures an OLS estimator.
type Option func(*OLS)

// WithConfidenceLevel sets the two-sided confidence level used for
// coefficient intervals (default 0.95).
func WithConfidenceLevel(level float64) Option {
	return func(m *OLS) {
		m.level = level
	}
}

// WithPredictorNames names the design-matrix columns. Named predictors
// enable frame-based prediction with schema checking; unnamed columns
// default to x1, x2, ...
func WithPredictorNames(names ...string) Option {
	return func(m *OLS) {
		m.names = append([]string(nil), names...)
	}
}
