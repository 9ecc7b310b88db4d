// Package errors provides structured error handling for the whole module.
// Error types carry enough context for callers to branch on them with
// errors.As and for zerolog to emit them as structured events.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("regsim-warning: %v\n", w)
	}
	// zerolog sink, wired lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the module-wide warning handler. Warnings are
// non-fatal conditions such as a skipped simulation trial.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc routes warnings through a zerolog logger.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn raises a warning. Structured output via zerolog is preferred when
// configured, falling back to the plain handler otherwise.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// InvalidParameterError reports a distribution or configuration parameter
// that fails validation at a constructor boundary, before any simulation
// work is done.
type InvalidParameterError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("regsim: invalid parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured parameter context to a zerolog event.
func (e *InvalidParameterError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "InvalidParameterError")
}

// NewInvalidParameterError creates a new InvalidParameterError with a stack trace.
func NewInvalidParameterError(param, reason string, value interface{}) error {
	err := &InvalidParameterError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DegenerateModelError reports a regression fit that cannot produce a
// defined result: too few observations for the number of coefficients, or
// perfectly collinear predictors.
type DegenerateModelError struct {
	Op            string
	NSamples      int
	NCoefficients int
	Kind          string // "insufficient degrees of freedom" or "collinear predictors"
}

func (e *DegenerateModelError) Error() string {
	return fmt.Sprintf("regsim: %s: degenerate model (%s): n=%d, p=%d", e.Op, e.Kind, e.NSamples, e.NCoefficients)
}

// MarshalZerologObject adds the structured fit context to a zerolog event.
func (e *DegenerateModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("n_samples", e.NSamples).
		Int("n_coefficients", e.NCoefficients).
		Str("kind", e.Kind).
		Str("type", "DegenerateModelError")
}

// NewDegenerateModelError creates a new DegenerateModelError with a stack trace.
func NewDegenerateModelError(op string, nSamples, nCoefficients int, kind string) error {
	err := &DegenerateModelError{Op: op, NSamples: nSamples, NCoefficients: nCoefficients, Kind: kind}
	return errors.WithStack(err)
}

// SchemaMismatchError reports prediction input whose column names do not
// match the predictors the model was fitted with. Missing names the first
// absent predictor so the caller can report it.
type SchemaMismatchError struct {
	Op      string
	Missing string
	Known   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("regsim: %s: prediction data has no column '%s' (fitted predictors: %v)", e.Op, e.Missing, e.Known)
}

// MarshalZerologObject adds the structured schema context to a zerolog event.
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("missing_column", e.Missing).
		Strs("fitted_predictors", e.Known).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError creates a new SchemaMismatchError with a stack trace.
func NewSchemaMismatchError(op, missing string, known []string) error {
	err := &SchemaMismatchError{Op: op, Missing: missing, Known: known}
	return errors.WithStack(err)
}

// NotFittedError reports Predict or Score being called on a model before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("regsim: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured model context to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports input whose dimensions differ from what an
// operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("regsim: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured dimension context to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for an operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("regsim: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// TrialError wraps an error that aborted a single simulation trial,
// keeping the trial index for reporting.
type TrialError struct {
	Trial int
	Err   error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("regsim: trial %d failed: %v", e.Trial, e.Err)
}

func (e *TrialError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured trial context to a zerolog event.
func (e *TrialError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("trial", e.Trial).
		AnErr("cause", e.Err).
		Str("type", "TrialError")
}

// NewTrialError creates a new TrialError with a stack trace.
func NewTrialError(trial int, err error) error {
	trialErr := &TrialError{Trial: trial, Err: err}
	return errors.WithStack(trialErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Shared error variables
//
// ===========================================================================

var (
	// ErrEmptyData signals that an empty dataset was passed in.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix signals a singular normal-equations matrix.
	ErrSingularMatrix = New("singular matrix")
)
