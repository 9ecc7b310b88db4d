package errors

import (
	"math"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "invalid parameter",
			err:  NewInvalidParameterError("noise_sd", "standard deviation must be non-negative", -7.0),
			want: []string{"noise_sd", "non-negative", "-7"},
		},
		{
			name: "degenerate model",
			err:  NewDegenerateModelError("OLS.Fit", 2, 2, "insufficient degrees of freedom"),
			want: []string{"OLS.Fit", "degenerate", "n=2", "p=2"},
		},
		{
			name: "schema mismatch",
			err:  NewSchemaMismatchError("OLS.PredictFrame", "coupon", []string{"coupon"}),
			want: []string{"coupon", "no column"},
		},
		{
			name: "not fitted",
			err:  NewNotFittedError("OLS", "Predict"),
			want: []string{"OLS", "not fitted", "Predict"},
		},
		{
			name: "dimension",
			err:  NewDimensionError("OLS.Fit", 5, 3, 0),
			want: []string{"rows", "Expected 5", "got 3"},
		},
		{
			name: "trial",
			err:  NewTrialError(7, New("boom")),
			want: []string{"trial 7", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("message %q does not contain %q", msg, want)
				}
			}
		})
	}
}

func TestAsUnwrapsStackedErrors(t *testing.T) {
	err := NewDegenerateModelError("OLS.Fit", 3, 5, "insufficient degrees of freedom")

	var degErr *DegenerateModelError
	if !As(err, &degErr) {
		t.Fatal("As failed to find DegenerateModelError through the stack wrapper")
	}
	if degErr.NSamples != 3 || degErr.NCoefficients != 5 {
		t.Errorf("unwrapped error lost fields: %+v", degErr)
	}
}

func TestTrialErrorUnwrap(t *testing.T) {
	cause := NewSchemaMismatchError("OLS.PredictFrame", "discount", []string{"coupon"})
	err := NewTrialError(3, cause)

	var schemaErr *SchemaMismatchError
	if !As(err, &schemaErr) {
		t.Fatal("TrialError does not expose its cause")
	}
	if schemaErr.Missing != "discount" {
		t.Errorf("Missing = %q, want discount", schemaErr.Missing)
	}
}

func TestCheckFinite(t *testing.T) {
	if err := CheckFinite("fit", 1.0, -2.5, 0.0); err != nil {
		t.Errorf("CheckFinite on finite values returned %v", err)
	}

	if err := CheckFinite("fit", 1.0, math.NaN()); err == nil {
		t.Error("CheckFinite missed a NaN")
	}
	if err := CheckFinite("fit", math.Inf(1)); err == nil {
		t.Error("CheckFinite missed an Inf")
	}

	var numErr *NumericalInstabilityError
	err := CheckFinite("fit", math.NaN())
	if !As(err, &numErr) {
		t.Fatalf("expected NumericalInstabilityError, got %T", err)
	}
	if numErr.Operation != "fit" {
		t.Errorf("Operation = %q, want fit", numErr.Operation)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	warning := NewTrialError(1, New("degenerate"))
	Warn(warning)

	if captured == nil || !Is(captured, warning) {
		t.Errorf("warning handler captured %v, want %v", captured, warning)
	}
}

func TestZerologWarnFuncTakesPriority(t *testing.T) {
	var viaHandler, viaZerolog error
	SetWarningHandler(func(w error) { viaHandler = w })
	SetZerologWarnFunc(func(w error) { viaZerolog = w })
	defer func() {
		SetWarningHandler(nil)
		SetZerologWarnFunc(nil)
	}()

	warning := New("structured warning")
	Warn(warning)

	if viaZerolog == nil {
		t.Error("zerolog warn func not called")
	}
	if viaHandler != nil {
		t.Error("plain handler called even though zerolog func is set")
	}
}
