package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// Frame is a small ordered collection of named float columns, used to
// describe prediction scenarios. Column names must match the predictor
// names a model was fitted with.
type Frame struct {
	names []string
	cols  map[string][]float64
	n     int
}

// NewFrame creates an empty frame whose columns will hold n rows.
func NewFrame(n int) *Frame {
	return &Frame{
		cols: make(map[string][]float64),
		n:    n,
	}
}

// AddColumn appends a named column. The column length must match the
// frame's row count and names must be unique.
func (f *Frame) AddColumn(name string, values []float64) error {
	if len(values) != f.n {
		return errors.NewDimensionError("Frame.AddColumn", f.n, len(values), 0)
	}
	if _, exists := f.cols[name]; exists {
		return errors.NewValueError("Frame.AddColumn", "duplicate column name: "+name)
	}

	f.names = append(f.names, name)
	f.cols[name] = values
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.n
}

// Names returns the column names in insertion order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Column returns the named column and whether it exists.
func (f *Frame) Column(name string) ([]float64, bool) {
	col, ok := f.cols[name]
	return col, ok
}

// Select assembles the named columns, in the given order, into an n×p
// design matrix. The caller is responsible for schema errors; Select
// only reports which name was missing.
func (f *Frame) Select(names []string) (*mat.Dense, string, bool) {
	X := mat.NewDense(f.n, len(names), nil)
	for j, name := range names {
		col, ok := f.cols[name]
		if !ok {
			return nil, name, false
		}
		for i := 0; i < f.n; i++ {
			X.Set(i, j, col[i])
		}
	}
	return X, "", true
}
