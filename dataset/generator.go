// Package dataset generates the synthetic observations the simulation
// loop feeds into regression fits.
//
// A Generator draws covariates from a configured law (uniform by default,
// binary treatment indicator as a variant) and responses from a known
// linear truth plus Gaussian noise. Randomness always flows through an
// explicit source so trials can own independent, reproducible streams.
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// Generator draws datasets around the linear truth
// y = intercept + slope*x + eps, eps ~ N(0, noiseSD).
type Generator struct {
	intercept float64
	slope     float64
	noiseSD   float64

	// Covariate law. Uniform on [xMin, xMax] unless binary is set,
	// in which case x is a Bernoulli(pSuccess) treatment indicator
	// with the control group coded 0.
	xMin     float64
	xMax     float64
	binary   bool
	pSuccess float64
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithUniformX draws covariates uniformly from [min, max].
func WithUniformX(min, max float64) GeneratorOption {
	return func(g *Generator) {
		g.binary = false
		g.xMin = min
		g.xMax = max
	}
}

// WithBinaryX draws covariates as a 0/1 treatment indicator with the
// given success probability. The level coded 0 is the baseline.
func WithBinaryX(p float64) GeneratorOption {
	return func(g *Generator) {
		g.binary = true
		g.pSuccess = p
	}
}

// NewGenerator creates a Generator for the given truth. Distribution
// parameters are validated here so an invalid configuration fails before
// any simulation work is done.
func NewGenerator(intercept, slope, noiseSD float64, opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		intercept: intercept,
		slope:     slope,
		noiseSD:   noiseSD,
		xMin:      0,
		xMax:      7,
	}

	for _, opt := range opts {
		opt(g)
	}

	if noiseSD < 0 {
		return nil, errors.NewInvalidParameterError("noise_sd", "standard deviation must be non-negative", noiseSD)
	}
	if g.binary {
		if g.pSuccess < 0 || g.pSuccess > 1 {
			return nil, errors.NewInvalidParameterError("p_success", "probability must be in [0, 1]", g.pSuccess)
		}
	} else if g.xMin >= g.xMax {
		return nil, errors.NewInvalidParameterError("x_bounds", "lower bound must be below upper bound", [2]float64{g.xMin, g.xMax})
	}

	return g, nil
}

// Intercept returns the true intercept of the generating process.
func (g *Generator) Intercept() float64 { return g.intercept }

// Slope returns the true slope of the generating process.
func (g *Generator) Slope() float64 { return g.slope }

// Generate draws n independent observations using the given random
// source. The generator itself is stateless, so concurrent calls with
// distinct sources are safe.
func (g *Generator) Generate(n int, src rand.Source) (*Dataset, error) {
	if n <= 0 {
		return nil, errors.NewInvalidParameterError("n", "sample size must be positive", n)
	}

	noise := distuv.Normal{Mu: 0, Sigma: g.noiseSD, Src: src}

	xs := make([]float64, n)
	ys := make([]float64, n)

	if g.binary {
		coin := distuv.Bernoulli{P: g.pSuccess, Src: src}
		for i := 0; i < n; i++ {
			xs[i] = coin.Rand()
		}
	} else {
		uni := distuv.Uniform{Min: g.xMin, Max: g.xMax, Src: src}
		for i := 0; i < n; i++ {
			xs[i] = uni.Rand()
		}
	}

	for i := 0; i < n; i++ {
		ys[i] = g.intercept + g.slope*xs[i] + noise.Rand()
	}

	return &Dataset{X: xs, Y: ys}, nil
}

// Dataset is one trial's ordered (x, y) observations.
type Dataset struct {
	X []float64
	Y []float64
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Matrices returns the observations as gonum matrices: X as an n×1
// design matrix and y as an n×1 column, the shapes linear.OLS consumes.
func (d *Dataset) Matrices() (*mat.Dense, *mat.Dense) {
	n := len(d.X)
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, d.X[i])
		y.Set(i, 0, d.Y[i])
	}
	return X, y
}
