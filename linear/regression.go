// Package linear implements ordinary-least-squares regression with the
// inferential output the coverage experiment needs: per-coefficient
// standard errors and t-distribution confidence intervals, R², and
// prediction with schema-checked scenario input.
package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/regsim/core/model"
	"github.com/YuminosukeSato/regsim/core/parallel"
	"github.com/YuminosukeSato/regsim/dataset"
	"github.com/YuminosukeSato/regsim/metrics"
	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// InterceptName is the coefficient name reserved for the intercept.
const InterceptName = "(intercept)"

// Coefficient holds the inferential summary for one estimated
// coefficient: point estimate, standard error, and a two-sided
// confidence interval at the model's confidence level.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	Low      float64
	High     float64
}

// Prediction is a predicted outcome with an interval. For prediction
// intervals the bounds account for residual noise on top of estimation
// uncertainty, so they are wider than a confidence interval at the same
// level.
type Prediction struct {
	Value float64
	Low   float64
	High  float64
}

// OLS is an ordinary-least-squares regression estimator solved via the
// normal equations.
type OLS struct {
	model.BaseEstimator

	names []string
	level float64

	coeffs    []Coefficient
	r2        float64
	sigma2    float64 // residual variance s²
	df        int     // residual degrees of freedom n - p
	nFeatures int
	xtxInv    *mat.Dense // (XᵀX)⁻¹ including the intercept column
}

// NewOLS creates an OLS estimator. The default confidence level is 0.95.
func NewOLS(opts ...Option) *OLS {
	m := &OLS{level: 0.95}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit estimates intercept and one coefficient per design column by
// minimizing the sum of squared residuals.
//
// Fails with DegenerateModelError when n <= p (insufficient degrees of
// freedom) or when predictors are perfectly collinear. Never returns
// NaN-poisoned coefficients: estimates are checked before the model is
// marked fitted.
func (m *OLS) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OLS.Fit")
	}
	if ry != r {
		return errors.NewDimensionError("OLS.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("OLS.Fit", "y must be a column vector")
	}
	if m.level <= 0 || m.level >= 1 {
		return errors.NewInvalidParameterError("confidence_level", "must be strictly between 0 and 1", m.level)
	}

	if len(m.names) == 0 {
		m.names = defaultNames(c)
	}
	if len(m.names) != c {
		return errors.NewDimensionError("OLS.Fit", len(m.names), c, 1)
	}

	p := c + 1 // estimated coefficients including the intercept
	if r <= p {
		return errors.NewDegenerateModelError("OLS.Fit", r, p, "insufficient degrees of freedom")
	}

	// Design matrix with a leading column of ones for the intercept.
	XWithIntercept := mat.NewDense(r, p, nil)

	const parallelThreshold = 1000

	parallel.RunWithThreshold(r, parallelThreshold, 0, func(start, end int) {
		for i := start; i < end; i++ {
			XWithIntercept.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				XWithIntercept.Set(i, j+1, X.At(i, j))
			}
		}
	})

	// Normal equations: beta = (XᵀX)⁻¹ Xᵀ y.
	var XT mat.Dense
	XT.CloneFrom(XWithIntercept.T())

	var XTX mat.Dense
	XTX.Mul(&XT, XWithIntercept)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewDegenerateModelError("OLS.Fit", r, p, "collinear predictors")
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, yVec)

	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&XTXInv, &XTy)

	estimates := make([]float64, p)
	for j := 0; j < p; j++ {
		estimates[j] = beta.AtVec(j)
	}
	if err := errors.CheckFinite("OLS.Fit", estimates...); err != nil {
		return err
	}

	// Residual variance and goodness of fit.
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += yVec.AtVec(i)
	}
	yMean /= float64(r)

	var rss, tss float64
	for i := 0; i < r; i++ {
		fitted := estimates[0]
		for j := 0; j < c; j++ {
			fitted += X.At(i, j) * estimates[j+1]
		}
		resid := yVec.AtVec(i) - fitted
		rss += resid * resid

		dev := yVec.AtVec(i) - yMean
		tss += dev * dev
	}

	df := r - p
	sigma2 := rss / float64(df)

	tCrit := studentTQuantile(m.level, df)

	coeffs := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * XTXInv.At(j, j))
		name := InterceptName
		if j > 0 {
			name = m.names[j-1]
		}
		coeffs[j] = Coefficient{
			Name:     name,
			Estimate: estimates[j],
			StdErr:   se,
			Low:      estimates[j] - tCrit*se,
			High:     estimates[j] + tCrit*se,
		}
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	m.coeffs = coeffs
	m.r2 = r2
	m.sigma2 = sigma2
	m.df = df
	m.nFeatures = c
	m.xtxInv = &XTXInv
	m.SetFitted()

	return nil
}

// Coefficients returns the fitted coefficient table, intercept first.
func (m *OLS) Coefficients() ([]Coefficient, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Coefficients")
	}
	out := make([]Coefficient, len(m.coeffs))
	copy(out, m.coeffs)
	return out, nil
}

// Coefficient returns the fitted coefficient with the given name.
func (m *OLS) Coefficient(name string) (Coefficient, error) {
	if !m.IsFitted() {
		return Coefficient{}, errors.NewNotFittedError("OLS", "Coefficient")
	}
	for _, coef := range m.coeffs {
		if coef.Name == name {
			return coef, nil
		}
	}
	return Coefficient{}, errors.NewValueError("OLS.Coefficient", "no coefficient named "+name)
}

// RSquared returns the coefficient of determination of the fit: the
// fraction of outcome variance explained by the model.
func (m *OLS) RSquared() (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "RSquared")
	}
	return m.r2, nil
}

// ConfidenceLevel returns the level the coefficient intervals were
// computed at.
func (m *OLS) ConfidenceLevel() float64 {
	return m.level
}

// DegreesOfFreedom returns the residual degrees of freedom n - p.
func (m *OLS) DegreesOfFreedom() (int, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "DegreesOfFreedom")
	}
	return m.df, nil
}

// PredictorNames returns the design-column names used during fitting,
// intercept excluded.
func (m *OLS) PredictorNames() []string {
	return append([]string(nil), m.names...)
}

// Predict computes predicted outcomes for an r×p design matrix with the
// same columns as the fitting design.
func (m *OLS) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Predict")
	}

	r, c := X.Dims()
	if c != m.nFeatures {
		return nil, errors.NewDimensionError("OLS.Predict", m.nFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := m.coeffs[0].Estimate
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * m.coeffs[j+1].Estimate
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// PredictFrame computes predicted outcomes for named covariate
// scenarios. Every predictor used during fitting must be present as a
// column; otherwise the call fails with SchemaMismatchError naming the
// missing field.
func (m *OLS) PredictFrame(f *dataset.Frame) ([]float64, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "PredictFrame")
	}

	X, missing, ok := f.Select(m.names)
	if !ok {
		return nil, errors.NewSchemaMismatchError("OLS.PredictFrame", missing, m.names)
	}

	preds, err := m.Predict(X)
	if err != nil {
		return nil, err
	}

	out := make([]float64, f.Len())
	for i := range out {
		out[i] = preds.At(i, 0)
	}
	return out, nil
}

// PredictionIntervals computes predicted outcomes with prediction
// intervals at the given level. A level of 0 uses the model's confidence
// level. The interval half-width is t·s·sqrt(1 + x0ᵀ(XᵀX)⁻¹x0), so it
// covers residual noise as well as estimation uncertainty.
func (m *OLS) PredictionIntervals(f *dataset.Frame, level float64) ([]Prediction, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "PredictionIntervals")
	}
	if level == 0 {
		level = m.level
	}
	if level <= 0 || level >= 1 {
		return nil, errors.NewInvalidParameterError("level", "must be strictly between 0 and 1", level)
	}

	X, missing, ok := f.Select(m.names)
	if !ok {
		return nil, errors.NewSchemaMismatchError("OLS.PredictionIntervals", missing, m.names)
	}

	tCrit := studentTQuantile(level, m.df)
	p := m.nFeatures + 1

	out := make([]Prediction, f.Len())
	x0 := mat.NewVecDense(p, nil)
	for i := 0; i < f.Len(); i++ {
		x0.SetVec(0, 1.0)
		pred := m.coeffs[0].Estimate
		for j := 0; j < m.nFeatures; j++ {
			x0.SetVec(j+1, X.At(i, j))
			pred += X.At(i, j) * m.coeffs[j+1].Estimate
		}

		// leverage x0ᵀ(XᵀX)⁻¹x0
		var tmp mat.VecDense
		tmp.MulVec(m.xtxInv, x0)
		leverage := mat.Dot(x0, &tmp)

		se := math.Sqrt(m.sigma2 * (1 + leverage))
		out[i] = Prediction{
			Value: pred,
			Low:   pred - tCrit*se,
			High:  pred + tCrit*se,
		}
	}
	return out, nil
}

// Score computes R² of the fitted model on new data.
func (m *OLS) Score(X, y mat.Matrix) (float64, error) {
	if !m.IsFitted() {
		return 0, errors.NewNotFittedError("OLS", "Score")
	}

	yPred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	yTrueVec := mat.NewVecDense(r, nil)
	yPredVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yTrueVec.SetVec(i, y.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return metrics.R2Score(yTrueVec, yPredVec)
}

// studentTQuantile returns the two-sided critical value at the given
// confidence level for a Student's t distribution with df degrees of
// freedom.
func studentTQuantile(level float64, df int) float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return t.Quantile(0.5 + level/2)
}

func defaultNames(c int) []string {
	names := make([]string, c)
	for j := range names {
		names[j] = fmt.Sprintf("x%d", j+1)
	}
	return names
}
