package simulate

import (
	"log/slog"
	"time"

	"github.com/YuminosukeSato/regsim/core/parallel"
	"github.com/YuminosukeSato/regsim/dataset"
	"github.com/YuminosukeSato/regsim/linear"
	"github.com/YuminosukeSato/regsim/pkg/errors"
	"github.com/YuminosukeSato/regsim/pkg/log"
)

// Result holds everything a run produced: the aggregated estimate table,
// the indices of any failed trials, and the final trial's dataset and
// fit for plotting.
type Result struct {
	Table  *EstimateTable
	Failed []int

	// FinalData and FinalFit come from the last trial, kept so callers
	// can draw a scatter-with-fitted-line plot. Earlier trials'
	// datasets are discarded once fitted.
	FinalData *dataset.Dataset
	FinalFit  *linear.OLS

	truth map[string]float64
}

// Truth returns the generating parameter value per coefficient name.
func (r *Result) Truth() map[string]float64 {
	out := make(map[string]float64, len(r.truth))
	for k, v := range r.truth {
		out[k] = v
	}
	return out
}

// Coverage returns the empirical coverage rate per coefficient against
// the generating truth.
func (r *Result) Coverage() (map[string]float64, error) {
	return r.Table.CoverageRates(r.truth)
}

// trialOutcome is the unit the map phase produces: one trial's records,
// or the error that aborted it.
type trialOutcome struct {
	records []Record
	err     error
}

// Run executes the coverage experiment described by cfg.
//
// Each trial is an independent computation keyed by its index: it draws
// its own random stream from (seed, trial), generates a fresh dataset,
// fits an OLS regression, and emits one record per coefficient. Outcomes
// land in per-trial slots, so the reduction into the estimate table does
// not depend on execution order and Workers > 0 cannot change results
// under a nonzero seed.
//
// A failed trial aborts the run unless cfg.ContinueOnError is set, in
// which case the failure is logged, the trial index recorded in
// Result.Failed, and the remaining trials proceed.
func Run(cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var genOpts []dataset.GeneratorOption
	if cfg.BinaryX {
		genOpts = append(genOpts, dataset.WithBinaryX(cfg.PSuccess))
	} else {
		genOpts = append(genOpts, dataset.WithUniformX(cfg.XMin, cfg.XMax))
	}

	gen, err := dataset.NewGenerator(cfg.Intercept, cfg.Slope, cfg.NoiseSD, genOpts...)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With(
		slog.String(log.ComponentKey, "simulate"),
		slog.Int(log.TrialsKey, cfg.Trials),
		slog.Int(log.SamplesKey, cfg.SampleSize),
		slog.Uint64(log.SeedKey, cfg.Seed),
		slog.Float64(log.LevelKey, cfg.Level),
	)
	logger.Info("starting coverage run",
		slog.String(log.OperationKey, "coverage"),
		slog.Int(log.WorkersKey, cfg.Workers),
	)
	started := time.Now()

	outcomes := make([]trialOutcome, cfg.Trials)
	var finalData *dataset.Dataset
	var finalFit *linear.OLS

	runTrial := func(i int) {
		src := dataset.TrialSource(cfg.Seed, i)

		ds, err := gen.Generate(cfg.SampleSize, src)
		if err != nil {
			outcomes[i] = trialOutcome{err: err}
			return
		}

		fit := linear.NewOLS(
			linear.WithConfidenceLevel(cfg.Level),
			linear.WithPredictorNames(cfg.SlopeName),
		)
		X, y := ds.Matrices()
		if err := fit.Fit(X, y); err != nil {
			outcomes[i] = trialOutcome{err: err}
			return
		}

		coeffs, err := fit.Coefficients()
		if err != nil {
			outcomes[i] = trialOutcome{err: err}
			return
		}

		records := make([]Record, len(coeffs))
		for j, coef := range coeffs {
			records[j] = Record{
				Trial:    i,
				Name:     coef.Name,
				Estimate: coef.Estimate,
				StdErr:   coef.StdErr,
				Low:      coef.Low,
				High:     coef.High,
			}
		}
		outcomes[i] = trialOutcome{records: records}

		// Only the last trial's data survives, for plotting.
		if i == cfg.Trials-1 {
			finalData = ds
			finalFit = fit
		}
	}

	if cfg.Workers == 0 {
		for i := 0; i < cfg.Trials; i++ {
			runTrial(i)
		}
	} else {
		workers := cfg.Workers
		if workers < 0 {
			workers = 0 // one per core
		}
		parallel.Run(cfg.Trials, workers, func(start, end int) {
			for i := start; i < end; i++ {
				runTrial(i)
			}
		})
	}

	// Reduce per-trial outcomes into the aggregate table, keyed by
	// trial index.
	names := []string{linear.InterceptName, cfg.SlopeName}
	records := make([]Record, 0, cfg.Trials*len(names))
	var failed []int
	for i, outcome := range outcomes {
		if outcome.err != nil {
			trialErr := errors.NewTrialError(i, outcome.err)
			if !cfg.ContinueOnError {
				return nil, trialErr
			}
			// Never suppress a failed trial silently.
			logger.Warn("trial failed, continuing",
				slog.Int(log.TrialKey, i),
				log.ErrAttr(trialErr),
			)
			errors.Warn(trialErr)
			failed = append(failed, i)
			continue
		}
		records = append(records, outcome.records...)
	}

	result := &Result{
		Table:  NewEstimateTable(records, names, cfg.Trials),
		Failed: failed,
		truth: map[string]float64{
			linear.InterceptName: cfg.Intercept,
			cfg.SlopeName:        cfg.Slope,
		},
		FinalData: finalData,
		FinalFit:  finalFit,
	}

	logger.Info("coverage run finished",
		slog.String(log.OperationKey, "coverage"),
		slog.Int("records", result.Table.Len()),
		slog.Int("failed_trials", len(failed)),
		slog.Int64(log.DurationMsKey, time.Since(started).Milliseconds()),
	)

	return result, nil
}
