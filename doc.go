// Package regsim provides Monte Carlo tooling for studying the sampling
// distribution and confidence-interval coverage of ordinary-least-squares
// linear regression estimators.
//
// The core workflow simulates many independent datasets around a known
// linear truth, fits a regression to each one, and checks how often the
// resulting confidence intervals actually contain the generating
// parameters.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/regsim/simulate"
//	)
//
//	func main() {
//	    cfg := simulate.Config{
//	        Intercept:  10,
//	        Slope:      5,
//	        NoiseSD:    7,
//	        SampleSize: 100,
//	        Trials:     100,
//	        Seed:       42,
//	    }
//
//	    result, err := simulate.Run(cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for name, rate := range result.Coverage() {
//	        fmt.Printf("%s: %.2f\n", name, rate)
//	    }
//	}
//
// # Packages
//
//   - dataset: synthetic data generation (uniform and binary covariates,
//     Gaussian noise, reproducible per-trial random streams)
//   - linear: OLS fitting with standard errors, t-based confidence
//     intervals, R², and named-scenario prediction
//   - simulate: the repeated-trial runner, estimate table, and coverage
//     evaluator
//   - metrics: regression evaluation metrics (MSE, RMSE, R²)
//   - visualize: plots consumed by human reviewers (scatter with fitted
//     line, estimate boxplot, per-trial interval plot)
//   - core/model, core/parallel, pkg/errors, pkg/log: shared estimator
//     state, parallel helpers, structured errors, and logging
//
// # License
//
// RegSim is released under the MIT License.
package regsim
