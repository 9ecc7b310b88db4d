package simulate

import (
	"math"
	"sort"
	"testing"

	"github.com/YuminosukeSato/regsim/linear"
	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// The concrete scenario the experiment is usually demonstrated with:
// y = 10 + 5x, noise SD 7, x ~ Uniform(0, 7), 100 observations per
// trial, 100 trials.
func scenarioConfig() Config {
	return Config{
		Intercept:  10,
		Slope:      5,
		NoiseSD:    7,
		SampleSize: 100,
		Trials:     100,
		Seed:       42,
		XMin:       0,
		XMax:       7,
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero trials", func(c *Config) { c.Trials = 0 }},
		{"zero sample size", func(c *Config) { c.SampleSize = 0 }},
		{"level above one", func(c *Config) { c.Level = 1.5 }},
		{"negative level", func(c *Config) { c.Level = -0.5 }},
		{"negative noise sd", func(c *Config) { c.NoiseSD = -7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scenarioConfig()
			tt.mut(&cfg)

			_, err := Run(cfg)
			if err == nil {
				t.Fatal("Run() succeeded with invalid config")
			}
			var paramErr *errors.InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Errorf("expected InvalidParameterError, got %T: %v", err, err)
			}
		})
	}
}

func TestRunRecordCount(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trials = 25
	cfg.SampleSize = 30

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// N records per coefficient, N×P total.
	if got := result.Table.Len(); got != 25*2 {
		t.Errorf("table has %d records, want %d", got, 25*2)
	}
	for _, name := range result.Table.Names() {
		if got := len(result.Table.ByName(name)); got != 25 {
			t.Errorf("%s has %d records, want 25", name, got)
		}
	}

	// Every trial index appears exactly once per coefficient.
	seen := make(map[string]map[int]int)
	for _, rec := range result.Table.Records() {
		if seen[rec.Name] == nil {
			seen[rec.Name] = make(map[int]int)
		}
		seen[rec.Name][rec.Trial]++
	}
	for name, trials := range seen {
		for trial, count := range trials {
			if count != 1 {
				t.Errorf("%s trial %d recorded %d times", name, trial, count)
			}
		}
	}
}

func TestRunDeterminism(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trials = 20

	first, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	a, b := first.Table.Records(), second.Table.Records()
	if len(a) != len(b) {
		t.Fatalf("record counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs between identical runs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trials = 30

	sequential, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Workers = 4
	parallelRun, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	a, b := sequential.Table.Records(), parallelRun.Table.Records()
	if len(a) != len(b) {
		t.Fatalf("record counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs between sequential and parallel runs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	result, err := Run(scenarioConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	interceptMean, _, err := result.Table.EstimateSummary(linear.InterceptName)
	if err != nil {
		t.Fatal(err)
	}
	slopeMean, _, err := result.Table.EstimateSummary("x")
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(interceptMean-10) > 1 {
		t.Errorf("mean intercept estimate = %v, want ≈ 10", interceptMean)
	}
	if math.Abs(slopeMean-5) > 0.3 {
		t.Errorf("mean slope estimate = %v, want ≈ 5", slopeMean)
	}

	coverage, err := result.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	for name, rate := range coverage {
		if rate < 0.8 || rate > 1 {
			t.Errorf("%s coverage = %v, want within [0.8, 1.0] for nominal 0.95", name, rate)
		}
	}
}

func TestCoverageWithPerturbedTruth(t *testing.T) {
	// Intervals built around the real truth must not cover a value
	// many standard errors away.
	result, err := Run(scenarioConfig())
	if err != nil {
		t.Fatal(err)
	}

	wrongTruth := map[string]float64{
		linear.InterceptName: 10,
		"x":                  50,
	}
	coverage, err := result.Table.CoverageRates(wrongTruth)
	if err != nil {
		t.Fatal(err)
	}
	if coverage["x"] > 0.2 {
		t.Errorf("coverage of slope=50 is %v, expected near zero", coverage["x"])
	}
}

func TestCoverageHasMissesAtLargeN(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trials = 400
	cfg.SampleSize = 50

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := result.Table.CoverageTable(result.Truth())
	if err != nil {
		t.Fatal(err)
	}

	misses := 0
	for _, row := range rows {
		if !row.Covers {
			misses++
		}
	}
	// 800 nominal-95% intervals covering every single time would mean
	// the intervals are far too wide.
	if misses == 0 {
		t.Error("no interval missed the truth across 800 records")
	}

	coverage, err := result.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	for name, rate := range coverage {
		if rate <= 0 || rate > 1 {
			t.Errorf("%s coverage = %v out of range", name, rate)
		}
		if rate < 0.85 {
			t.Errorf("%s coverage = %v, suspiciously far below nominal 0.95", name, rate)
		}
	}
}

func TestEstimateConsistency(t *testing.T) {
	// Mean squared error of the slope estimate should shrink as the
	// per-trial sample size grows.
	mseFor := func(sampleSize int) float64 {
		cfg := scenarioConfig()
		cfg.SampleSize = sampleSize
		cfg.Trials = 100
		cfg.Seed = 7

		result, err := Run(cfg)
		if err != nil {
			t.Fatal(err)
		}

		var sum float64
		recs := result.Table.ByName("x")
		for _, rec := range recs {
			diff := rec.Estimate - cfg.Slope
			sum += diff * diff
		}
		return sum / float64(len(recs))
	}

	small := mseFor(20)
	large := mseFor(2000)

	if large >= small {
		t.Errorf("slope MSE did not shrink with sample size: n=20 → %v, n=2000 → %v", small, large)
	}
}

func TestSortedByEstimateIsPresentationOnly(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trials = 40

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	before := result.Table.Records()

	sorted := result.Table.SortedByEstimate("x")
	if !sort.SliceIsSorted(sorted, func(i, j int) bool {
		return sorted[i].Estimate < sorted[j].Estimate
	}) {
		t.Error("SortedByEstimate returned unsorted records")
	}

	// Each sorted record keeps its own trial's interval.
	byTrial := make(map[int]Record)
	for _, rec := range result.Table.ByName("x") {
		byTrial[rec.Trial] = rec
	}
	for _, rec := range sorted {
		if rec != byTrial[rec.Trial] {
			t.Errorf("sorted record for trial %d lost its interval association", rec.Trial)
		}
	}

	// The stored table must be untouched.
	after := result.Table.Records()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("stored record %d changed after sorting: %+v vs %+v", i, before[i], after[i])
		}
	}

	// Coverage computed after sorting must match coverage before.
	cov1, err := result.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	result.Table.SortedByEstimate(linear.InterceptName)
	cov2, err := result.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	for name := range cov1 {
		if cov1[name] != cov2[name] {
			t.Errorf("%s coverage changed after sorting: %v vs %v", name, cov1[name], cov2[name])
		}
	}
}

func TestContinueOnErrorRecordsFailures(t *testing.T) {
	// Three binary draws per trial frequently come out all-treatment
	// or all-control, which makes the covariate collinear with the
	// intercept and the fit degenerate.
	cfg := Config{
		Intercept:       10,
		Slope:           5,
		NoiseSD:         2,
		SampleSize:      3,
		Trials:          50,
		Seed:            123,
		BinaryX:         true,
		PSuccess:        0.5,
		SlopeName:       "coupon",
		ContinueOnError: true,
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() with ContinueOnError error = %v", err)
	}

	if len(result.Failed) == 0 {
		t.Fatal("expected at least one degenerate trial among 50 three-sample binary draws")
	}
	if len(result.Failed) == cfg.Trials {
		t.Fatal("every trial failed, generator looks broken")
	}

	wantPerCoef := cfg.Trials - len(result.Failed)
	for _, name := range result.Table.Names() {
		if got := len(result.Table.ByName(name)); got != wantPerCoef {
			t.Errorf("%s has %d records, want %d (failed trials excluded)", name, got, wantPerCoef)
		}
	}

	// Failed trials must not appear in the table.
	failedSet := make(map[int]bool)
	for _, trial := range result.Failed {
		failedSet[trial] = true
	}
	for _, rec := range result.Table.Records() {
		if failedSet[rec.Trial] {
			t.Errorf("failed trial %d has records in the table", rec.Trial)
		}
	}

	// Without ContinueOnError the same configuration is fatal.
	cfg.ContinueOnError = false
	_, err = Run(cfg)
	if err == nil {
		t.Fatal("Run() without ContinueOnError should fail on the first degenerate trial")
	}
	var trialErr *errors.TrialError
	if !errors.As(err, &trialErr) {
		t.Fatalf("expected TrialError, got %T: %v", err, err)
	}
	var degErr *errors.DegenerateModelError
	if !errors.As(err, &degErr) {
		t.Errorf("TrialError should wrap DegenerateModelError, got %v", err)
	}
}

func TestResultKeepsFinalTrialData(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trials = 10

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if result.FinalData == nil || result.FinalData.Len() != cfg.SampleSize {
		t.Fatal("final trial dataset not retained")
	}
	if result.FinalFit == nil || !result.FinalFit.IsFitted() {
		t.Fatal("final trial fit not retained")
	}
}

func TestRunBinaryScenario(t *testing.T) {
	cfg := Config{
		Intercept:  10,
		Slope:      6,
		NoiseSD:    2,
		SampleSize: 200,
		Trials:     50,
		Seed:       9,
		BinaryX:    true,
		PSuccess:   0.5,
		SlopeName:  "coupon",
	}

	result, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	effectMean, _, err := result.Table.EstimateSummary("coupon")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(effectMean-6) > 0.5 {
		t.Errorf("mean treatment effect = %v, want ≈ 6", effectMean)
	}

	coverage, err := result.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	if coverage["coupon"] < 0.8 {
		t.Errorf("coupon coverage = %v, want ≥ 0.8", coverage["coupon"])
	}
}
