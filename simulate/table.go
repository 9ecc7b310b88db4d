package simulate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/regsim/pkg/errors"
)

// Record is one (trial, coefficient) row of the estimate table: the
// point estimate and confidence interval a single trial produced for a
// single coefficient.
type Record struct {
	Trial    int
	Name     string
	Estimate float64
	StdErr   float64
	Low      float64
	High     float64
}

// Covers reports whether the record's interval contains the given true
// value. Containment is inclusive on both bounds.
func (r Record) Covers(truth float64) bool {
	return r.Low <= truth && truth <= r.High
}

// CoverageRow is a Record joined with its derived coverage indicator.
type CoverageRow struct {
	Record
	Covers bool
}

// EstimateTable aggregates the per-trial records of a run. Records are
// stored in trial order, one per (trial, coefficient) pair, and are
// never reordered: presentation helpers operate on copies.
type EstimateTable struct {
	records []Record
	names   []string
	trials  int
}

// NewEstimateTable builds a table from records collected across trials.
// names fixes the coefficient order used by reporting helpers.
func NewEstimateTable(records []Record, names []string, trials int) *EstimateTable {
	return &EstimateTable{records: records, names: names, trials: trials}
}

// Len returns the total number of records.
func (t *EstimateTable) Len() int {
	return len(t.records)
}

// Trials returns the number of trials the run attempted.
func (t *EstimateTable) Trials() int {
	return t.trials
}

// Names returns the coefficient names in reporting order.
func (t *EstimateTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Records returns a copy of all records in trial order.
func (t *EstimateTable) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// ByName returns a copy of the records for one coefficient, in trial
// order.
func (t *EstimateTable) ByName(name string) []Record {
	var out []Record
	for _, rec := range t.records {
		if rec.Name == name {
			out = append(out, rec)
		}
	}
	return out
}

// SortedByEstimate returns the records for one coefficient ordered by
// point estimate. This is a presentation-only view for interval plots:
// the returned slice is a copy, sorting never touches the stored
// trial-indexed records, and the trial index travels with each record so
// the interval-to-trial association stays intact.
func (t *EstimateTable) SortedByEstimate(name string) []Record {
	out := t.ByName(name)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Estimate < out[j].Estimate
	})
	return out
}

// CoverageTable joins each record with its coverage indicator against
// the given true parameter values. It fails if a record's coefficient
// has no entry in truth.
func (t *EstimateTable) CoverageTable(truth map[string]float64) ([]CoverageRow, error) {
	out := make([]CoverageRow, 0, len(t.records))
	for _, rec := range t.records {
		trueVal, ok := truth[rec.Name]
		if !ok {
			return nil, errors.NewValueError("EstimateTable.CoverageTable", "no true value for coefficient "+rec.Name)
		}
		out = append(out, CoverageRow{Record: rec, Covers: rec.Covers(trueVal)})
	}
	return out, nil
}

// CoverageRates computes the empirical coverage rate per coefficient:
// the fraction of that coefficient's recorded intervals containing the
// true value. The denominator is the number of records for the
// coefficient, so failed trials (absent from the table) do not count as
// misses.
func (t *EstimateTable) CoverageRates(truth map[string]float64) (map[string]float64, error) {
	rows, err := t.CoverageTable(truth)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	hits := make(map[string]int)
	for _, row := range rows {
		counts[row.Name]++
		if row.Covers {
			hits[row.Name]++
		}
	}

	rates := make(map[string]float64, len(counts))
	for name, count := range counts {
		rates[name] = float64(hits[name]) / float64(count)
	}
	return rates, nil
}

// EstimateSummary returns the mean and standard deviation of a
// coefficient's point estimates across trials.
func (t *EstimateTable) EstimateSummary(name string) (mean, sd float64, err error) {
	recs := t.ByName(name)
	if len(recs) == 0 {
		return 0, 0, errors.NewValueError("EstimateTable.EstimateSummary", "no records for coefficient "+name)
	}

	estimates := make([]float64, len(recs))
	for i, rec := range recs {
		estimates[i] = rec.Estimate
	}

	mean = stat.Mean(estimates, nil)
	sd = stat.StdDev(estimates, nil)
	return mean, sd, nil
}
