package engine

import (
	"math"

	"github.com/sells-group/finqa-cli/internal/model"
)

// intentHandlers dispatches computation by intent. The map is closed over
// the Intent variants so the supported question shapes stay enumerable.
var intentHandlers = map[Intent]func(*model.MetricTable, ResolvedQuery) (*Result, error){
	IntentLookup:    computeLookup,
	IntentTrend:     computeTrend,
	IntentBestYear:  computeBestYear,
	IntentWorstYear: computeWorstYear,
}

// Compute produces the structured result for a resolved query. It returns
// ErrMetricNotFound when resolution failed and ErrNoDataForYear when a
// requested year is absent from the table. Values are raw float64; all
// formatting belongs to the formatter.
func Compute(table *model.MetricTable, q ResolvedQuery) (*Result, error) {
	if q.Metric == "" {
		return nil, ErrMetricNotFound
	}
	handler, ok := intentHandlers[q.Intent]
	if !ok {
		return nil, ErrMetricNotFound
	}
	return handler(table, q)
}

func computeLookup(table *model.MetricTable, q ResolvedQuery) (*Result, error) {
	year := q.Year
	if year == 0 {
		year = table.Latest().Year
	}
	v, ok := table.Value(q.Metric, year)
	if !ok {
		return nil, ErrNoDataForYear
	}
	return &Result{Metric: q.Metric, Intent: IntentLookup, Value: v, Year: year}, nil
}

func computeTrend(table *model.MetricTable, q ResolvedQuery) (*Result, error) {
	series := table.Series(q.Metric)
	if len(series) == 0 {
		return nil, ErrNoDataForYear
	}

	window := series
	switch {
	case q.YearStart != 0 && q.YearEnd != 0:
		window = window[:0:0]
		for _, yv := range series {
			if yv.Year >= q.YearStart && yv.Year <= q.YearEnd {
				window = append(window, yv)
			}
		}
		if len(window) == 0 {
			return nil, ErrNoDataForYear
		}
	case q.RecentWindow > 0 && q.RecentWindow < len(series):
		window = series[len(series)-q.RecentWindow:]
	}

	earliest := window[0]
	latest := window[len(window)-1]

	res := &Result{
		Metric:     q.Metric,
		Intent:     IntentTrend,
		Value:      latest.Value,
		Year:       latest.Year,
		PriorValue: earliest.Value,
		PriorYear:  earliest.Year,
		Series:     window,
	}

	// A single data point or a zero baseline cannot yield a meaningful
	// percentage; report no change instead of a numeric artifact.
	if len(window) < 2 || earliest.Value == 0 {
		res.Degenerate = true
		return res, nil
	}

	res.PercentChange = (latest.Value - earliest.Value) / math.Abs(earliest.Value) * 100
	return res, nil
}

func computeBestYear(table *model.MetricTable, q ResolvedQuery) (*Result, error) {
	return computeExtremal(table, q, IntentBestYear, func(v, extremal float64) bool { return v > extremal })
}

func computeWorstYear(table *model.MetricTable, q ResolvedQuery) (*Result, error) {
	return computeExtremal(table, q, IntentWorstYear, func(v, extremal float64) bool { return v < extremal })
}

func computeExtremal(table *model.MetricTable, q ResolvedQuery, intent Intent, better func(v, extremal float64) bool) (*Result, error) {
	series := table.Series(q.Metric)
	if len(series) == 0 {
		return nil, ErrNoDataForYear
	}

	extremal := series[0].Value
	for _, yv := range series[1:] {
		if better(yv.Value, extremal) {
			extremal = yv.Value
		}
	}

	var ties []int
	for _, yv := range series {
		if yv.Value == extremal {
			ties = append(ties, yv.Year)
		}
	}

	return &Result{
		Metric:   q.Metric,
		Intent:   intent,
		Value:    extremal,
		Year:     ties[0],
		TieYears: ties,
		Series:   series,
	}, nil
}
