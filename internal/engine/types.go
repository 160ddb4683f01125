// Package engine implements the query understanding and answer generation
// core: question parsing, fuzzy metric resolution, rule-based computation,
// answer formatting, and per-run answer caching.
package engine

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/finqa-cli/internal/model"
)

// Intent is the closed set of supported question categories.
type Intent int

const (
	// IntentLookup is a point lookup of one metric, optionally in one year.
	IntentLookup Intent = iota
	// IntentTrend asks how a metric changed over a period.
	IntentTrend
	// IntentBestYear asks which year had the highest value.
	IntentBestYear
	// IntentWorstYear asks which year had the lowest value.
	IntentWorstYear
)

func (i Intent) String() string {
	switch i {
	case IntentLookup:
		return "lookup"
	case IntentTrend:
		return "trend"
	case IntentBestYear:
		return "best_year"
	case IntentWorstYear:
		return "worst_year"
	default:
		return "unknown"
	}
}

// ParsedQuery is the outcome of pure text analysis of one question.
type ParsedQuery struct {
	Intent       Intent
	MetricPhrase string
	Year         int // 0 = no year requested
	YearStart    int // trend range lower bound, 0 = open
	YearEnd      int // trend range upper bound, 0 = open
	RecentWindow int // "last N years" window, 0 = none
}

// ResolvedQuery is a ParsedQuery bound to a canonical metric name. An empty
// Metric means resolution failed and computation must short-circuit.
type ResolvedQuery struct {
	ParsedQuery
	Metric string
}

// Result is the structured outcome of one computation, consumed exactly once
// by the formatter or the augmentation gateway.
type Result struct {
	Metric        string
	Intent        Intent
	Value         float64
	Year          int
	PriorValue    float64
	PriorYear     int
	PercentChange float64
	Degenerate    bool
	TieYears      []int             // best/worst ties, ascending
	Series        []model.YearValue // trend window, ascending
}

// Sentinel errors for the recoverable failure modes of the engine. All are
// converted to user-facing sentences at the engine boundary and never
// propagate past it.
var (
	ErrMetricNotFound    = eris.New("engine: metric not found")
	ErrNoDataForYear     = eris.New("engine: no data for requested year")
	ErrMalformedQuestion = eris.New("engine: no usable metric phrase")
)
