package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want ParsedQuery
	}{
		{
			name: "year_lookup",
			q:    "What was the revenue in 2023?",
			want: ParsedQuery{Intent: IntentLookup, MetricPhrase: "revenue", Year: 2023},
		},
		{
			name: "bare_metric_defaults_to_lookup",
			q:    "net income",
			want: ParsedQuery{Intent: IntentLookup, MetricPhrase: "net income"},
		},
		{
			name: "most_recent_is_lookup_not_superlative",
			q:    "What was the most recent revenue?",
			want: ParsedQuery{Intent: IntentLookup, MetricPhrase: "revenue"},
		},
		{
			name: "best_year",
			q:    "Which year had the highest net income?",
			want: ParsedQuery{Intent: IntentBestYear, MetricPhrase: "net income"},
		},
		{
			name: "worst_year",
			q:    "What was the worst year for operating expenses?",
			want: ParsedQuery{Intent: IntentWorstYear, MetricPhrase: "operating expenses"},
		},
		{
			name: "trend_with_range",
			q:    "How did revenue change from 2019 to 2023?",
			want: ParsedQuery{Intent: IntentTrend, MetricPhrase: "revenue", YearStart: 2019, YearEnd: 2023},
		},
		{
			name: "trend_range_order_normalized",
			q:    "How did revenue change between 2023 and 2019?",
			want: ParsedQuery{Intent: IntentTrend, MetricPhrase: "revenue", YearStart: 2019, YearEnd: 2023},
		},
		{
			name: "trend_last_n_years",
			q:    "Show the growth in total assets over the last 3 years",
			want: ParsedQuery{Intent: IntentTrend, MetricPhrase: "total assets", RecentWindow: 3},
		},
		{
			name: "trend_recent_default_window",
			q:    "What is the recent trend in net income?",
			want: ParsedQuery{Intent: IntentTrend, MetricPhrase: "net income", RecentWindow: defaultRecentWindow},
		},
		{
			// A year plus trend vocabulary is a trend question.
			name: "trend_wins_over_bare_year",
			q:    "How has revenue grown since 2020?",
			want: ParsedQuery{Intent: IntentTrend, MetricPhrase: "revenue"},
		},
		{
			name: "no_metric_phrase",
			q:    "What about 2023?",
			want: ParsedQuery{Intent: IntentLookup, MetricPhrase: "about", Year: 2023},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.q))
		})
	}
}

func TestParseRuleOrder(t *testing.T) {
	// Superlative vocabulary must be checked before trend vocabulary so
	// "which year grew the most" is a best-year question.
	pq := Parse("Which year grew the most for revenue?")
	assert.Equal(t, IntentBestYear, pq.Intent)
}

func TestParseRuleNames(t *testing.T) {
	want := []string{"best_year", "worst_year", "trend", "year_lookup"}
	names := make([]string, len(parseRules))
	for i, r := range parseRules {
		names[i] = r.name
	}
	assert.Equal(t, want, names)
}

func TestTokenizeStripsPunctuation(t *testing.T) {
	assert.Equal(t, []string{"whats", "the", "companys", "revenue"},
		tokenize("What's the company's (revenue)?"))
}
