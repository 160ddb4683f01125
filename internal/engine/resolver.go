package engine

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/sells-group/finqa-cli/internal/model"
)

// DefaultSimilarityThreshold is the minimum normalized similarity a fuzzy
// candidate must reach to be accepted.
const DefaultSimilarityThreshold = 0.6

// DefaultAliases maps common free-text synonyms to canonical metric names.
// Aliases whose target column is absent from the loaded table are ignored at
// resolution time.
func DefaultAliases() map[string]string {
	return map[string]string{
		"revenue":           "Revenue",
		"sales":             "Revenue",
		"turnover":          "Revenue",
		"income":            "Net_Income",
		"net income":        "Net_Income",
		"net profit":        "Net_Income",
		"profit":            "Net_Income",
		"earnings":          "Net_Income",
		"bottom line":       "Net_Income",
		"expenses":          "Operating_Expenses",
		"operating expense": "Operating_Expenses",
		"costs":             "Operating_Expenses",
		"spending":          "Operating_Expenses",
		"opex":              "Operating_Expenses",
		"assets":            "Total_Assets",
		"total assets":      "Total_Assets",
		"margin":            "Net_Margin",
		"net margin":        "Net_Margin",
		"profitability":     "Net_Margin",
	}
}

// Resolver fuzzy-matches free-text metric phrases to canonical table columns.
type Resolver struct {
	table     *model.MetricTable
	aliases   map[string]string // normalized alias -> canonical name
	threshold float64
}

// NewResolver builds a resolver for the given table. The alias map uses raw
// synonym keys; they are normalized here. A non-positive threshold falls back
// to DefaultSimilarityThreshold.
func NewResolver(table *model.MetricTable, aliases map[string]string, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	norm := make(map[string]string, len(aliases))
	for k, v := range aliases {
		norm[normalizePhrase(k)] = v
	}
	return &Resolver{table: table, aliases: norm, threshold: threshold}
}

// Resolve maps a metric phrase to a canonical column name. The second return
// is false when no candidate clears the similarity threshold.
func (r *Resolver) Resolve(phrase string) (string, bool) {
	norm := normalizePhrase(phrase)
	if norm == "" {
		return "", false
	}

	// Exact alias match.
	if canonical, ok := r.aliases[norm]; ok && r.table.HasMetric(canonical) {
		return canonical, true
	}

	// Exact canonical match.
	for _, m := range r.table.Metrics {
		if normalizePhrase(model.DisplayName(m)) == norm {
			return m, true
		}
	}

	// Fuzzy match across canonical names and aliases.
	type candidate struct {
		text      string
		canonical string
	}
	var candidates []candidate
	for _, m := range r.table.Metrics {
		candidates = append(candidates, candidate{normalizePhrase(model.DisplayName(m)), m})
	}
	for alias, canonical := range r.aliases {
		if r.table.HasMetric(canonical) {
			candidates = append(candidates, candidate{alias, canonical})
		}
	}

	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := levenshtein.Match(norm, c.text, nil)
		switch {
		case score > bestScore:
			best, bestScore = c.canonical, score
		case score == bestScore && best != "" && best != c.canonical:
			// Tie: prefer the canonical whose alias set contains an exact
			// substring of the phrase.
			if r.hasSubstringAlias(c.canonical, norm) && !r.hasSubstringAlias(best, norm) {
				best = c.canonical
			}
		}
	}

	if bestScore < r.threshold {
		return "", false
	}
	return best, true
}

func (r *Resolver) hasSubstringAlias(canonical, norm string) bool {
	for alias, target := range r.aliases {
		if target == canonical && strings.Contains(norm, alias) {
			return true
		}
	}
	return false
}

// normalizePhrase lowercases, strips punctuation, and trivially singularizes
// each word so that "Operating expenses?" and "operating expense" compare
// equal.
func normalizePhrase(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "_", " ")
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		f = strings.ReplaceAll(f, "'", "")
		if len(f) > 3 && strings.HasSuffix(f, "s") && !strings.HasSuffix(f, "ss") {
			f = strings.TrimSuffix(f, "s")
		}
		if f != "" {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}
