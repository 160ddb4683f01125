package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Vocabulary driving intent detection. Matching is word-based on the
// lowercased question, most specific rule first.
var (
	bestWords  = []string{"best", "highest", "maximum", "most", "peak", "top"}
	worstWords = []string{"worst", "lowest", "minimum", "least", "bottom"}
	trendWords = []string{"trend", "change", "changed", "changing", "grow", "grew", "grown", "growth", "evolve", "evolved", "develop", "developed"}
)

var (
	yearRe  = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	lastNRe = regexp.MustCompile(`\blast\s+(\d{1,2})\s+years?\b`)
)

// defaultRecentWindow bounds "recent"/"last few years" trend questions when
// no explicit count is given.
const defaultRecentWindow = 5

// parseRule is one (predicate, extractor) pair. Rules are evaluated in
// order; the first match decides the intent. Keeping them as data lets tests
// enumerate coverage without touching control flow.
type parseRule struct {
	name  string
	match func(q string) bool
	apply func(q string, pq *ParsedQuery)
}

var parseRules = []parseRule{
	{
		name:  "best_year",
		match: containsAnyWord(bestWords),
		apply: func(_ string, pq *ParsedQuery) { pq.Intent = IntentBestYear },
	},
	{
		name:  "worst_year",
		match: containsAnyWord(worstWords),
		apply: func(_ string, pq *ParsedQuery) { pq.Intent = IntentWorstYear },
	},
	{
		// Trend vocabulary wins over a bare year token, so a question
		// mentioning both a year and "change" is answered as a trend.
		name:  "trend",
		match: containsAnyWord(trendWords),
		apply: applyTrend,
	},
	{
		name:  "year_lookup",
		match: func(q string) bool { return yearRe.MatchString(q) },
		apply: func(q string, pq *ParsedQuery) {
			pq.Intent = IntentLookup
			if years := extractYears(q); len(years) > 0 {
				pq.Year = years[0]
			}
		},
	},
}

// Parse analyzes one question and extracts intent, metric phrase, and any
// year constraints. It is pure text analysis and never consults the table.
// When nothing matches, the intent defaults to a lookup of the most recent
// period.
func Parse(question string) ParsedQuery {
	q := strings.ToLower(question)
	// "most recent" is lookup phrasing, not superlative vocabulary.
	q = strings.ReplaceAll(q, "most recent", "latest")

	pq := ParsedQuery{Intent: IntentLookup}
	for _, rule := range parseRules {
		if rule.match(q) {
			rule.apply(q, &pq)
			break
		}
	}

	pq.MetricPhrase = extractMetricPhrase(q)
	return pq
}

func applyTrend(q string, pq *ParsedQuery) {
	pq.Intent = IntentTrend

	if m := lastNRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 1 {
			pq.RecentWindow = n
			return
		}
	}
	if strings.Contains(q, "recent") {
		pq.RecentWindow = defaultRecentWindow
		return
	}

	years := extractYears(q)
	if len(years) >= 2 {
		lo, hi := years[0], years[0]
		for _, y := range years[1:] {
			if y < lo {
				lo = y
			}
			if y > hi {
				hi = y
			}
		}
		pq.YearStart, pq.YearEnd = lo, hi
	}
}

func extractYears(q string) []int {
	var years []int
	for _, m := range yearRe.FindAllString(q, -1) {
		if y, err := strconv.Atoi(m); err == nil {
			years = append(years, y)
		}
	}
	return years
}

func containsAnyWord(words []string) func(string) bool {
	return func(q string) bool {
		fields := tokenize(q)
		for _, f := range fields {
			for _, w := range words {
				if f == w {
					return true
				}
			}
		}
		return false
	}
}

// phraseStopWords are question words, intent vocabulary, and filler tokens
// removed when isolating the metric phrase. "total" stays because it is part
// of canonical names like Total_Assets.
var phraseStopWords = map[string]bool{
	"what": true, "which": true, "when": true, "where": true, "why": true,
	"how": true, "was": true, "were": true, "is": true, "are": true,
	"the": true, "a": true, "an": true, "in": true, "of": true, "on": true,
	"for": true, "to": true, "from": true, "by": true, "at": true,
	"did": true, "do": true, "does": true, "had": true, "has": true,
	"have": true, "show": true, "me": true, "tell": true, "give": true,
	"our": true, "their": true, "its": true, "company": true,
	"companys": true, "year": true, "years": true, "over": true,
	"during": true, "time": true, "last": true, "recent": true,
	"recently": true, "please": true, "and": true, "with": true,
	"latest": true, "current": true, "whats": true, "hows": true,
	"much": true, "many": true, "we": true, "us": true, "make": true,
	"made": true, "been": true, "since": true, "between": true,
}

func extractMetricPhrase(q string) string {
	var kept []string
	for _, tok := range tokenize(q) {
		if tok == "" || phraseStopWords[tok] || isIntentWord(tok) || isNumeric(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func isIntentWord(tok string) bool {
	for _, set := range [][]string{bestWords, worstWords, trendWords} {
		for _, w := range set {
			if tok == w {
				return true
			}
		}
	}
	return false
}

func isNumeric(tok string) bool {
	_, err := strconv.Atoi(tok)
	return err == nil
}

// tokenize splits on whitespace and strips surrounding punctuation, mirroring
// the word-set normalization used by the resolver.
func tokenize(q string) []string {
	fields := strings.Fields(q)
	toks := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]{}\"'")
		f = strings.ReplaceAll(f, "'", "")
		if f != "" {
			toks = append(toks, f)
		}
	}
	return toks
}
