package engine

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/finqa-cli/internal/model"
)

// insufficientData is the unconditional fallback sentence. The formatter
// never fails; anything it cannot render becomes this.
const insufficientData = "Insufficient data to answer this question."

// Formatter renders structured results into natural-language sentences with
// localized currency formatting.
type Formatter struct {
	p *message.Printer
}

// NewFormatter creates a formatter with en-US number grouping.
func NewFormatter() *Formatter {
	return &Formatter{p: message.NewPrinter(language.English)}
}

// Format renders a result using a fixed template per intent.
func (f *Formatter) Format(res *Result) string {
	if res == nil {
		return insufficientData
	}

	display := model.DisplayName(res.Metric)

	switch res.Intent {
	case IntentLookup:
		return fmt.Sprintf("The %s in %d was %s.", display, res.Year, f.dollars(res.Value))

	case IntentBestYear:
		return fmt.Sprintf("The best year(s) for %s was %s with %s.", display, joinYears(res.TieYears), f.dollars(res.Value))

	case IntentWorstYear:
		return fmt.Sprintf("The worst year(s) for %s was %s with %s.", display, joinYears(res.TieYears), f.dollars(res.Value))

	case IntentTrend:
		return f.formatTrend(res, display)

	default:
		return insufficientData
	}
}

// FormatError converts a recoverable engine error into a user-facing
// sentence. Unknown errors render as the generic insufficient-data sentence.
func (f *Formatter) FormatError(err error) string {
	switch {
	case errors.Is(err, ErrMetricNotFound):
		return "I couldn't recognize the metric you're asking about. Try revenue, net income, operating expenses, or total assets."
	case errors.Is(err, ErrMalformedQuestion):
		return "I couldn't find a financial metric in that question. Try asking about revenue, net income, operating expenses, or total assets."
	case errors.Is(err, ErrNoDataForYear):
		return "There is no data for the requested year."
	default:
		return insufficientData
	}
}

func (f *Formatter) formatTrend(res *Result, display string) string {
	if res.Degenerate {
		return fmt.Sprintf("%s showed no change (%s in %d).", display, f.dollars(res.Value), res.Year)
	}

	direction := "increased"
	if res.PercentChange < 0 {
		direction = "decreased"
	} else if res.PercentChange == 0 {
		direction = "held steady, changing"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s by %.1f%% from %s in %d to %s in %d.",
		display, direction, abs(res.PercentChange),
		f.dollars(res.PriorValue), res.PriorYear,
		f.dollars(res.Value), res.Year)

	if len(res.Series) > 0 {
		b.WriteString(" Values:")
		for _, yv := range res.Series {
			fmt.Fprintf(&b, " %d: %s;", yv.Year, f.dollars(yv.Value))
		}
		return strings.TrimSuffix(b.String(), ";") + "."
	}
	return b.String()
}

// dollars renders a value with a dollar sign and thousands separators,
// keeping the minus sign outside the currency symbol ("-$12,500"). The
// localized printer only ever sees the monetary amount, so years and
// percentages are never grouped.
func (f *Formatter) dollars(v float64) string {
	if v < 0 {
		return f.p.Sprintf("-$%.0f", -v)
	}
	return f.p.Sprintf("$%.0f", v)
}

func joinYears(years []int) string {
	if len(years) == 0 {
		return "n/a"
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprintf("%d", y)
	}
	return strings.Join(parts, ", ")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
