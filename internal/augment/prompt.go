package augment

import (
	"fmt"
	"strings"

	"github.com/sells-group/finqa-cli/internal/engine"
	"github.com/sells-group/finqa-cli/internal/model"
)

const systemRole = "You are a helpful financial analyst. Given financial data, answer clearly and concisely."

// BuildPrompt renders a bounded prompt: a compact textual rendering of only
// the rows relevant to the computation, followed by the original question.
// The whole table is never sent.
func BuildPrompt(question string, res *engine.Result) string {
	var b strings.Builder
	b.WriteString("Given this data:\n\n")
	b.WriteString(tableContext(res))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nProvide a clear, professional answer.")
	return b.String()
}

func tableContext(res *engine.Result) string {
	if res == nil {
		return "No specific data found for this query."
	}

	display := model.DisplayName(res.Metric)

	if len(res.Series) > 0 {
		lines := make([]string, 0, len(res.Series))
		for _, yv := range res.Series {
			lines = append(lines, fmt.Sprintf("%s in %d: $%.0f", display, yv.Year, yv.Value))
		}
		return strings.Join(lines, "\n")
	}

	return fmt.Sprintf("%s in %d: $%.0f", display, res.Year, res.Value)
}
