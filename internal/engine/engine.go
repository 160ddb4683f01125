package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/finqa-cli/internal/model"
)

// Augmenter rephrases a rule-based answer through an external
// text-generation service. Implementations never fail: on any transport or
// quota problem they return the fallback unchanged.
type Augmenter interface {
	Augment(ctx context.Context, question string, res *Result, fallback string) string
}

// Engine answers natural-language questions about one metric table. It owns
// the per-run answer cache and processes questions strictly sequentially.
type Engine struct {
	table     *model.MetricTable
	resolver  *Resolver
	formatter *Formatter
	cache     *AnswerCache
	augmenter Augmenter // nil when augmentation is disabled
}

// New creates an engine over the given table. aliases may be nil to use the
// built-in synonym set; augmenter may be nil to answer rule-based only.
func New(table *model.MetricTable, aliases map[string]string, threshold float64, augmenter Augmenter) *Engine {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Engine{
		table:     table,
		resolver:  NewResolver(table, aliases, threshold),
		formatter: NewFormatter(),
		cache:     NewAnswerCache(),
		augmenter: augmenter,
	}
}

// Answer resolves, computes, optionally augments, and caches one question.
// It always produces an answer string; recoverable failures surface as
// status "error" records, never as returned errors.
func (e *Engine) Answer(ctx context.Context, question string) model.AnswerRecord {
	entry := e.cache.GetOrCompute(question, func() CacheEntry {
		return e.answerUncached(ctx, question)
	})

	return model.AnswerRecord{
		Question: question,
		Answer:   entry.Answer,
		Status:   entry.Status,
		Intent:   entry.Intent.String(),
		Metric:   entry.Metric,
	}
}

// Batch answers questions sequentially, reusing cache entries for duplicate
// questions within the batch.
func (e *Engine) Batch(ctx context.Context, questions []string) []model.AnswerRecord {
	records := make([]model.AnswerRecord, 0, len(questions))
	for _, q := range questions {
		records = append(records, e.Answer(ctx, q))
	}
	return records
}

func (e *Engine) answerUncached(ctx context.Context, question string) CacheEntry {
	parsed := Parse(question)
	log := zap.L().With(
		zap.String("intent", parsed.Intent.String()),
		zap.String("metric_phrase", parsed.MetricPhrase),
	)

	if parsed.MetricPhrase == "" {
		log.Debug("no metric phrase extracted")
		return CacheEntry{
			Answer: e.formatter.FormatError(ErrMalformedQuestion),
			Status: model.StatusError,
			Intent: parsed.Intent,
		}
	}

	resolved := ResolvedQuery{ParsedQuery: parsed}
	if metric, ok := e.resolver.Resolve(parsed.MetricPhrase); ok {
		resolved.Metric = metric
	}

	res, err := Compute(e.table, resolved)
	if err != nil {
		log.Debug("computation failed", zap.Error(err))
		return CacheEntry{
			Answer: e.formatter.FormatError(err),
			Status: model.StatusError,
			Intent: parsed.Intent,
			Metric: resolved.Metric,
		}
	}

	answer := e.formatter.Format(res)
	if e.augmenter != nil {
		answer = e.augmenter.Augment(ctx, question, res, answer)
	}

	return CacheEntry{
		Answer: answer,
		Status: model.StatusSuccess,
		Intent: parsed.Intent,
		Metric: resolved.Metric,
	}
}

// Table exposes the loaded table for collaborators (charts, serve handlers).
func (e *Engine) Table() *model.MetricTable {
	return e.table
}
