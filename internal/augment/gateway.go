// Package augment sends structured answers through an external
// text-generation service, with quota latching and an unconditional
// rule-based fallback.
package augment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/finqa-cli/internal/engine"
	"github.com/sells-group/finqa-cli/internal/resilience"
)

// ChatClient is the minimal surface the gateway needs from a provider.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Option configures the gateway.
type Option func(*Gateway)

// WithTimeout bounds each augmentation call. Default 15s.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithRateLimit paces outbound calls (requests per second).
func WithRateLimit(rps float64) Option {
	return func(g *Gateway) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// Gateway implements engine.Augmenter over a ChatClient. It never returns an
// error: any transport, quota, or response problem yields the fallback. A
// tripped quota latch skips the network entirely for the rest of the run.
type Gateway struct {
	chat    ChatClient
	latch   *resilience.QuotaLatch
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGateway creates a gateway using the given provider client and run-owned
// quota latch.
func NewGateway(chat ChatClient, latch *resilience.QuotaLatch, opts ...Option) *Gateway {
	g := &Gateway{
		chat:    chat,
		latch:   latch,
		timeout: 15 * time.Second,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Augment sends the question plus a compact table context to the provider
// and returns the trimmed response, or fallback on any failure.
func (g *Gateway) Augment(ctx context.Context, question string, res *engine.Result, fallback string) string {
	if g.latch.Tripped() {
		return fallback
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fallback
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	answer, err := g.chat.Complete(callCtx, systemRole, BuildPrompt(question, res))
	if err != nil {
		if resilience.IsQuotaExceeded(err) {
			g.latch.Trip()
			zap.L().Warn("augmentation quota exceeded, disabling LLM for this run", zap.Error(err))
		} else {
			zap.L().Warn("augmentation failed, using rule-based answer", zap.Error(err))
		}
		return fallback
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		zap.L().Warn("augmentation returned empty response, using rule-based answer")
		return fallback
	}
	return answer
}
