package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/finqa-cli/internal/augment"
	"github.com/sells-group/finqa-cli/internal/dataset"
	"github.com/sells-group/finqa-cli/internal/engine"
	"github.com/sells-group/finqa-cli/internal/model"
	"github.com/sells-group/finqa-cli/internal/resilience"
	"github.com/sells-group/finqa-cli/pkg/anthropic"
	"github.com/sells-group/finqa-cli/pkg/openrouter"
)

// qaEnv bundles the loaded table and engine shared by the commands.
type qaEnv struct {
	Table  *model.MetricTable
	Engine *engine.Engine
	// ModelName is the augmentation model id, or "rule-based".
	ModelName string
}

// initEnv loads the dataset and wires the engine per configuration. The
// quota latch is created here so each invocation owns its own breaker.
func initEnv(ctx context.Context) (*qaEnv, error) {
	table, err := dataset.Load(ctx, cfg.Data)
	if err != nil {
		return nil, eris.Wrap(err, "init: load dataset")
	}

	aliases := engine.DefaultAliases()
	if cfg.Data.AliasesFile != "" {
		overrides, err := dataset.LoadAliases(cfg.Data.AliasesFile)
		if err != nil {
			return nil, eris.Wrap(err, "init: load aliases")
		}
		for k, v := range overrides {
			aliases[k] = v
		}
	}

	augmenter, modelName := buildAugmenter()
	eng := engine.New(table, aliases, cfg.Resolver.SimilarityThreshold, augmenter)

	return &qaEnv{Table: table, Engine: eng, ModelName: modelName}, nil
}

// buildAugmenter returns nil when augmentation is disabled or unconfigured.
func buildAugmenter() (engine.Augmenter, string) {
	ac := cfg.Augment
	if !ac.Enabled || ac.APIKey == "" {
		if ac.Enabled {
			zap.L().Warn("augmentation enabled but no API key configured, using rule-based answers")
		}
		return nil, "rule-based"
	}

	var chat augment.ChatClient
	switch ac.Provider {
	case "anthropic":
		chat = &augment.AnthropicChat{
			Client:      anthropic.NewClient(ac.APIKey),
			Model:       ac.Model,
			Temperature: ac.Temperature,
		}
	default:
		opts := []openrouter.Option{
			openrouter.WithModel(ac.Model),
			openrouter.WithReferer("http://localhost", "Financial QA Bot"),
		}
		if ac.BaseURL != "" {
			opts = append(opts, openrouter.WithBaseURL(ac.BaseURL))
		}
		chat = &augment.OpenRouterChat{
			Client:      openrouter.NewClient(ac.APIKey, opts...),
			Model:       ac.Model,
			Temperature: ac.Temperature,
		}
	}

	latch := resilience.NewQuotaLatch(func() {
		zap.L().Warn("rate limit hit, LLM disabled for the remainder of this run")
	})

	gateway := augment.NewGateway(chat, latch,
		augment.WithTimeout(time.Duration(ac.TimeoutSecs)*time.Second),
		augment.WithRateLimit(ac.RateLimitPerSec),
	)
	return gateway, ac.Model
}
