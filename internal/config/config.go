// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Augment  AugmentConfig  `yaml:"augment" mapstructure:"augment"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig configures where the metric table is loaded from.
type DataConfig struct {
	// Source is a local path or an http(s)/ftp URL to a CSV or XLSX file.
	Source      string `yaml:"source" mapstructure:"source"`
	SheetIndex  int    `yaml:"sheet_index" mapstructure:"sheet_index"`
	Questions   string `yaml:"questions" mapstructure:"questions"`
	AliasesFile string `yaml:"aliases_file" mapstructure:"aliases_file"`
}

// ResolverConfig configures fuzzy metric resolution.
type ResolverConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// AugmentConfig configures the LLM augmentation gateway.
type AugmentConfig struct {
	Enabled         bool    `yaml:"enabled" mapstructure:"enabled"`
	Provider        string  `yaml:"provider" mapstructure:"provider"` // "openrouter" or "anthropic"
	Model           string  `yaml:"model" mapstructure:"model"`
	APIKey          string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec" mapstructure:"rate_limit_per_sec"`
}

// OutputConfig configures report and chart destinations.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	ReportFile string `yaml:"report_file" mapstructure:"report_file"`
	ChartDir   string `yaml:"chart_dir" mapstructure:"chart_dir"`
}

// StoreConfig configures the optional run-history database.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "sqlite", "postgres", or "off"
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the question-answering HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FINQA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.source", "sample_data.csv")
	v.SetDefault("data.sheet_index", 0)
	v.SetDefault("data.questions", "questions.txt")
	v.SetDefault("resolver.similarity_threshold", 0.6)
	v.SetDefault("augment.enabled", true)
	v.SetDefault("augment.provider", "openrouter")
	v.SetDefault("augment.model", "mistralai/devstral-2512:free")
	v.SetDefault("augment.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("augment.temperature", 0.3)
	v.SetDefault("augment.timeout_secs", 15)
	v.SetDefault("augment.rate_limit_per_sec", 2)
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.report_file", "financial_analysis_report.json")
	v.SetDefault("output.chart_dir", "output/charts")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "output/finqa.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
