// Package config loads application configuration from file and
// environment and initializes the global logger.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Audit  AuditConfig  `yaml:"audit" mapstructure:"audit"`
}

// StoreConfig configures the report persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP audit server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AuditConfig holds the tunable audit knobs: the default document
// language, the optional rule catalog override file, batch concurrency,
// and phase weighting for site scoring.
type AuditConfig struct {
	Language      string `yaml:"language" mapstructure:"language"`
	CatalogPath   string `yaml:"catalog_path" mapstructure:"catalog_path"`
	Concurrency   int    `yaml:"concurrency" mapstructure:"concurrency"`

	// Site score weights; must sum to 1.
	PageScoreWeight    float64 `yaml:"page_score_weight" mapstructure:"page_score_weight"`
	ConsistencyWeight  float64 `yaml:"consistency_weight" mapstructure:"consistency_weight"`
	PhaseBalanceWeight float64 `yaml:"phase_balance_weight" mapstructure:"phase_balance_weight"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "audit.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 10)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("audit.language", "en")
	v.SetDefault("audit.concurrency", 4)
	v.SetDefault("audit.page_score_weight", 0.6)
	v.SetDefault("audit.consistency_weight", 0.2)
	v.SetDefault("audit.phase_balance_weight", 0.2)

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

// ValidateAudit checks that an AuditConfig is internally consistent.
func ValidateAudit(c AuditConfig) error {
	var errs []string

	if c.Concurrency < 1 {
		errs = append(errs, "concurrency must be >= 1")
	}
	for name, w := range map[string]float64{
		"page_score_weight":    c.PageScoreWeight,
		"consistency_weight":   c.ConsistencyWeight,
		"phase_balance_weight": c.PhaseBalanceWeight,
	} {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}
	sum := c.PageScoreWeight + c.ConsistencyWeight + c.PhaseBalanceWeight
	if math.Abs(sum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("site score weights should sum to 1, got %.2f", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: audit validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
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
