package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "audit.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RatePerSecond)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "en", cfg.Audit.Language)
	assert.Equal(t, 4, cfg.Audit.Concurrency)
	assert.Equal(t, 0.6, cfg.Audit.PageScoreWeight)
	assert.Equal(t, 0.2, cfg.Audit.ConsistencyWeight)
	assert.Equal(t, 0.2, cfg.Audit.PhaseBalanceWeight)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("AUDIT_STORE_DRIVER", "postgres")
	t.Setenv("AUDIT_AUDIT_LANGUAGE", "nl")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "nl", cfg.Audit.Language)
}

func TestValidateAudit(t *testing.T) {
	valid := AuditConfig{
		Language:           "en",
		Concurrency:        4,
		PageScoreWeight:    0.6,
		ConsistencyWeight:  0.2,
		PhaseBalanceWeight: 0.2,
	}
	assert.NoError(t, ValidateAudit(valid))

	tests := []struct {
		name   string
		mutate func(*AuditConfig)
	}{
		{"zero concurrency", func(c *AuditConfig) { c.Concurrency = 0 }},
		{"negative weight", func(c *AuditConfig) { c.PageScoreWeight = -0.1 }},
		{"weights do not sum to one", func(c *AuditConfig) { c.PageScoreWeight = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, ValidateAudit(c))
		})
	}
}

func TestValidateAuditWeightTolerance(t *testing.T) {
	// Floating point sums within 0.01 of 1 are accepted.
	c := AuditConfig{
		Concurrency:        1,
		PageScoreWeight:    0.33,
		ConsistencyWeight:  0.33,
		PhaseBalanceWeight: 0.335,
	}
	assert.NoError(t, ValidateAudit(c))
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nonsense", Format: "json"}))
}
