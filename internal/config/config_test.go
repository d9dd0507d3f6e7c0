package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"APP_ENV", "DB_PATH", "DB_DRIVER", "REDIS_ADDR", "GRPC_PORT",
			"GRPC_REFLECTION_ENABLED", "CATALOG_PATH", "HISTORY_ENABLED", "OUTPUT_DPI"} {
			t.Setenv(k, "")
		}

		cfg := LoadFromEnv()

		assert.Equal(t, &Config{
			AppEnv:    "development",
			DBPath:    "./data/wheel.db",
			DBDriver:  "sqlite3",
			GRPCPort:  50051,
			OutputDPI: 300,
		}, cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("DB_PATH", "/tmp/w.db")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("GRPC_PORT", "6000")
		t.Setenv("GRPC_REFLECTION_ENABLED", "true")
		t.Setenv("CATALOG_PATH", "questions.yaml")
		t.Setenv("HISTORY_ENABLED", "1")
		t.Setenv("OUTPUT_DPI", "150")

		cfg := LoadFromEnv()

		assert.Equal(t, "production", cfg.AppEnv)
		assert.Equal(t, "/tmp/w.db", cfg.DBPath)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 6000, cfg.GRPCPort)
		assert.True(t, cfg.GRPCReflectionEnabled)
		assert.Equal(t, "questions.yaml", cfg.CatalogPath)
		assert.True(t, cfg.HistoryEnabled)
		assert.Equal(t, 150.0, cfg.OutputDPI)
	})

	t.Run("unparsable values fall back", func(t *testing.T) {
		t.Setenv("GRPC_PORT", "abc")
		t.Setenv("HISTORY_ENABLED", "maybe")
		t.Setenv("OUTPUT_DPI", "-5")

		cfg := LoadFromEnv()

		assert.Equal(t, 50051, cfg.GRPCPort)
		assert.False(t, cfg.HistoryEnabled)
		assert.Equal(t, 300.0, cfg.OutputDPI)
	})
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		verbose bool
		debug   bool
	}{
		{name: "development", env: "development", debug: false},
		{name: "development verbose", env: "development", verbose: true, debug: true},
		{name: "production", env: "production", debug: false},
		{name: "production verbose", env: "production", verbose: true, debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(&Config{AppEnv: tt.env}, tt.verbose)
			require.NoError(t, err)

			assert.Equal(t, tt.debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		})
	}
}
