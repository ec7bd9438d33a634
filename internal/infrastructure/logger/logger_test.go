package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.NotEmpty(t, cfg.TimeFormat)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "production config", cfg: ProductionConfig()},
		{name: "nil config falls back to defaults", cfg: nil},
		{
			name: "debug console",
			cfg: &Config{
				Level:  "debug",
				Format: "console",
				Output: "stdout",
			},
		},
		{
			name: "json to stderr",
			cfg: &Config{
				Level:  "info",
				Format: "json",
				Output: "stderr",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)

			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNewFileSink(t *testing.T) {
	t.Run("writes to a file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")

		logger, err := New(&Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		logger.Info("hello")
		_ = Sync(logger)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "hello")
	})

	t.Run("unwritable path fails", func(t *testing.T) {
		_, err := New(&Config{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "app.log")})

		assert.Error(t, err)
	})
}

func TestConfigLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{Level: tt.level}
			assert.Equal(t, tt.expected, cfg.zapLevel())
		})
	}
}

func TestSync(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)

	// Sync on stdout can fail in some environments; it must not panic
	_ = Sync(logger)
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer

	cfg := &Config{Level: "info", Format: "json"}
	core := zapcore.NewCore(cfg.encoder(), zapcore.AddSync(&buf), cfg.zapLevel())
	logger := zap.New(core)

	logger.Info("test message", zap.String("key", "value"))

	var output map[string]any
	err := json.Unmarshal(buf.Bytes(), &output)
	require.NoError(t, err)

	assert.Equal(t, "test message", output["msg"])
	assert.Equal(t, "info", output["level"])
	assert.Equal(t, "value", output["key"])
	assert.NotEmpty(t, output["time"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	cfg := &Config{Level: "info", Format: "json"}
	core := zapcore.NewCore(cfg.encoder(), zapcore.AddSync(&buf), cfg.zapLevel())
	logger := zap.New(core)

	logger.Debug("debug message")
	assert.Empty(t, buf.String())

	logger.Info("info message")
	assert.Contains(t, buf.String(), "info message")
}
