package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmmcquay/goban-engine/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "chinese", cfg.Game.RuleSet)
	assert.Equal(t, 19, cfg.Game.BoardSize)
	assert.Equal(t, 0, cfg.Game.Handicap)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.HealthAddr)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 256, cfg.Cache.MaxItems)
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.json")

	data := []byte(`{
		"game": {"ruleSet": "japanese", "komi": 6.5, "boardSize": 13, "handicap": 2},
		"logging": {"level": "debug", "format": "text"},
		"cache": {"enabled": false}
	}`)
	require.NoError(t, os.WriteFile(configPath, data, 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "japanese", cfg.Game.RuleSet)
	assert.Equal(t, 6.5, cfg.Game.Komi)
	assert.Equal(t, 13, cfg.Game.BoardSize)
	assert.Equal(t, 2, cfg.Game.Handicap)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{not json"), 0o644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOBAN_RULE_SET", "aga")
	t.Setenv("GOBAN_KOMI", "7.5")
	t.Setenv("GOBAN_BOARD_SIZE", "9")
	t.Setenv("GOBAN_LOG_LEVEL", "warn")
	t.Setenv("GOBAN_HEALTH_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "aga", cfg.Game.RuleSet)
	assert.Equal(t, 7.5, cfg.Game.Komi)
	assert.Equal(t, 9, cfg.Game.BoardSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, ":9090", cfg.Server.HealthAddr)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown rule set", map[string]string{"GOBAN_RULE_SET": "korean"}},
		{"bad board size", map[string]string{"GOBAN_BOARD_SIZE": "10"}},
		{"negative komi", map[string]string{"GOBAN_KOMI": "-1"}},
		{"handicap too high", map[string]string{"GOBAN_HANDICAP": "10"}},
		{"handicap too high for 9x9", map[string]string{
			"GOBAN_BOARD_SIZE": "9", "GOBAN_HANDICAP": "6",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestRuleSetHelper(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, rules.Chinese, cfg.RuleSet())
}

func TestGetConfigPath_EnvWins(t *testing.T) {
	t.Setenv("GOBAN_ENGINE_CONFIG", "/tmp/custom.json")
	assert.Equal(t, "/tmp/custom.json", GetConfigPath())
}
