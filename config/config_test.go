package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port int `env:"DUELCORE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DUELCORE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "me", cfg.Me)
	assert.Equal(t, "aggro", cfg.Strategy)
	assert.Equal(t, 16, cfg.MaxBranches)
	assert.Equal(t, 4096, cfg.SearchNodes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Empty(t, cfg.StrategyDir)
}

func TestLoad_DotenvFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "duel.env")
	body := "DUELCORE_ME=nathoo\nDUELCORE_MAX_BRANCHES=4\nDUELCORE_LOG_JSON=true\n"
	require.NoError(t, os.WriteFile(f, []byte(body), 0o644))

	// godotenv sets variables for the whole process; register cleanup
	// through t.Setenv so they are restored afterwards.
	t.Setenv("DUELCORE_ME", "")
	os.Unsetenv("DUELCORE_ME")
	t.Setenv("DUELCORE_MAX_BRANCHES", "")
	os.Unsetenv("DUELCORE_MAX_BRANCHES")
	t.Setenv("DUELCORE_LOG_JSON", "")
	os.Unsetenv("DUELCORE_LOG_JSON")

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, "nathoo", cfg.Me)
	assert.Equal(t, 4, cfg.MaxBranches)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_EnvironmentWinsOverDotenv(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "duel.env")
	require.NoError(t, os.WriteFile(f, []byte("DUELCORE_STRATEGY=limbs\n"), 0o644))
	t.Setenv("DUELCORE_STRATEGY", "aggro")

	cfg, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, "aggro", cfg.Strategy)
}

func TestValidate(t *testing.T) {
	base := Config{Me: "me", MaxBranches: 1, SearchNodes: 1, LogLevel: "info"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty me", func(c *Config) { c.Me = "" }},
		{"zero branches", func(c *Config) { c.MaxBranches = 0 }},
		{"zero search nodes", func(c *Config) { c.SearchNodes = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"missing strategy dir", func(c *Config) { c.StrategyDir = "/does/not/exist" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidate_StrategyDirMustBeDirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "plans.lua")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	c := Config{Me: "me", MaxBranches: 1, SearchNodes: 1, LogLevel: "info", StrategyDir: f}
	assert.ErrorContains(t, c.Validate(), "not a directory")
}

func TestLogger(t *testing.T) {
	log := Config{LogLevel: "debug", LogJSON: true}.Logger()
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = Config{LogLevel: "warn"}.Logger()
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}
