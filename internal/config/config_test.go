package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp tree and clears the
// variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"LUMI_DB", "LUMI_SEED", "LUMI_LOG_LEVEL", "LUMI_LOG_MODE", "LUMI_LISTEN",
		"LUMI_CONTENT_PACK", "LUMI_LLM_PROVIDER", "LUMI_GEMINI_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.LLM.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "lumi", "config.yaml"), `
db: /tmp/lumi-test.db
seed: 7
latency: 250ms
log:
  level: debug
llm:
  provider: mock
`)
	t.Setenv("LUMI_SEED", "42")
	t.Setenv("LUMI_LISTEN", "0.0.0.0:9000")

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lumi-test.db", cfg.DB)
	assert.Equal(t, uint64(42), cfg.Seed, "env overrides file")
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, 250*time.Millisecond, cfg.Latency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Gemini.Model, "defaults survive partial files")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(LoadOptions{Path: filepath.Join(dir, "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadBadSeed(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LUMI_SEED", "abc")
	_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	assert.ErrorContains(t, err, "LUMI_SEED")
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	env := filepath.Join(dir, "test.env")
	writeFile(t, env, "LUMI_LOG_LEVEL=warn\nLUMI_GEMINI_API_KEY=k-123\nLUMI_LLM_PROVIDER=gemini\n")
	t.Cleanup(func() {
		os.Unsetenv("LUMI_LOG_LEVEL")
		os.Unsetenv("LUMI_GEMINI_API_KEY")
		os.Unsetenv("LUMI_LLM_PROVIDER")
	})

	cfg, err := Load(LoadOptions{EnvFile: env})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "k-123", cfg.LLM.Gemini.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDiscoversProvider(t *testing.T) {
	dir := isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Listen = ""
	cfg.Latency = -time.Second
	cfg.LLM.Provider = "anthropic"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "listen")
	assert.ErrorContains(t, err, "latency")
	assert.ErrorContains(t, err, "LUMI_ANTHROPIC_API_KEY")
}
