// Package config resolves Lumi's runtime settings. Later sources win:
// built-in defaults, the YAML config file, a .env file in the working
// directory, LUMI_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/lumi/internal/llm"
)

// DefaultListen is the API bind address when none is configured.
const DefaultListen = "127.0.0.1:8787"

// Config is the resolved runtime configuration.
type Config struct {
	// DB is the SQLite file. Empty means the XDG data directory.
	DB string `yaml:"db"`
	// Seed drives every random draw (option shuffles, leaderboard). Zero
	// means a fresh seed per run.
	Seed uint64 `yaml:"seed"`
	// Listen is the API bind address for `lumi serve`.
	Listen string `yaml:"listen"`
	// ContentPack replaces the embedded content pack when set.
	ContentPack string `yaml:"content_pack"`
	// Latency is simulated per-request delay on the static content provider.
	Latency time.Duration `yaml:"latency"`

	Log LogConfig  `yaml:"log"`
	LLM llm.Config `yaml:"llm"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// LoadOptions points Load at its input files.
type LoadOptions struct {
	// Path is the YAML config file. Empty means DefaultPath; a missing
	// default file is not an error, a missing explicit one is.
	Path string
	// EnvFile is the dotenv file. Empty means ".env".
	EnvFile string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Listen: DefaultListen,
		Log:    LogConfig{Mode: "development", Level: "info"},
		LLM:    llm.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/lumi/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lumi", "config.yaml"), nil
}

// DefaultLogPath returns $XDG_STATE_HOME/lumi/lumi.log, where the TUI logs.
func DefaultLogPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "lumi", "lumi.log"), nil
}

// Load resolves the configuration up to, but not including, flags.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if err := loadFile(&cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	llm.Discover(&cfg.LLM)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LUMI_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("LUMI_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid LUMI_SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("LUMI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LUMI_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv("LUMI_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("LUMI_CONTENT_PACK"); v != "" {
		cfg.ContentPack = v
	}
	llm.ApplyEnv(&cfg.LLM)
	return nil
}

// Validate checks settings that Load cannot fix up on its own.
func (c Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.Latency < 0 {
		errs = append(errs, fmt.Errorf("latency %s is negative", c.Latency))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
