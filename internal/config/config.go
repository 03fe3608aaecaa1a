// Package config resolves vitals settings from defaults, an optional YAML
// file, a .env file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/vitals/internal/llm"
	"github.com/alexanderramin/vitals/internal/oura"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	dirName        = ".vitals"
	configFileName = "config.yaml"
	dbFileName     = "vitals.db"
	historyFile    = "shell_history"
)

// Config is the effective configuration.
type Config struct {
	// Path is the YAML file the config was read from, whether or not it exists.
	Path   string
	DBPath string
	LLM    llm.LLMConfig
	Oura   oura.Config
}

// fileConfig mirrors config.yaml. Pointers distinguish "unset" from zero.
type fileConfig struct {
	DBPath string   `yaml:"db_path,omitempty"`
	LLM    fileLLM  `yaml:"llm,omitempty"`
	Oura   fileOura `yaml:"oura,omitempty"`
}

type fileLLM struct {
	Enabled     *bool    `yaml:"enabled,omitempty"`
	LogCalls    *bool    `yaml:"log_calls,omitempty"`
	Provider    string   `yaml:"provider,omitempty"`
	Endpoint    string   `yaml:"endpoint,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	APIKey      string   `yaml:"api_key,omitempty"`
	TimeoutMs   *int     `yaml:"timeout_ms,omitempty"`
	MaxRetries  *int     `yaml:"max_retries,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

type fileOura struct {
	Token      string `yaml:"token,omitempty"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	TimeoutSec *int   `yaml:"timeout_sec,omitempty"`
}

// Dir returns the vitals home directory: $VITALS_HOME or ~/.vitals.
func Dir() (string, error) {
	if v := os.Getenv("VITALS_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns $VITALS_CONFIG or <Dir>/config.yaml.
func DefaultPath() (string, error) {
	if v := os.Getenv("VITALS_CONFIG"); v != "" {
		return v, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// HistoryPath is where the interactive shell keeps its history.
func HistoryPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyFile), nil
}

// Load reads .env from the working directory (never overriding variables
// that are already set) and then resolves the config from DefaultPath.
func Load() (Config, error) {
	_ = godotenv.Load()

	path, err := DefaultPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom resolves the config using path as the YAML file. A missing file
// is not an error; a malformed one is.
func LoadFrom(path string) (Config, error) {
	cfg := Config{Path: path, LLM: llm.DefaultConfig()}

	fc, err := readFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	applyFile(&cfg, fc)

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	cfg.DBPath = fc.DBPath

	l := fc.LLM
	if l.Provider != "" {
		cfg.LLM.SetProvider(llm.Provider(strings.ToLower(l.Provider)))
	}
	if l.Enabled != nil {
		cfg.LLM.Enabled = *l.Enabled
	}
	if l.LogCalls != nil {
		cfg.LLM.LogCalls = *l.LogCalls
	}
	cfg.LLM.Endpoint = firstNonEmpty(strings.TrimRight(l.Endpoint, "/"), cfg.LLM.Endpoint)
	cfg.LLM.Model = firstNonEmpty(l.Model, cfg.LLM.Model)
	cfg.LLM.APIKey = firstNonEmpty(l.APIKey, cfg.LLM.APIKey)
	if l.TimeoutMs != nil && *l.TimeoutMs > 0 {
		cfg.LLM.TimeoutMs = *l.TimeoutMs
	}
	if l.MaxRetries != nil && *l.MaxRetries >= 0 {
		cfg.LLM.MaxRetries = *l.MaxRetries
	}
	if l.Temperature != nil {
		tc := cfg.LLM.Tasks[llm.TaskCommand]
		tc.Temperature = *l.Temperature
		cfg.LLM.Tasks[llm.TaskCommand] = tc
	}

	cfg.Oura.Token = fc.Oura.Token
	cfg.Oura.Endpoint = strings.TrimRight(fc.Oura.Endpoint, "/")
	if fc.Oura.TimeoutSec != nil && *fc.Oura.TimeoutSec > 0 {
		cfg.Oura.Timeout = time.Duration(*fc.Oura.TimeoutSec) * time.Second
	}
}

func applyEnv(cfg *Config) error {
	llm.ApplyEnv(&cfg.LLM)

	cfg.DBPath = firstNonEmpty(os.Getenv("VITALS_DB"), cfg.DBPath)
	if cfg.DBPath == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		cfg.DBPath = filepath.Join(dir, dbFileName)
	}

	cfg.Oura.Token = firstNonEmpty(os.Getenv("VITALS_OURA_TOKEN"), os.Getenv("OURA_TOKEN"), cfg.Oura.Token)
	cfg.Oura.Endpoint = firstNonEmpty(strings.TrimRight(os.Getenv("VITALS_OURA_ENDPOINT"), "/"), cfg.Oura.Endpoint)
	if v := os.Getenv("VITALS_OURA_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Oura.Timeout = time.Duration(n) * time.Second
		}
	}
	return nil
}

// Save writes cfg to path as YAML, creating the directory as needed. The
// file holds secrets, so it is written 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(toFile(cfg))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

func toFile(cfg Config) fileConfig {
	enabled := cfg.LLM.Enabled
	timeout := cfg.LLM.TimeoutMs
	retries := cfg.LLM.MaxRetries
	temp := cfg.LLM.Tasks[llm.TaskCommand].Temperature
	fc := fileConfig{
		DBPath: cfg.DBPath,
		LLM: fileLLM{
			Enabled:     &enabled,
			Provider:    string(cfg.LLM.Provider),
			Endpoint:    cfg.LLM.Endpoint,
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			TimeoutMs:   &timeout,
			MaxRetries:  &retries,
			Temperature: &temp,
		},
		Oura: fileOura{
			Token:    cfg.Oura.Token,
			Endpoint: cfg.Oura.Endpoint,
		},
	}
	if cfg.Oura.Timeout > 0 {
		secs := int(cfg.Oura.Timeout / time.Second)
		fc.Oura.TimeoutSec = &secs
	}
	return fc
}

// Redacted returns a copy with secrets masked, for display.
func (c Config) Redacted() Config {
	out := c
	out.LLM.APIKey = mask(c.LLM.APIKey)
	out.Oura.Token = mask(c.Oura.Token)
	return out
}

func mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return secret[:4] + "****"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
