// Package config resolves the process configuration once at startup from
// the environment, an optional YAML settings file, and hardcoded defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the environment nor the settings file
// supplies a value.
const (
	DefaultModel        = "gemini-2.0-flash"
	DefaultBaseURL      = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultSystemPrompt = "You are a concise, helpful chatbot for BotCampus.ai. " +
		"Answer briefly, use plain English, and include code blocks when helpful."
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 1024

	// DefaultSettingsFile is the settings file discovered in the working
	// directory when no -config flag is given.
	DefaultSettingsFile = "gemini-chat.yaml"
)

// Config holds all runtime configuration for the chat client. It is
// resolved once at process start and never mutated afterwards.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
	Verbose      bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Model:        DefaultModel,
		BaseURL:      DefaultBaseURL,
		SystemPrompt: DefaultSystemPrompt,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
	}
}

// settingsFile is the YAML schema of the optional settings file. Pointer
// fields distinguish "not set" from a zero value.
type settingsFile struct {
	APIKey       string   `yaml:"api_key"`
	Model        string   `yaml:"model"`
	BaseURL      string   `yaml:"base_url"`
	SystemPrompt string   `yaml:"system_prompt"`
	Temperature  *float64 `yaml:"temperature"`
	MaxTokens    *int     `yaml:"max_tokens"`
}

// Load resolves the configuration. Per field the trimmed environment value
// wins, then the settings file, then the default. settingsPath selects an
// explicit settings file; when empty, DefaultSettingsFile is used if it
// exists and silently skipped otherwise. An explicit path that cannot be
// read or parsed is an error.
func Load(settingsPath string) (Config, error) {
	cfg := DefaultConfig()

	file, err := loadSettings(settingsPath)
	if err != nil {
		return Config{}, err
	}
	applySettings(&cfg, file)
	applyEnv(&cfg)

	cfg = Normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadSettings reads and parses the settings file. Raw bytes pass through
// os.ExpandEnv before unmarshalling so ${VAR} references resolve from the
// environment and secrets can stay out of the file.
func loadSettings(path string) (settingsFile, error) {
	discovered := path == ""
	if discovered {
		path = DefaultSettingsFile
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if discovered && errors.Is(err, os.ErrNotExist) {
			return settingsFile{}, nil
		}
		return settingsFile{}, fmt.Errorf("read settings file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &file); err != nil {
		return settingsFile{}, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return file, nil
}

func applySettings(cfg *Config, file settingsFile) {
	if v := strings.TrimSpace(file.APIKey); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(file.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(file.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(file.SystemPrompt); v != "" {
		cfg.SystemPrompt = v
	}
	if file.Temperature != nil {
		cfg.Temperature = *file.Temperature
	}
	if file.MaxTokens != nil {
		cfg.MaxTokens = *file.MaxTokens
	}
}

// applyEnv overlays environment values. Numeric strings that do not parse
// silently resolve to the default instead of failing.
func applyEnv(cfg *Config) {
	if v := envString("GOOGLE_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := envString("GOOGLE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := envString("GOOGLE_OPENAI_COMPAT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := envString("SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}
	if v := envString("TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			t = DefaultTemperature
		}
		cfg.Temperature = t
	}
	if v := envString("MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			n = DefaultMaxTokens
		}
		cfg.MaxTokens = n
	}
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// Normalize sanitizes configuration values and applies defaults. The base
// URL loses any trailing slash; a temperature outside [0, 2] and a
// non-positive max-tokens fall back to their defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.SystemPrompt = strings.TrimSpace(cfg.SystemPrompt)

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return cfg
}

// Validate reports whether the configuration can start the client. The API
// key is the only mandatory field.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("missing GOOGLE_API_KEY: set it in the environment or your .env file")
	}
	return nil
}
