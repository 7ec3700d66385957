package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"mvdan.cc/sh/v3/shell"
)

const (
	KeyAPIKey     = "OPENAI_API_KEY"
	KeyModel      = "MODEL_NAME"
	KeyBaseURL    = "OPENAI_BASE_URL"
	KeyCommitArgs = "COMMIT_ARGS"
)

// KnownKeys lists the settings read by the commit flow.
var KnownKeys = []string{KeyAPIKey, KeyModel, KeyBaseURL, KeyCommitArgs}

var requiredKeys = []string{KeyAPIKey, KeyModel}

type MissingSettingError struct {
	Key string
}

func (e *MissingSettingError) Error() string {
	return fmt.Sprintf("%s is not set. Run `cai config %s <value>` or export it in the environment", e.Key, e.Key)
}

// Config is the resolved runtime configuration.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	CommitArgs []string
}

// LLMConfig returns the part of the configuration the API client needs.
func (c *Config) LLMConfig() LLMConfig {
	return LLMConfig{APIKey: c.APIKey, Model: c.Model, BaseURL: c.BaseURL}
}

type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	values := map[string]string{KeyAPIKey: c.APIKey, KeyModel: c.Model}
	for _, k := range requiredKeys {
		if values[k] == "" {
			return &MissingSettingError{Key: k}
		}
	}
	return nil
}

// Overrides collects known keys from a .env file and the process
// environment. The environment wins over the file.
func Overrides(dotenvPath string) (map[string]string, error) {
	out := make(map[string]string)

	if dotenvPath != "" {
		env, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			for _, k := range KnownKeys {
				if v := env[k]; v != "" {
					out[k] = v
				}
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
	}

	for _, k := range KnownKeys {
		if v := os.Getenv(k); v != "" {
			out[k] = v
		}
	}
	return out, nil
}

// Resolve merges persisted settings with overrides.
func Resolve(s *Settings, overrides map[string]string) (*Config, error) {
	get := func(key string) string {
		if v, ok := overrides[key]; ok && v != "" {
			return v
		}
		if s == nil {
			return ""
		}
		v, _ := s.Get(key)
		return v
	}

	cfg := &Config{
		APIKey:  get(KeyAPIKey),
		Model:   get(KeyModel),
		BaseURL: get(KeyBaseURL),
	}

	if raw := get(KeyCommitArgs); raw != "" {
		args, err := shell.Fields(raw, os.Getenv)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", KeyCommitArgs, raw, err)
		}
		cfg.CommitArgs = args
	}

	return cfg, nil
}
