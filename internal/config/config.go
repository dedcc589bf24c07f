// Package config provides configuration loading for CodeGate.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (CODEGATE_*) > config file (~/.codegate.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// OpenAI holds the LLM reviewer settings.
type OpenAI struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// Cache holds report-cache settings.
type Cache struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// History holds scan-history settings.
type History struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Config holds all CodeGate configuration options.
type Config struct {
	OutputFormat string        `mapstructure:"output_format" yaml:"output_format"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	OpenAI       OpenAI        `mapstructure:"openai" yaml:"openai"`
	Cache        Cache         `mapstructure:"cache" yaml:"cache"`
	History      History       `mapstructure:"history" yaml:"history"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat: "table",
		Timeout:      60 * time.Second,
		OpenAI: OpenAI{
			Model: "gpt-4o-mini",
		},
		Cache: Cache{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		History: History{
			Enabled: true,
		},
	}
}

// Load reads configuration from ~/.codegate.yaml and environment variables.
// It does NOT apply CLI flag overrides — call ApplyFlags for that.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".codegate")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)

	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return unmarshal(v)
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		val, _ := flags.GetString("output")
		cfg.OutputFormat = val
	}
	if flags.Changed("timeout") {
		val, _ := flags.GetDuration("timeout")
		cfg.Timeout = val
	}
	if flags.Changed("model") {
		val, _ := flags.GetString("model")
		cfg.OpenAI.Model = val
	}
	if flags.Changed("no-cache") {
		val, _ := flags.GetBool("no-cache")
		cfg.Cache.Enabled = !val
	}
}

// ConfigFilePath returns the default config file path (~/.codegate.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codegate.yaml"
	}
	return filepath.Join(home, ".codegate.yaml")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("CODEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional variable works alongside CODEGATE_OPENAI_API_KEY.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		v.SetDefault("openai.api_key", key)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "table")
	v.SetDefault("timeout", 60*time.Second)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("history.enabled", true)
}
