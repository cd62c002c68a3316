// Package config loads process configuration from flags, environment and an
// optional config file. Precedence: flag > INTERVUE_* env > file > default.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/intervue/internal/llm"
)

// Config is everything the server and CLI need to run.
type Config struct {
	// Listen is the HTTP bind address.
	Listen string `mapstructure:"listen"`

	// DBPath is the sqlite database file. Empty means the per-user default.
	DBPath string `mapstructure:"db"`

	Debug    bool `mapstructure:"debug"`
	JSONLogs bool `mapstructure:"json"`

	LLM LLMConfig `mapstructure:"llm"`
}

// LLMConfig selects and tunes the evaluation backend. When Provider and the
// ambient API key env vars are all empty the engine runs on deterministic
// fallbacks.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api-key"`
	BaseURL  string `mapstructure:"base-url"`
	// Models is a comma-separated candidate chain, first supported wins.
	Models  string        `mapstructure:"models"`
	Timeout time.Duration `mapstructure:"timeout"`
}

const envPrefix = "INTERVUE"

// Init wires viper's defaults and environment binding. Call once before any
// flag binding in the command layer.
func Init(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the optional config file and unmarshals the final view.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("intervue")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing default config file is fine; an explicit one is not.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LLMProviderConfig resolves the evaluation backend configuration. Explicit
// settings win; otherwise the standard API key env vars are probed. The
// second return is false when no backend is configured at all.
func (c *Config) LLMProviderConfig() (llm.Config, bool) {
	if c.LLM.Provider == "" && c.LLM.APIKey == "" {
		return llm.DiscoverConfig()
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.APIKey = c.LLM.APIKey
	cfg.BaseURL = c.LLM.BaseURL
	cfg.Models = llm.ParseModelList(c.LLM.Models)
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	return cfg, true
}
