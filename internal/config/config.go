package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Providers ProvidersConfig `yaml:"providers"`
	NLI       NLIConfig       `yaml:"nli"`
	Events    EventsConfig    `yaml:"events"`
	Bot       BotConfig       `yaml:"bot"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig holds logging and transcript settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// ProvidersConfig holds git provider configurations.
type ProvidersConfig struct {
	GitHub ProviderConfig `yaml:"github"`
	GitLab ProviderConfig `yaml:"gitlab"`
}

// ProviderConfig holds the settings shared by every git provider.
type ProviderConfig struct {
	Token         string `yaml:"token"`
	WebhookSecret string `yaml:"webhook_secret"`
	BaseURL       string `yaml:"base_url"`
}

// NLIConfig selects and configures the interpretation backend.
type NLIConfig struct {
	Strategy string      `yaml:"strategy"`
	Olami    OlamiConfig `yaml:"olami"`
}

// OlamiConfig holds the OLAMI cloud service credentials.
type OlamiConfig struct {
	AppKey         string `yaml:"app_key"`
	AppSecret      string `yaml:"app_secret"`
	CustomerID     string `yaml:"customer_id"`
	InputType      int    `yaml:"input_type"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout for NLI calls.
func (c OlamiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EventsConfig controls which comment events the bot reacts to.
type EventsConfig struct {
	Comment bool `yaml:"comment"`
	Mention bool `yaml:"mention"`
}

// BotConfig holds conversational settings.
type BotConfig struct {
	Mention            string `yaml:"mention"`
	DebounceSeconds    int    `yaml:"debounce_seconds"`
	FallbackReply      string `yaml:"fallback_reply"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 7000,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Dir:           "/var/log/nlibot",
			RetentionDays: 30,
		},
		NLI: NLIConfig{
			Strategy: "olami",
			Olami: OlamiConfig{
				InputType:      1,
				TimeoutSeconds: 10,
			},
		},
		Events: EventsConfig{
			Mention: true,
		},
		Bot: BotConfig{
			Mention:            "@nlibot",
			DebounceSeconds:    60,
			FallbackReply:      "Sorry, I did not understand that.",
			RateLimitPerMinute: 60,
		},
	}
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Substitute environment variables
	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})

	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the service cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.NLI.Strategy == "olami" || c.NLI.Strategy == "" {
		if c.NLI.Olami.AppKey == "" {
			errs = append(errs, errors.New("nli.olami.app_key is required"))
		}
		if c.NLI.Olami.AppSecret == "" {
			errs = append(errs, errors.New("nli.olami.app_secret is required"))
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	return errors.Join(errs...)
}
