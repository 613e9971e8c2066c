package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for delinq-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. Secrets
// (database password, model API key) must only come from environment
// variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL holding the delinquency tables)
	Database DatabaseConfig `yaml:"database"`

	// AI model endpoint configuration
	AI AIConfig `yaml:"ai"`

	// Chat pipeline configuration
	Chat ChatConfig `yaml:"chat"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"5"`
}

// Supported AI providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// AIConfig holds the external model endpoint configuration.
type AIConfig struct {
	// Provider selects the client implementation: "openai" for any
	// OpenAI-compatible endpoint, "anthropic" for the Anthropic API.
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL  string `yaml:"base_url" env:"AI_BASE_URL" env-default:"https://api.deepseek.com"`
	Model    string `yaml:"model" env:"AI_MODEL" env-default:"deepseek-chat"`
	APIKey   string `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML

	// RequestTimeout bounds every model round-trip. Expiry is reported as a
	// recoverable turn-level error, never an indefinite hang.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"AI_REQUEST_TIMEOUT" env-default:"60s"`
}

// ChatConfig holds pipeline tuning knobs.
type ChatConfig struct {
	// FactTable and ProjectionTable name the two external tables the engine
	// reads. They are never written.
	FactTable       string `yaml:"fact_table" env:"CHAT_FACT_TABLE" env-default:"table_agg_inad_consolidado"`
	ProjectionTable string `yaml:"projection_table" env:"CHAT_PROJECTION_TABLE" env-default:"projecao_consolidado"`

	// InsightSampleLimit bounds the sample used to build the cached insight
	// report for a session.
	InsightSampleLimit int `yaml:"insight_sample_limit" env:"CHAT_INSIGHT_SAMPLE_LIMIT" env-default:"100"`

	// MaxResultRows caps rows returned by a synthesized query before it is
	// serialized into the answer-composition prompt.
	MaxResultRows int `yaml:"max_result_rows" env:"CHAT_MAX_RESULT_ROWS" env-default:"200"`

	// HistoryWindow is the number of recent turns supplied as context on the
	// GENERAL conversational path.
	HistoryWindow int `yaml:"history_window" env:"CHAT_HISTORY_WINDOW" env-default:"20"`

	// EnforceReadOnly enables the execution-boundary guard that rejects
	// synthesized statements other than single SELECT/WITH queries. Off by
	// default: synthesized SQL passes through verbatim, matching the
	// original pipeline.
	EnforceReadOnly bool `yaml:"enforce_read_only" env:"CHAT_ENFORCE_READ_ONLY" env-default:"false"`

	// TypingInterval is the delay between typing-prefix snapshots emitted
	// while rendering an answer. Zero disables the typing stream.
	TypingInterval time.Duration `yaml:"typing_interval" env:"CHAT_TYPING_INTERVAL" env-default:"10ms"`

	// TypingChunkRunes is how many runes each typing snapshot grows by.
	TypingChunkRunes int `yaml:"typing_chunk_runes" env:"CHAT_TYPING_CHUNK_RUNES" env-default:"3"`
}

// Load reads configuration from config.yaml with environment variable
// overrides and validates required values. The version parameter is injected
// at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every required connection and credential value is
// present. A failure here is fatal at startup; the process must not accept
// questions with an incomplete configuration.
func (c *Config) Validate() error {
	missing := []string{}
	if c.Database.User == "" {
		missing = append(missing, "PGUSER")
	}
	if c.Database.Password == "" {
		missing = append(missing, "PGPASSWORD")
	}
	if c.Database.Database == "" {
		missing = append(missing, "PGDATABASE")
	}
	if c.AI.APIKey == "" {
		missing = append(missing, "AI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown AI provider %q (want openai or anthropic)", c.AI.Provider)
	}

	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
