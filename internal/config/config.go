package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mikey/phish-detector/internal/rules"
)

// Version is reported by the health endpoint and the CLI, set with -ldflags
var Version = "dev"

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	return NewWithFile("")
}

// NewWithFile creates a configuration instance, reading the given file
// instead of searching the default locations when path is not empty
func NewWithFile(path string) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/phish-detector/")
		v.AddConfigPath("$HOME/.phish-detector")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	bindEnv(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return v
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("PHISH_DETECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The endpoint also answers to the name the web front-end uses
	_ = v.BindEnv("remote.endpoint", "PHISH_DETECTOR_REMOTE_ENDPOINT", "PREDICT_API_URL")
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Classifier defaults
	v.SetDefault("classifier.provider", "remote")

	// Remote classifier defaults
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.timeout", "10s")
	v.SetDefault("remote.max_response_bytes", 64*1024)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 300)
	v.SetDefault("bedrock.temperature", 0.0)
	v.SetDefault("bedrock.top_p", 0.9)
	v.SetDefault("bedrock.max_input_size", 2048)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-1.5-flash")
	v.SetDefault("gemini.max_tokens", 300)
	v.SetDefault("gemini.temperature", 0.0)
	v.SetDefault("gemini.top_p", 0.9)
	v.SetDefault("gemini.max_input_size", 2048)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 300)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("openai.top_p", 0.9)
	v.SetDefault("openai.max_input_size", 2048)

	// Rule table defaults
	tables := rules.DefaultTables()
	v.SetDefault("rules.file", "")
	v.SetDefault("rules.suspicious_tlds", tables.SuspiciousTLDs)
	v.SetDefault("rules.legitimate_domains", tables.LegitimateDomains)
	v.SetDefault("rules.disposable_domains", tables.DisposableDomains)
	v.SetDefault("rules.phishing_patterns", tables.PhishingPatterns)

	// Scan defaults
	v.SetDefault("scan.concurrency", 8)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_frequency", "10m")
	v.SetDefault("cache.sqlite_path", "/data/verdict_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/phish_detector")
	v.SetDefault("cache.redis_address", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_prefix", "phish:verdict:")

	// Server defaults
	v.SetDefault("server.frontend", "http")

	// HTTP defaults
	v.SetDefault("http.listen_address", "0.0.0.0:8080")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.max_batch", 50)
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "60s")

	// Mail gateway defaults
	v.SetDefault("gateway.listen_address", "0.0.0.0:10025")
	v.SetDefault("gateway.domain", "localhost")
	v.SetDefault("gateway.block_unsafe", false)
	v.SetDefault("gateway.max_links", 10)
	v.SetDefault("gateway.max_header_size", 900)
	v.SetDefault("gateway.analysis_timeout", "20s")
	v.SetDefault("gateway.headers.safe", "X-Phish-Safe")
	v.SetDefault("gateway.headers.score", "X-Phish-Score")
	v.SetDefault("gateway.headers.reasons", "X-Phish-Reasons")
	v.SetDefault("gateway.modify_subject", false)
	v.SetDefault("gateway.subject_prefix", "[PHISHING?] ")
	v.SetDefault("gateway.relay.enabled", true)
	v.SetDefault("gateway.relay.address", "127.0.0.1")
	v.SetDefault("gateway.relay.port", 10026)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(c.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
