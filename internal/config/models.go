package config

import (
	"time"

	"github.com/mikey/phish-detector/internal/rules"
)

// ClassifierConfig selects the URL verdict backend
type ClassifierConfig struct {
	Provider string
}

// RemoteConfig represents the configuration for the remote prediction endpoint
type RemoteConfig struct {
	Endpoint         string
	Timeout          time.Duration
	MaxResponseBytes int64
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region       string
	ModelID      string
	MaxTokens    int
	Temperature  float32
	TopP         float32
	MaxInputSize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey       string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	TopP         float32
	MaxInputSize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	ModelName    string
	MaxTokens    int
	Temperature  float32
	TopP         float32
	MaxInputSize int
}

// CacheConfig represents the verdict cache configuration
type CacheConfig struct {
	Type             string
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
	RedisPrefix      string
}

// HTTPConfig represents the HTTP API configuration
type HTTPConfig struct {
	ListenAddress  string
	AllowedOrigins []string
	MaxBatch       int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// GatewayConfig represents the SMTP gateway configuration
type GatewayConfig struct {
	ListenAddress   string
	Domain          string
	BlockUnsafe     bool
	MaxLinks        int
	AnalysisTimeout time.Duration
	SafeHeader      string
	ScoreHeader     string
	ReasonsHeader   string
	ModifySubject   bool
	SubjectPrefix   string
	RelayEnabled    bool
	RelayAddress    string
	RelayPort       int
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Provider: c.GetString("classifier.provider"),
	}
}

// GetRemote returns the remote endpoint configuration
func (c *Config) GetRemote() (RemoteConfig, error) {
	timeout, err := c.GetDuration("remote.timeout")
	if err != nil {
		return RemoteConfig{}, err
	}
	return RemoteConfig{
		Endpoint:         c.GetString("remote.endpoint"),
		Timeout:          timeout,
		MaxResponseBytes: int64(c.GetInt("remote.max_response_bytes")),
	}, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:       c.GetString("bedrock.region"),
		ModelID:      c.GetString("bedrock.model_id"),
		MaxTokens:    c.GetInt("bedrock.max_tokens"),
		Temperature:  float32(c.GetFloat64("bedrock.temperature")),
		TopP:         float32(c.GetFloat64("bedrock.top_p")),
		MaxInputSize: c.GetInt("bedrock.max_input_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:       c.GetString("gemini.api_key"),
		ModelName:    c.GetString("gemini.model_name"),
		MaxTokens:    c.GetInt("gemini.max_tokens"),
		Temperature:  float32(c.GetFloat64("gemini.temperature")),
		TopP:         float32(c.GetFloat64("gemini.top_p")),
		MaxInputSize: c.GetInt("gemini.max_input_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:       c.GetString("openai.api_key"),
		BaseURL:      c.GetString("openai.base_url"),
		ModelName:    c.GetString("openai.model_name"),
		MaxTokens:    c.GetInt("openai.max_tokens"),
		Temperature:  float32(c.GetFloat64("openai.temperature")),
		TopP:         float32(c.GetFloat64("openai.top_p")),
		MaxInputSize: c.GetInt("openai.max_input_size"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, err
	}
	cleanup, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, err
	}
	return CacheConfig{
		Type:             c.GetString("cache.type"),
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
		RedisAddress:     c.GetString("cache.redis_address"),
		RedisPassword:    c.GetString("cache.redis_password"),
		RedisDB:          c.GetInt("cache.redis_db"),
		RedisPrefix:      c.GetString("cache.redis_prefix"),
	}, nil
}

// GetHTTP returns the HTTP API configuration
func (c *Config) GetHTTP() (HTTPConfig, error) {
	readTimeout, err := c.GetDuration("http.read_timeout")
	if err != nil {
		return HTTPConfig{}, err
	}
	writeTimeout, err := c.GetDuration("http.write_timeout")
	if err != nil {
		return HTTPConfig{}, err
	}
	return HTTPConfig{
		ListenAddress:  c.GetString("http.listen_address"),
		AllowedOrigins: c.GetStringSlice("http.allowed_origins"),
		MaxBatch:       c.GetInt("http.max_batch"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
	}, nil
}

// GetGateway returns the SMTP gateway configuration
func (c *Config) GetGateway() (GatewayConfig, error) {
	timeout, err := c.GetDuration("gateway.analysis_timeout")
	if err != nil {
		return GatewayConfig{}, err
	}
	return GatewayConfig{
		ListenAddress:   c.GetString("gateway.listen_address"),
		Domain:          c.GetString("gateway.domain"),
		BlockUnsafe:     c.GetBool("gateway.block_unsafe"),
		MaxLinks:        c.GetInt("gateway.max_links"),
		AnalysisTimeout: timeout,
		SafeHeader:      c.GetString("gateway.headers.safe"),
		ScoreHeader:     c.GetString("gateway.headers.score"),
		ReasonsHeader:   c.GetString("gateway.headers.reasons"),
		ModifySubject:   c.GetBool("gateway.modify_subject"),
		SubjectPrefix:   c.GetString("gateway.subject_prefix"),
		RelayEnabled:    c.GetBool("gateway.relay.enabled"),
		RelayAddress:    c.GetString("gateway.relay.address"),
		RelayPort:       c.GetInt("gateway.relay.port"),
	}, nil
}

// GetRules returns the rule tables, with rules.file overlaid when set
func (c *Config) GetRules() (rules.Tables, error) {
	tables := rules.Tables{
		SuspiciousTLDs:    c.GetStringSlice("rules.suspicious_tlds"),
		LegitimateDomains: c.GetStringSlice("rules.legitimate_domains"),
		DisposableDomains: c.GetStringSlice("rules.disposable_domains"),
		PhishingPatterns:  c.GetStringSlice("rules.phishing_patterns"),
	}

	if path := c.GetString("rules.file"); path != "" {
		return rules.LoadFile(path, tables)
	}
	return tables, nil
}

// GetMaxHeaderSize returns the byte limit for gateway header values
func (c *Config) GetMaxHeaderSize() int {
	return c.GetInt("gateway.max_header_size")
}

// GetScanConcurrency returns the batch concurrency limit
func (c *Config) GetScanConcurrency() int {
	return c.GetInt("scan.concurrency")
}
