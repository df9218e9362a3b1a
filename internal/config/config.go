package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration. The proxy server reads the
// server, log, ai, headlines, upstream and cache sections; the terminal
// client reads log and client.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Log       LogConfig       `toml:"log"`
	AI        AIConfig        `toml:"ai"`
	Headlines HeadlinesConfig `toml:"headlines"`
	Upstream  UpstreamConfig  `toml:"upstream"`
	Cache     CacheConfig     `toml:"cache"`
	Client    ClientConfig    `toml:"client"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// AIConfig holds generative summarization provider settings.
type AIConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

// HeadlinesConfig holds headline source settings.
type HeadlinesConfig struct {
	Source            string              `toml:"source"`
	APIKey            string              `toml:"api_key"`
	BaseURL           string              `toml:"base_url"`
	RequestsPerMinute int                 `toml:"requests_per_minute"`
	CacheTTLSeconds   int                 `toml:"cache_ttl_seconds"`
	Feeds             map[string][]string `toml:"feeds"`
}

// UpstreamConfig holds the sibling services the proxy forwards to or
// probes.
type UpstreamConfig struct {
	BiasURL       string `toml:"bias_url"`
	FactCheckURL  string `toml:"factcheck_url"`
	SummarizerURL string `toml:"summarizer_url"`
}

// CacheConfig holds headline response cache settings.
type CacheConfig struct {
	Type          string `toml:"type"`
	RedisAddress  string `toml:"redis_address"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ClientConfig holds terminal client settings.
type ClientConfig struct {
	NewsURL       string `toml:"news_url"`
	FactCheckURL  string `toml:"factcheck_url"`
	BiasURL       string `toml:"bias_url"`
	SummarizerURL string `toml:"summarizer_url"`
	Country       string `toml:"country"`
	PageSize      int    `toml:"page_size"`
	Sentences     int    `toml:"sentences"`
	Summarizer    string `toml:"summarizer"`
}

const defaultConfigContent = `[server]
host = "localhost"
port = 3002

[log]
level = "info"                    # "debug", "info", "warn" or "error"
format = "text"                   # "text" or "json"

[ai]
provider = "gemini"               # "gemini", "anthropic" or "openai"
api_key = ""                      # Your API key (or set AI_API_KEY env var)
model = "gemini-1.5-flash"

[headlines]
source = "newsapi"                # "newsapi" or "rss"
api_key = ""                      # NewsAPI key (or set NEWSAPI_KEY env var)
base_url = "https://newsapi.org/v2"
requests_per_minute = 60
cache_ttl_seconds = 300

[headlines.feeds]
general = ["https://feeds.bbci.co.uk/news/rss.xml"]
business = ["https://feeds.bbci.co.uk/news/business/rss.xml"]
technology = ["https://feeds.arstechnica.com/arstechnica/index"]
science = ["https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"]

[upstream]
bias_url = "http://localhost:5002"
factcheck_url = "http://localhost:5001"
summarizer_url = "http://localhost:5003"

[cache]
type = "memory"                   # "memory" or "redis"
redis_address = "localhost:6379"
redis_password = ""
redis_db = 0

[client]
news_url = "http://localhost:3002/api"
factcheck_url = "http://localhost:5001"
bias_url = "http://localhost:5002"
summarizer_url = "http://localhost:5003"
country = "us"
page_size = 20
sentences = 3
summarizer = "summarizer"         # "summarizer" or "gemini"
`

var defaultFeeds = map[string][]string{
	"general": {"https://feeds.bbci.co.uk/news/rss.xml"},
}

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("headlines", "requests_per_minute") {
		if cfg.Headlines.RequestsPerMinute < 1 {
			return fmt.Errorf("invalid headlines.requests_per_minute %d: must be >= 1", cfg.Headlines.RequestsPerMinute)
		}
	}
	if md.IsDefined("client", "page_size") {
		if cfg.Client.PageSize < 1 || cfg.Client.PageSize > 100 {
			return fmt.Errorf("invalid client.page_size %d: must be between 1 and 100", cfg.Client.PageSize)
		}
	}
	if md.IsDefined("client", "sentences") {
		if cfg.Client.Sentences < 1 || cfg.Client.Sentences > 10 {
			return fmt.Errorf("invalid client.sentences %d: must be between 1 and 10", cfg.Client.Sentences)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	setDefault(&cfg.Server.Host, "localhost")
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3002
	}

	setDefault(&cfg.Log.Level, "info")
	setDefault(&cfg.Log.Format, "text")

	setDefault(&cfg.AI.Provider, "gemini")
	if cfg.AI.Model == "" {
		switch cfg.AI.Provider {
		case "anthropic":
			cfg.AI.Model = "claude-haiku-4-5"
		case "openai":
			cfg.AI.Model = "gpt-4o-mini"
		default:
			cfg.AI.Model = "gemini-1.5-flash"
		}
	}

	setDefault(&cfg.Headlines.Source, "newsapi")
	setDefault(&cfg.Headlines.BaseURL, "https://newsapi.org/v2")
	if cfg.Headlines.RequestsPerMinute == 0 {
		cfg.Headlines.RequestsPerMinute = 60
	}
	// A negative TTL disables caching; zero means "not set".
	if cfg.Headlines.CacheTTLSeconds == 0 {
		cfg.Headlines.CacheTTLSeconds = 300
	}
	if len(cfg.Headlines.Feeds) == 0 {
		cfg.Headlines.Feeds = defaultFeeds
	}

	setDefault(&cfg.Upstream.BiasURL, "http://localhost:5002")
	setDefault(&cfg.Upstream.FactCheckURL, "http://localhost:5001")
	setDefault(&cfg.Upstream.SummarizerURL, "http://localhost:5003")

	setDefault(&cfg.Cache.Type, "memory")
	setDefault(&cfg.Cache.RedisAddress, "localhost:6379")

	setDefault(&cfg.Client.NewsURL, "http://localhost:3002/api")
	setDefault(&cfg.Client.FactCheckURL, "http://localhost:5001")
	setDefault(&cfg.Client.BiasURL, "http://localhost:5002")
	setDefault(&cfg.Client.SummarizerURL, "http://localhost:5003")
	setDefault(&cfg.Client.Country, "us")
	if cfg.Client.PageSize == 0 {
		cfg.Client.PageSize = 20
	}
	if cfg.Client.Sentences == 0 {
		cfg.Client.Sentences = 3
	}
	setDefault(&cfg.Client.Summarizer, "summarizer")
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. GEMINI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY, matching
//     ai.provider
func applyEnvOverrides(cfg *Config) {
	// Apply provider-specific env var first (lower priority).
	providerEnv := map[string]string{
		"gemini":    "GEMINI_API_KEY",
		"anthropic": "ANTHROPIC_API_KEY",
		"openai":    "OPENAI_API_KEY",
	}
	if name, ok := providerEnv[cfg.AI.Provider]; ok {
		if v := os.Getenv(name); v != "" {
			cfg.AI.APIKey = v
		}
	}

	// AI_API_KEY overrides everything (highest priority).
	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	if v := os.Getenv("NEWSAPI_KEY"); v != "" {
		cfg.Headlines.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		} else {
			slog.Warn("ignoring invalid PORT environment variable", "value", v)
		}
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		cfg.Cache.RedisAddress = v
	}
	if v := os.Getenv("NEWSHUB_PROXY_URL"); v != "" {
		cfg.Client.NewsURL = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "gemini", "anthropic", "openai":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"gemini\", \"anthropic\" or \"openai\"", cfg.AI.Provider)
	}

	switch cfg.Headlines.Source {
	case "newsapi", "rss":
	default:
		return fmt.Errorf("invalid headlines.source %q: must be \"newsapi\" or \"rss\"", cfg.Headlines.Source)
	}

	switch cfg.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid cache.type %q: must be \"memory\" or \"redis\"", cfg.Cache.Type)
	}

	switch cfg.Client.Summarizer {
	case "summarizer", "gemini":
	default:
		return fmt.Errorf("invalid client.summarizer %q: must be \"summarizer\" or \"gemini\"", cfg.Client.Summarizer)
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"text\" or \"json\"", cfg.Log.Format)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if cfg.Client.PageSize < 1 || cfg.Client.PageSize > 100 {
		return fmt.Errorf("invalid client.page_size %d: must be between 1 and 100", cfg.Client.PageSize)
	}

	if cfg.Client.Sentences < 1 || cfg.Client.Sentences > 10 {
		return fmt.Errorf("invalid client.sentences %d: must be between 1 and 10", cfg.Client.Sentences)
	}

	if cfg.Headlines.Source == "newsapi" && cfg.Headlines.APIKey == "" {
		slog.Warn("headlines.api_key is empty: set it in the config file or via NEWSAPI_KEY environment variable")
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("ai.api_key is empty: set it in the config file or via AI_API_KEY environment variable")
	}

	return nil
}
