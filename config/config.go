package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Memory agent specifics
	Agent     AgentConfig
	Memory    MemoryConfig
	Qdrant    QdrantConfig
	Chromem   ChromemConfig
	SQLite    SQLiteConfig
	Voyage    VoyageConfig
	Embedding EmbeddingConfig

	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig configures the API listener. TrustedProxies lists the
// proxy IPs or CIDRs whose X-Forwarded-For is believed; empty trusts none.
type HTTPServerConfig struct {
	Port           int
	Mode           string
	TrustedProxies []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AgentConfig tunes the per-turn orchestration.
type AgentConfig struct {
	HistoryLimit      int
	TopK              int
	StepTimeout       time.Duration
	MaxQueries        int
	ParallelRetrieval bool
}

// MemoryConfig selects the vector memory backend: qdrant, chromem or sqlite.
type MemoryConfig struct {
	Backend string
}

type QdrantConfig struct {
	URL            string
	CollectionName string
}

// ChromemConfig configures the embedded store. An empty Path keeps everything in memory.
type ChromemConfig struct {
	Path     string
	Compress bool
}

type SQLiteConfig struct {
	Path string
}

// VoyageConfig enables Voyage embeddings when APIKey is set. Dimensions must
// match the model's output size.
type VoyageConfig struct {
	APIKey     string
	Model      string
	Dimensions int
}

// EmbeddingConfig configures the embedding cache and the offline embedder
// used when no Voyage key is set.
type EmbeddingConfig struct {
	CacheItems int
	Dimensions int
}

type RateLimitConfig struct {
	PerMin int
}

type MetricsConfig struct {
	Namespace string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Backends accepted by memory.backend.
const (
	BackendQdrant  = "qdrant"
	BackendChromem = "chromem"
	BackendSQLite  = "sqlite"
)

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/memory-agent/
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path uses the search paths.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/memory-agent/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.TrustedProxies = v.GetStringSlice("http_server.trusted_proxies")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Agent
	cfg.Agent.HistoryLimit = v.GetInt("agent.history_limit")
	cfg.Agent.TopK = v.GetInt("agent.top_k")
	cfg.Agent.StepTimeout = v.GetDuration("agent.step_timeout")
	cfg.Agent.MaxQueries = v.GetInt("agent.max_queries")
	cfg.Agent.ParallelRetrieval = v.GetBool("agent.parallel_retrieval")

	// Memory backends
	cfg.Memory.Backend = strings.ToLower(v.GetString("memory.backend"))
	cfg.Qdrant.URL = v.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = v.GetString("qdrant.collection_name")
	if qdrantURL := v.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}
	cfg.Chromem.Path = v.GetString("chromem.path")
	cfg.Chromem.Compress = v.GetBool("chromem.compress")
	cfg.SQLite.Path = v.GetString("sqlite.path")

	// Embeddings
	cfg.Voyage.APIKey = v.GetString("voyage.api_key")
	cfg.Voyage.Model = v.GetString("voyage.model")
	cfg.Voyage.Dimensions = v.GetInt("voyage.dimensions")
	if voyageKey := v.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}
	cfg.Embedding.CacheItems = v.GetInt("embedding.cache_items")
	cfg.Embedding.Dimensions = v.GetInt("embedding.dimensions")

	cfg.RateLimit.PerMin = v.GetInt("rate_limit.per_min")
	cfg.Metrics.Namespace = v.GetString("metrics.namespace")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")

	if v.IsSet("llm.providers") {
		if providersList, ok := v.Get("llm.providers").([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("agent.history_limit", 15)
	v.SetDefault("agent.top_k", 3)
	v.SetDefault("agent.step_timeout", "30s")
	v.SetDefault("agent.max_queries", 3)
	v.SetDefault("agent.parallel_retrieval", true)

	v.SetDefault("memory.backend", BackendChromem)
	v.SetDefault("qdrant.url", "http://localhost:6333")
	v.SetDefault("qdrant.collection_name", "memories")
	v.SetDefault("sqlite.path", "memory-agent.db")
	v.SetDefault("voyage.model", "voyage-3")
	v.SetDefault("voyage.dimensions", 1024)
	v.SetDefault("embedding.cache_items", 10000)
	v.SetDefault("embedding.dimensions", 256)

	v.SetDefault("rate_limit.per_min", 60)
	v.SetDefault("metrics.namespace", "memory_agent")

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "60s")
}

// Validate checks cross-field constraints after loading.
func (c *Config) Validate() error {
	if err := validateLLMConfig(&c.LLM); err != nil {
		return err
	}

	switch c.Memory.Backend {
	case BackendQdrant:
		if c.Qdrant.URL == "" {
			return fmt.Errorf("qdrant.url is required for the qdrant backend")
		}
	case BackendChromem:
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown memory.backend %q", c.Memory.Backend)
	}

	if c.Voyage.APIKey != "" && c.Voyage.Dimensions <= 0 {
		return fmt.Errorf("voyage.dimensions must be positive")
	}

	if c.Agent.HistoryLimit < 0 {
		return fmt.Errorf("agent.history_limit must not be negative")
	}
	if c.Agent.TopK <= 0 {
		return fmt.Errorf("agent.top_k must be positive")
	}
	if c.Agent.MaxQueries <= 0 {
		return fmt.Errorf("agent.max_queries must be positive")
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
