// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Neo4j  Neo4jConfig
	Graph  GraphConfig
	Cache  CacheConfig
	LLM    LLMConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string
}

// Neo4jConfig holds graph store connection settings.
type Neo4jConfig struct {
	URI         string
	User        string
	Password    string
	Database    string
	MaxPoolSize int
	Timeout     time.Duration
}

// LinkMode decides what happens when a link step references an id that
// does not resolve to a node.
type LinkMode string

const (
	LinkLenient LinkMode = "lenient"
	LinkStrict  LinkMode = "strict"
)

// TopicOrder is the ordering applied to module numbers when a syllabus
// outline is rendered.
type TopicOrder string

const (
	OrderLexical TopicOrder = "lexical"
	OrderNatural TopicOrder = "natural"
)

// GraphConfig holds repository behaviour settings.
type GraphConfig struct {
	MaxDepth   int // 0 walks subtopic chains without a depth bound
	LinkMode   LinkMode
	TopicOrder TopicOrder
}

// CacheConfig holds Redis settings. An empty URL disables caching.
type CacheConfig struct {
	URL        string
	ContextTTL time.Duration
}

// LLMConfig holds settings for the OpenAI-compatible completion API.
type LLMConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	MaxConcurrent int
	Timeout       time.Duration
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr: envStr("HTTP_ADDR", ":8000"),
		},
		Neo4j: Neo4jConfig{
			URI:         envStr("NEO4J_URI", ""),
			User:        envStr("NEO4J_USER", "neo4j"),
			Password:    envStr("NEO4J_PASSWORD", ""),
			Database:    envStr("NEO4J_DATABASE", ""),
			MaxPoolSize: envInt("NEO4J_MAX_POOL_SIZE", 50),
			Timeout:     time.Duration(envInt("NEO4J_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Graph: GraphConfig{
			MaxDepth:   envInt("GRAPH_MAX_DEPTH", 0),
			LinkMode:   LinkMode(strings.ToLower(envStr("GRAPH_LINK_MODE", string(LinkLenient)))),
			TopicOrder: TopicOrder(strings.ToLower(envStr("GRAPH_TOPIC_ORDER", string(OrderLexical)))),
		},
		Cache: CacheConfig{
			URL:        envStr("REDIS_URL", ""),
			ContextTTL: time.Duration(envInt("CONTEXT_CACHE_TTL_SECONDS", 600)) * time.Second,
		},
		LLM: LLMConfig{
			APIKey:        envStr("OPENAI_API_KEY", ""),
			BaseURL:       envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:         envStr("OPENAI_MODEL", "gpt-4o"),
			MaxConcurrent: envInt("LLM_MAX_CONCURRENT", 5),
			Timeout:       time.Duration(envInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Log: LogConfig{
			Mode: envStr("LOG_MODE", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Graph.MaxDepth < 0 {
		return fmt.Errorf("GRAPH_MAX_DEPTH must not be negative, got %d", c.Graph.MaxDepth)
	}
	switch c.Graph.LinkMode {
	case LinkLenient, LinkStrict:
	default:
		return fmt.Errorf("GRAPH_LINK_MODE must be %q or %q, got %q", LinkLenient, LinkStrict, c.Graph.LinkMode)
	}
	switch c.Graph.TopicOrder {
	case OrderLexical, OrderNatural:
	default:
		return fmt.Errorf("GRAPH_TOPIC_ORDER must be %q or %q, got %q", OrderLexical, OrderNatural, c.Graph.TopicOrder)
	}
	if c.LLM.MaxConcurrent < 1 {
		return fmt.Errorf("LLM_MAX_CONCURRENT must be at least 1, got %d", c.LLM.MaxConcurrent)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
