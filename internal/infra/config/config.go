// Package config provides application-wide configuration for the relay.
// Values come from three layers, lowest precedence first: built-in defaults,
// an optional YAML config file, then environment variables. All fields have
// safe defaults so the binary runs locally without any env setup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MCPServer describes one stdio MCP server whose tools are registered into
// the relay's tool registry at startup.
type MCPServer struct {
	Name    string            `yaml:"name"`
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"`
	Env     map[string]string `yaml:"env"`
}

// Config holds runtime configuration for the relay.
type Config struct {
	// HTTP server
	Host string // HOST, default "0.0.0.0"
	Port int    // PORT, default 8080

	// Hosted model
	Region       string // AWS_REGION, default "us-west-2"
	ModelID      string // RELAY_MODEL_ID, default Claude 3.5 Sonnet on Bedrock
	MaxTokens    int    // RELAY_MAX_TOKENS, default 1024
	MaxTurns     int    // RELAY_MAX_TURNS, default 8
	SystemPrompt string // RELAY_SYSTEM_PROMPT, default ""

	// Inbound auth. Empty secret means /invocations is unauthenticated.
	JWTSecret string // RELAY_JWT_SECRET, default ""

	// Invocation audit store. Empty path disables persistence entirely.
	DBPath string // RELAY_DB, default ""

	// MCP tool sources, file-only (no env representation).
	MCPServers []MCPServer
}

const (
	envKeyHost         = "HOST"
	envKeyPort         = "PORT"
	envKeyRegion       = "AWS_REGION"
	envKeyModelID      = "RELAY_MODEL_ID"
	envKeyMaxTokens    = "RELAY_MAX_TOKENS"
	envKeyMaxTurns     = "RELAY_MAX_TURNS"
	envKeySystemPrompt = "RELAY_SYSTEM_PROMPT"
	envKeyJWTSecret    = "RELAY_JWT_SECRET"
	envKeyDBPath       = "RELAY_DB"
)

// DefaultModelID is the Bedrock model invoked when none is configured.
const DefaultModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"

// defaults returns the built-in configuration layer.
func defaults() Config {
	return Config{
		Host:      "0.0.0.0",
		Port:      8080,
		Region:    "us-west-2",
		ModelID:   DefaultModelID,
		MaxTokens: 1024,
		MaxTurns:  8,
	}
}

// Load reads configuration from environment variables over built-in defaults.
func Load() Config {
	cfg := defaults()
	applyEnv(&cfg)
	return cfg
}

// LoadWithFile layers an optional YAML config file between defaults and env
// vars. An empty path behaves exactly like Load. A missing or malformed file
// is a startup error, not a silent fallback.
func LoadWithFile(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// fileConfig mirrors the YAML layout of the config file.
type fileConfig struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Model struct {
		Region       string `yaml:"region"`
		ID           string `yaml:"id"`
		MaxTokens    int    `yaml:"max_tokens"`
		MaxTurns     int    `yaml:"max_turns"`
		SystemPrompt string `yaml:"system_prompt"`
	} `yaml:"model"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Audit struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"audit"`
	MCP struct {
		Servers []MCPServer `yaml:"servers"`
	} `yaml:"mcp"`
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}

	cfg.Host = coalesce(fc.Server.Host, cfg.Host)
	if fc.Server.Port > 0 {
		cfg.Port = fc.Server.Port
	}
	cfg.Region = coalesce(fc.Model.Region, cfg.Region)
	cfg.ModelID = coalesce(fc.Model.ID, cfg.ModelID)
	if fc.Model.MaxTokens > 0 {
		cfg.MaxTokens = fc.Model.MaxTokens
	}
	if fc.Model.MaxTurns > 0 {
		cfg.MaxTurns = fc.Model.MaxTurns
	}
	cfg.SystemPrompt = coalesce(fc.Model.SystemPrompt, cfg.SystemPrompt)
	cfg.JWTSecret = coalesce(fc.Auth.JWTSecret, cfg.JWTSecret)
	cfg.DBPath = coalesce(fc.Audit.DBPath, cfg.DBPath)
	cfg.MCPServers = fc.MCP.Servers
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Host = envOr(envKeyHost, cfg.Host)
	cfg.Port = envOrInt(envKeyPort, cfg.Port)
	cfg.Region = envOr(envKeyRegion, cfg.Region)
	cfg.ModelID = envOr(envKeyModelID, cfg.ModelID)
	cfg.MaxTokens = envOrInt(envKeyMaxTokens, cfg.MaxTokens)
	cfg.MaxTurns = envOrInt(envKeyMaxTurns, cfg.MaxTurns)
	cfg.SystemPrompt = envOr(envKeySystemPrompt, cfg.SystemPrompt)
	cfg.JWTSecret = envOr(envKeyJWTSecret, cfg.JWTSecret)
	cfg.DBPath = envOr(envKeyDBPath, cfg.DBPath)
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrInt returns the integer value of the environment variable key, or
// fallback if unset or not a positive integer.
func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// coalesce returns val if non-empty, otherwise fallback.
func coalesce(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
