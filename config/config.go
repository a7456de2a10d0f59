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

	// Pipeline
	Classifier   ClassifierConfig
	Conversation ConversationConfig
	Router       RouterConfig
	Workspace    WorkspaceConfig
	Archive      ArchiveConfig
	Sessions     SessionsConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type ClassifierConfig struct {
	ConfidenceThreshold float64
}

type ConversationConfig struct {
	MaxTurns  int
	StatePath string
}

// RouterConfig holds the generative timeout, persona and the tool target defaults.
type RouterConfig struct {
	LLMTimeout     time.Duration
	AssistantName  string
	AnalyzePath    string
	FindPattern    string
	CreatePath     string
	CreateFileType string
}

type WorkspaceConfig struct {
	Root      string
	Structure bool
}

type ArchiveConfig struct {
	Enabled    bool
	Path       string
	BufferSize int
}

type SessionsConfig struct {
	MaxSessions     int
	TTL             time.Duration
	RateLimitPerMin int
	Burst           int
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
	Temperature     float64          `yaml:"temperature"`
	MaxTokens       int              `yaml:"max_tokens"`
}

// ModelsConfig maps generative task types to model names of one provider.
// Empty means the provider default.
type ModelsConfig struct {
	Complex string `yaml:"complex"`
	Coding  string `yaml:"coding"`
	General string `yaml:"general"`
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
	// Models picks a model of this provider per task type
	Models ModelsConfig `yaml:"models,omitempty"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/intent-pipeline/.
// A non-empty path reads that file instead.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/intent-pipeline/")
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
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Pipeline
	cfg.Classifier.ConfidenceThreshold = v.GetFloat64("classifier.confidence_threshold")
	cfg.Conversation.MaxTurns = v.GetInt("conversation.max_turns")
	cfg.Conversation.StatePath = v.GetString("conversation.state_path")

	cfg.Router.LLMTimeout = v.GetDuration("router.llm_timeout")
	cfg.Router.AssistantName = v.GetString("router.assistant_name")
	cfg.Router.AnalyzePath = v.GetString("router.defaults.analyze_path")
	cfg.Router.FindPattern = v.GetString("router.defaults.find_pattern")
	cfg.Router.CreatePath = v.GetString("router.defaults.create_path")
	cfg.Router.CreateFileType = v.GetString("router.defaults.create_file_type")

	cfg.Workspace.Root = v.GetString("workspace.root")
	cfg.Workspace.Structure = v.GetBool("workspace.structure")

	cfg.Archive.Enabled = v.GetBool("archive.enabled")
	cfg.Archive.Path = v.GetString("archive.path")
	cfg.Archive.BufferSize = v.GetInt("archive.buffer_size")

	cfg.Sessions.MaxSessions = v.GetInt("sessions.max_sessions")
	cfg.Sessions.TTL = v.GetDuration("sessions.ttl")
	cfg.Sessions.RateLimitPerMin = v.GetInt("sessions.rate_limit_per_min")
	cfg.Sessions.Burst = v.GetInt("sessions.burst")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = v.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = v.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = v.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = v.GetString("llm.max_total_timeout")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")

	// Load provider configurations
	if v.IsSet("llm.providers") {
		providersRaw := v.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(v, getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
						Models:   getModelsFromMap(providerMap, "models"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Without providers the pipeline still runs; the generative path reports no result.
	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, fmt.Errorf("invalid llm config: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	// Pipeline defaults
	v.SetDefault("classifier.confidence_threshold", 0.4)
	v.SetDefault("conversation.max_turns", 10)
	v.SetDefault("router.llm_timeout", "120s")
	v.SetDefault("router.assistant_name", "DevAsistente")
	v.SetDefault("router.defaults.analyze_path", ".")
	v.SetDefault("router.defaults.find_pattern", "*")
	v.SetDefault("router.defaults.create_path", "new_file.py")
	v.SetDefault("router.defaults.create_file_type", "python")
	v.SetDefault("workspace.root", ".")
	v.SetDefault("workspace.structure", true)
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.path", "data/conversations.db")
	v.SetDefault("archive.buffer_size", 64)
	v.SetDefault("sessions.max_sessions", 1000)
	v.SetDefault("sessions.ttl", "30m")
	v.SetDefault("sessions.rate_limit_per_min", 30)
	v.SetDefault("sessions.burst", 5)

	// LLM defaults
	v.SetDefault("llm.fallback_enabled", true)
	v.SetDefault("llm.retry_attempts", 2)
	v.SetDefault("llm.retry_delay", "1s")
	v.SetDefault("llm.max_total_timeout", "120s")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 2048)
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
		return fmt.Errorf("no LLM providers configured")
	}

	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
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

func getModelsFromMap(m map[string]interface{}, key string) ModelsConfig {
	val, ok := m[key].(map[string]interface{})
	if !ok {
		return ModelsConfig{}
	}
	return ModelsConfig{
		Complex: getStringFromMap(val, "complex"),
		Coding:  getStringFromMap(val, "coding"),
		General: getStringFromMap(val, "general"),
	}
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
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
