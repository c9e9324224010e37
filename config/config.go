package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM provider abstraction
	LLM LLMConfig

	// Triage pipeline
	Triage TriageConfig

	// Batch runner
	Batch BatchConfig
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

// LLMConfig holds configuration for the LLM provider abstraction layer.
// Exactly one enabled provider is active at runtime (the lowest priority
// number); there is no fallback chain.
type LLMConfig struct {
	Providers      []ProviderConfig `yaml:"providers"`
	PerCallTimeout string           `yaml:"per_call_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
}

// TriageConfig holds pipeline settings.
type TriageConfig struct {
	RouterTemperature float64
	SolverTemperature float64
	MaxOutputTokens   int
	RateLimitPerMin   int
}

// BatchConfig holds batch runner settings.
type BatchConfig struct {
	InputFile         string
	OutputFile        string
	EvaluationFile    string
	BatchSize         int
	RequestsPerMinute int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// LLM provider abstraction
	cfg.LLM.PerCallTimeout = viper.GetString("llm.per_call_timeout")
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// GOOGLE_API_KEY alone is enough to run against Gemini defaults
	if len(cfg.LLM.Providers) == 0 {
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "gemini",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
			})
		}
	}

	if len(cfg.LLM.Providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured - add an llm.providers section to config.yaml or set GOOGLE_API_KEY")
	}

	// Triage pipeline
	cfg.Triage.RouterTemperature = viper.GetFloat64("triage.router_temperature")
	cfg.Triage.SolverTemperature = viper.GetFloat64("triage.solver_temperature")
	cfg.Triage.MaxOutputTokens = viper.GetInt("triage.max_output_tokens")
	cfg.Triage.RateLimitPerMin = viper.GetInt("triage.rate_limit_per_min")

	// Batch runner
	cfg.Batch.InputFile = viper.GetString("batch.input_file")
	cfg.Batch.OutputFile = viper.GetString("batch.output_file")
	cfg.Batch.EvaluationFile = viper.GetString("batch.evaluation_file")
	cfg.Batch.BatchSize = viper.GetInt("batch.batch_size")
	cfg.Batch.RequestsPerMinute = viper.GetInt("batch.requests_per_minute")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// LLM defaults
	viper.SetDefault("llm.per_call_timeout", "30s")

	// Triage defaults
	viper.SetDefault("triage.router_temperature", 0.1)
	viper.SetDefault("triage.solver_temperature", 0.2)
	viper.SetDefault("triage.max_output_tokens", 2048)
	viper.SetDefault("triage.rate_limit_per_min", 60)

	// Batch defaults
	viper.SetDefault("batch.input_file", "./evaluation/tickets_mini.json")
	viper.SetDefault("batch.output_file", "results.json")
	viper.SetDefault("batch.evaluation_file", "evaluation_results.json")
	viper.SetDefault("batch.batch_size", 3)
	viper.SetDefault("batch.requests_per_minute", 6)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
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
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
