package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultGroqURL   = "https://api.groq.com/openai/v1"
	DefaultOpenAIURL = "https://api.openai.com/v1"

	HistoryLatest = "latest"
	HistoryFull   = "full"
)

// Environment variables holding provider credentials. Keys are never
// written to the config file.
const (
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvProvider     = "FOLIO_CHAT_PROVIDER"
	EnvProfile      = "FOLIO_CHAT_PROFILE"
)

// Config represents the application configuration
type Config struct {
	LLMProvider string          `json:"llm_provider"`
	Providers   ProvidersConfig `json:"providers"`
	Chat        ChatConfig      `json:"chat"`
	Profile     string          `json:"profile"`
	LogLevel    string          `json:"log_level"`
	LogFormat   string          `json:"log_format"`
	LogFile     string          `json:"log_file"`
}

// ProvidersConfig holds per-backend settings.
type ProvidersConfig struct {
	Groq   ProviderConfig `json:"groq"`
	OpenAI ProviderConfig `json:"openai"`
	Google ProviderConfig `json:"google"`
}

// ProviderConfig holds the settings of one inference backend.
type ProviderConfig struct {
	APIKey            string  `json:"-"`
	APIURL            string  `json:"api_url,omitempty"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	APITimeoutSeconds int     `json:"api_timeout_seconds"`
}

// ChatConfig controls what the widget sends with each question.
type ChatConfig struct {
	History            string `json:"history"`              // "latest" | "full"; empty uses the profile's choice
	MaxHistoryMessages int    `json:"max_history_messages"` // 0 keeps the whole transcript
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		LLMProvider: "groq",
		Providers: ProvidersConfig{
			Groq: ProviderConfig{
				APIURL:            DefaultGroqURL,
				Model:             "llama-3.3-70b-versatile",
				Temperature:       0.7,
				MaxTokens:         500,
				APITimeoutSeconds: 30,
			},
			OpenAI: ProviderConfig{
				APIURL:            DefaultOpenAIURL,
				Model:             "gpt-4o-mini",
				Temperature:       0.7,
				MaxTokens:         500,
				APITimeoutSeconds: 30,
			},
			Google: ProviderConfig{
				Model:             "gemini-2.5-flash",
				Temperature:       0.7,
				MaxTokens:         500,
				APITimeoutSeconds: 60,
			},
		},
		Chat: ChatConfig{
			History: "",
		},
		Profile:   "classic",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal over defaults so sections missing from older files keep working values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillMissing()

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv copies credentials and overrides from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvGroqAPIKey)); v != "" {
		c.Providers.Groq.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvOpenAIAPIKey)); v != "" {
		c.Providers.OpenAI.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvGeminiAPIKey)); v != "" {
		c.Providers.Google.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvProvider)); v != "" {
		c.LLMProvider = v
	}
	if v := strings.TrimSpace(getenv(EnvProfile)); v != "" {
		c.Profile = v
	}
}

// Provider returns the settings block for the named backend.
func (c Config) Provider(name string) (ProviderConfig, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "groq":
		return c.Providers.Groq, true
	case "openai":
		return c.Providers.OpenAI, true
	case "google":
		return c.Providers.Google, true
	default:
		return ProviderConfig{}, false
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	provider, ok := c.Provider(c.LLMProvider)
	if !ok {
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}

	if strings.TrimSpace(provider.APIKey) == "" {
		return fmt.Errorf("%s API key is required (set %s)", c.LLMProvider, envKeyFor(c.LLMProvider))
	}

	if provider.Temperature < 0 || provider.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %f", provider.Temperature)
	}

	if provider.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", provider.MaxTokens)
	}

	if provider.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", provider.APITimeoutSeconds)
	}

	switch c.Chat.History {
	case "", HistoryLatest, HistoryFull:
	default:
		return fmt.Errorf("chat.history must be %q or %q, got: %q", HistoryLatest, HistoryFull, c.Chat.History)
	}

	if c.Chat.MaxHistoryMessages < 0 {
		return fmt.Errorf("max_history_messages must not be negative, got: %d", c.Chat.MaxHistoryMessages)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".folio_chat/config.json"
	}
	return filepath.Join(homeDir, ".folio_chat", "config.json")
}

func (c *Config) fillMissing() {
	if strings.TrimSpace(c.LLMProvider) == "" {
		c.LLMProvider = "groq"
	}
	if strings.TrimSpace(c.Providers.Groq.APIURL) == "" {
		c.Providers.Groq.APIURL = DefaultGroqURL
	}
	if strings.TrimSpace(c.Providers.OpenAI.APIURL) == "" {
		c.Providers.OpenAI.APIURL = DefaultOpenAIURL
	}
}

func envKeyFor(provider string) string {
	switch provider {
	case "openai":
		return EnvOpenAIAPIKey
	case "google":
		return EnvGeminiAPIKey
	default:
		return EnvGroqAPIKey
	}
}
