package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Content   Content   `mapstructure:"content"`
	Providers Providers `mapstructure:"providers"`
	Fetch     Fetch     `mapstructure:"fetch"`
	Output    Output    `mapstructure:"output"`
	Email     Email     `mapstructure:"email"`

	// Sources and Keywords override the built-in per-niche registries when
	// present in the config file. Keys are niche names.
	Sources  map[string][]SourceConfig `mapstructure:"sources"`
	Keywords map[string][]string       `mapstructure:"keywords"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// Content holds content selection and synthesis settings
type Content struct {
	Niche           string `mapstructure:"niche"`
	TargetWordCount int    `mapstructure:"target_word_count"`
	ExcerptMaxChars int    `mapstructure:"excerpt_max_chars"`
	MaxTopics       int    `mapstructure:"max_topics"`
}

// SourceConfig describes one feed source within a niche.
type SourceConfig struct {
	ID            string  `mapstructure:"id"`
	Kind          string  `mapstructure:"kind"` // hackernews, reddit, devto, rss
	URL           string  `mapstructure:"url"`
	DetailURL     string  `mapstructure:"detail_url"` // hackernews item template with {id}
	Weight        float64 `mapstructure:"weight"`
	MinEngagement float64 `mapstructure:"min_engagement"`
	MaxItems      int     `mapstructure:"max_items"`
}

// Providers holds generation provider configuration
type Providers struct {
	// Order is the strategy chain, tried first to last. The template
	// synthesizer always runs after the last entry fails and needs no entry.
	Order       []string          `mapstructure:"order"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	Ollama      OllamaConfig      `mapstructure:"ollama"`
	Groq        GroqConfig        `mapstructure:"groq"`
	Gemini      GeminiConfig      `mapstructure:"gemini"`
}

// HuggingFaceConfig holds Hugging Face Inference API configuration
type HuggingFaceConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	Models  []string `mapstructure:"models"`
	BaseURL string   `mapstructure:"base_url"`
	Timeout string   `mapstructure:"timeout"`
}

// OllamaConfig holds local Ollama endpoint configuration
type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// GroqConfig holds Groq chat completions configuration
type GroqConfig struct {
	APIKey    string  `mapstructure:"api_key"`
	Model     string  `mapstructure:"model"`
	BaseURL   string  `mapstructure:"base_url"`
	MaxTokens int     `mapstructure:"max_tokens"`
	Temp      float64 `mapstructure:"temperature"`
	Timeout   string  `mapstructure:"timeout"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Fetch holds HTTP fetch collaborator configuration
type Fetch struct {
	UserAgent string  `mapstructure:"user_agent"`
	Timeout   string  `mapstructure:"timeout"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second
}

// Output holds page builder configuration
type Output struct {
	Directory string `mapstructure:"directory"`
	SiteName  string `mapstructure:"site_name"`
	BaseURL   string `mapstructure:"base_url"`
	Author    string `mapstructure:"author"`
}

// Email holds SMTP notification configuration
type Email struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	Recipient string `mapstructure:"recipient"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".blogsmith")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	config.App.ConfigFile = viper.ConfigFileUsed()
	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Content defaults mirror the historical workflow settings
	viper.SetDefault("content.niche", "tech")
	viper.SetDefault("content.target_word_count", 1800)
	viper.SetDefault("content.excerpt_max_chars", 500)
	viper.SetDefault("content.max_topics", 10)

	// Provider defaults
	viper.SetDefault("providers.order", []string{"huggingface", "ollama", "groq"})
	viper.SetDefault("providers.huggingface.base_url", "https://api-inference.huggingface.co")
	viper.SetDefault("providers.huggingface.models", []string{
		"microsoft/DialoGPT-large",
		"google/flan-t5-large",
		"EleutherAI/gpt-neo-2.7B",
	})
	viper.SetDefault("providers.huggingface.timeout", "60s")
	viper.SetDefault("providers.ollama.base_url", "http://localhost:11434")
	viper.SetDefault("providers.ollama.model", "llama2")
	viper.SetDefault("providers.ollama.timeout", "120s") // local models can be slower
	viper.SetDefault("providers.groq.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("providers.groq.model", "mixtral-8x7b-32768")
	viper.SetDefault("providers.groq.max_tokens", 4000)
	viper.SetDefault("providers.groq.temperature", 0.7)
	viper.SetDefault("providers.groq.timeout", "30s")
	viper.SetDefault("providers.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("providers.gemini.timeout", "30s")

	// Fetch defaults
	viper.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; blogsmith/1.0)")
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.rate_limit", 2.0)

	// Output defaults
	viper.SetDefault("output.directory", "output")
	viper.SetDefault("output.site_name", "Blogsmith Daily")
	viper.SetDefault("output.base_url", "http://localhost:5170")
	viper.SetDefault("output.author", "Blogsmith")

	// Email defaults
	viper.SetDefault("email.enabled", false)
	viper.SetDefault("email.port", 587)
}

func bindEnvironmentVariables() {
	bindEnvKeys("providers.huggingface.api_key", []string{"HUGGINGFACE_API_KEY", "HF_API_KEY"})
	bindEnvKeys("providers.groq.api_key", []string{"GROQ_API_KEY"})
	bindEnvKeys("providers.gemini.api_key", []string{"GEMINI_API_KEY", "GOOGLE_AI_API_KEY"})
	bindEnvKeys("email.password", []string{"SMTP_PASSWORD"})
	bindEnvKeys("email.username", []string{"SMTP_USERNAME"})
}

// bindEnvKeys binds a viper key to multiple possible environment variables
func bindEnvKeys(viperKey string, envKeys []string) {
	args := append([]string{viperKey}, envKeys...)
	if err := viper.BindEnv(args...); err != nil {
		fmt.Printf("Warning: failed to bind env vars for %s: %v\n", viperKey, err)
	}
}

func validateConfig(config *Config) error {
	if config.Content.Niche == "" {
		return fmt.Errorf("content.niche must not be empty")
	}
	if config.Content.TargetWordCount <= 0 {
		return fmt.Errorf("content.target_word_count must be positive")
	}
	for niche, sources := range config.Sources {
		for _, s := range sources {
			// Weight is the only field the core validates; everything else
			// is treated as opaque collaborator configuration.
			if s.Weight <= 0 || s.Weight > 1 {
				return fmt.Errorf("source %q in niche %q: weight must be in (0,1], got %v", s.ID, niche, s.Weight)
			}
		}
	}
	return nil
}

// ParseDuration parses a duration string, returning a fallback on error.
func ParseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Convenience accessors in the style of the rest of the codebase.
func GetContent() Content     { return Get().Content }
func GetProviders() Providers { return Get().Providers }
func GetFetch() Fetch         { return Get().Fetch }
func GetOutput() Output       { return Get().Output }
func GetEmail() Email         { return Get().Email }
func IsDebugMode() bool       { return Get().App.Debug }
