// Package config provides Viper-based hierarchical configuration management
// plus .env loading for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var once sync.Once

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		LedgersFile    string `mapstructure:"ledgers_file" yaml:"ledgers_file"`
		RulesFile      string `mapstructure:"rules_file" yaml:"rules_file"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
		LearnedDB      string `mapstructure:"learned_db" yaml:"learned_db"`
	} `mapstructure:"data" yaml:"data"`

	Matcher struct {
		SuspenseLedger     string  `mapstructure:"suspense_ledger" yaml:"suspense_ledger"`
		MinKeywordScore    float64 `mapstructure:"min_keyword_score" yaml:"min_keyword_score"`
		MinFocusScore      float64 `mapstructure:"min_focus_score" yaml:"min_focus_score"`
		MinLearnedBoost    float64 `mapstructure:"min_learned_boost" yaml:"min_learned_boost"`
		MinSemanticScore   float64 `mapstructure:"min_semantic_score" yaml:"min_semantic_score"`
		AutoMapSimilarity  float64 `mapstructure:"auto_map_similarity" yaml:"auto_map_similarity"`
	} `mapstructure:"matcher" yaml:"matcher"`

	Semantic struct {
		Enabled        bool    `mapstructure:"enabled" yaml:"enabled"`
		Model          string  `mapstructure:"model" yaml:"model"`
		Threshold      float64 `mapstructure:"threshold" yaml:"threshold"`
		TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string  `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"semantic" yaml:"semantic"`
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then an optional config file, then environment
// variables prefixed with LEDGERMATCH.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ledger-match")
	v.AddConfigPath(".ledger-match")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGERMATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the environment, unprefixed.
	if err := v.BindEnv("semantic.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.ledgers_file", "ledgers.yaml")
	v.SetDefault("data.rules_file", "rules.yaml")
	v.SetDefault("data.categories_file", "categories.yaml")
	v.SetDefault("data.learned_db", "learned.db")

	v.SetDefault("matcher.suspense_ledger", "Suspense A/c")
	v.SetDefault("matcher.min_keyword_score", 50.0)
	v.SetDefault("matcher.min_focus_score", 55.0)
	v.SetDefault("matcher.min_learned_boost", 60.0)
	v.SetDefault("matcher.min_semantic_score", 35.0)
	v.SetDefault("matcher.auto_map_similarity", 0.7)

	v.SetDefault("semantic.enabled", false)
	v.SetDefault("semantic.model", "text-embedding-004")
	v.SetDefault("semantic.threshold", 0.3)
	v.SetDefault("semantic.timeout_seconds", 30)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Matcher.SuspenseLedger == "" {
		return fmt.Errorf("matcher.suspense_ledger must not be empty")
	}

	if config.Semantic.Enabled {
		if config.Semantic.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when semantic matching is enabled")
		}
		if config.Semantic.Threshold < 0.0 || config.Semantic.Threshold > 1.0 {
			return fmt.Errorf("semantic.threshold must be between 0.0 and 1.0, got: %f", config.Semantic.Threshold)
		}
		if config.Semantic.TimeoutSeconds < 1 || config.Semantic.TimeoutSeconds > 300 {
			return fmt.Errorf("semantic.timeout_seconds must be between 1 and 300, got: %d", config.Semantic.TimeoutSeconds)
		}
	}

	if config.Matcher.AutoMapSimilarity < 0.0 || config.Matcher.AutoMapSimilarity > 1.0 {
		return fmt.Errorf("matcher.auto_map_similarity must be between 0.0 and 1.0, got: %f", config.Matcher.AutoMapSimilarity)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
