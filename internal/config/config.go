package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App    App    `mapstructure:"app"`
	Scrape Scrape `mapstructure:"scrape"`
	AI     AI     `mapstructure:"ai"`
	Images Images `mapstructure:"images"`
	Ledger Ledger `mapstructure:"ledger"`
	Output Output `mapstructure:"output"`
}

// App holds general application configuration.
type App struct {
	Debug bool `mapstructure:"debug"`
}

// Scrape holds scraping collaborator configuration.
type Scrape struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Headless bool   `mapstructure:"headless"`
}

// AI holds generative text service configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Images holds generative image service configuration.
type Images struct {
	APIToken  string `mapstructure:"api_token"`
	ModelURL  string `mapstructure:"model_url"`
	Directory string `mapstructure:"directory"`
}

// Ledger holds usage ledger configuration.
type Ledger struct {
	Path string `mapstructure:"path"`
}

// Output holds document output configuration.
type Output struct {
	Directory string `mapstructure:"directory"`
	Format    string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from .env, an optional .blogsmith.yaml file
// and the environment, in that order of precedence from lowest to highest.
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

	expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
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

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.debug", false)

	viper.SetDefault("scrape.headless", true)

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")

	viper.SetDefault("images.model_url", "")
	viper.SetDefault("images.directory", "generated_images")

	viper.SetDefault("ledger.path", "used_tweets.csv")

	viper.SetDefault("output.directory", "blogs")
	viper.SetDefault("output.format", "md")
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("images.api_token", []string{
		"HF_API_TOKEN",
		"HUGGINGFACE_API_TOKEN",
	})

	bindEnvKeys("scrape.username", []string{"TWITTER_USERNAME"})
	bindEnvKeys("scrape.password", []string{"TWITTER_PASSWORD"})
}

// bindEnvKeys binds the first non-empty environment variable to a viper key.
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// expandPaths expands ~ and environment variables in configured paths.
func expandPaths(config *Config) {
	config.Images.Directory = expandPath(config.Images.Directory)
	config.Ledger.Path = expandPath(config.Ledger.Path)
	config.Output.Directory = expandPath(config.Output.Directory)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present. The image
// service token is deliberately not required: a run without it proceeds with
// all illustrations absent.
func validateConfig(config *Config) error {
	var errors []string

	if config.AI.Gemini.APIKey == "" {
		errors = append(errors, "Gemini API key is required (set GEMINI_API_KEY)")
	}
	if config.Scrape.Username == "" || config.Scrape.Password == "" {
		errors = append(errors, "scraping credentials are required (set TWITTER_USERNAME and TWITTER_PASSWORD)")
	}
	if config.Output.Format != "md" && config.Output.Format != "html" {
		errors = append(errors, fmt.Sprintf("unsupported output format %q (want md or html)", config.Output.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// HasImageService reports whether the image service can be used this run.
func HasImageService() bool {
	return Get().Images.APIToken != ""
}

// Reset clears the global configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viper.Reset()
}
