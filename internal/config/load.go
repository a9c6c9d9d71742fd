package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "PANTRY"

// Default values
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultSessionTTLMinutes = 60
	DefaultModelName         = "gemini-2.5-flash"
)

// Options controls where Load looks for configuration.
type Options struct {
	// DotEnvPath is the .env file to load before reading the environment.
	// A missing file is not an error.
	DotEnvPath string
	// ConfigPaths are searched for an optional config.yaml.
	ConfigPaths []string
}

// DefaultOptions reads .env and config.yaml from the working directory.
func DefaultOptions() Options {
	return Options{
		DotEnvPath:  ".env",
		ConfigPaths: []string{"."},
	}
}

// Load configuration from a .env file, environment variables, and optionally
// a config file. Environment variables take precedence over values from
// config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.DotEnvPath != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(opts.DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", opts.DotEnvPath, err)
		}
	}

	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.session_ttl_minutes", DefaultSessionTTLMinutes)
	v.SetDefault("server.secure_cookie", false)
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.prompt_template_path", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range opts.ConfigPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare names are what the hosted AI tooling exports by default.
	if err := v.BindEnv("llm.gemini_api_key",
		EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API key environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
