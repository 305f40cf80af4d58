package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory" validate:"required"`
}

type TemplatesConfig struct {
	// QuizMarkdown overrides the embedded template of exported study sheets.
	QuizMarkdown string `mapstructure:"quiz_markdown" validate:"omitempty,file"`
}

type QuizConfig struct {
	ShuffleOptions bool `mapstructure:"shuffle_options"`
}

// Load reads the configuration from configFile, or from config.yml in the current
// directory or $HOME/.config/wikiquiz. Environment variables from a .env file in the
// current directory are loaded first and take precedence over the file.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wikiquiz")
	}

	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.timeout", 120*time.Second)
	v.SetDefault("outputs.export_directory", filepath.Join("outputs", "quizzes"))
	v.SetDefault("quiz.shuffle_options", false)

	if err := v.BindEnv("api.base_url", "WIKIQUIZ_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind WIKIQUIZ_API_BASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("api.timeout", "WIKIQUIZ_API_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("failed to bind WIKIQUIZ_API_TIMEOUT environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	return &cfg, nil
}

// Validate checks every field and reports all violations in one error.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	err = validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate.Struct() > %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
