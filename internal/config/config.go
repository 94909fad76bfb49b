// Package config loads and validates process configuration. Everything is
// resolved once at startup; nothing reads the environment at request time.
package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"prepdeck/internal/inference"
)

type Config struct {
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Generation GenerationConfig `mapstructure:"generation"`
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
}

type GeminiConfig struct {
	APIKey        string `mapstructure:"api_key" validate:"required"`
	Model         string `mapstructure:"model" validate:"required"`
	APIVersion    string `mapstructure:"api_version" validate:"required"`
	RetryAttempts int    `mapstructure:"retry_attempts" validate:"min=0"`
}

type GenerationConfig struct {
	Temperature     float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" validate:"gt=0"`
}

type NormalizerConfig struct {
	Mode              string `mapstructure:"mode" validate:"oneof=minimal rich"`
	MinSentenceLength int    `mapstructure:"min_sentence_length" validate:"gt=0"`
}

// ConfigurationError reports missing or invalid required configuration. It
// is fatal: no request may start until the configuration loads cleanly.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type Loader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewLoader(configFile string) (*Loader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/prepdeck")
	}

	return &Loader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *Loader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.api_version", "v1beta")
	v.SetDefault("gemini.retry_attempts", inference.DefaultMaxRetryAttempts)
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.max_output_tokens", 1024)
	v.SetDefault("normalizer.mode", "rich")
	v.SetDefault("normalizer.min_sentence_length", 20)

	// Bind Gemini config to environment variables
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("gemini.model", "GEMINI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_MODEL environment variable: %w", err)
	}
	if err := v.BindEnv("gemini.api_version", "GEMINI_API_VERSION"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_VERSION environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigurationError{Message: "configuration file found but could not be read", Err: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigurationError{Message: "invalid configuration format", Err: err}
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, &ConfigurationError{Message: strings.Join(errorMsgs, ", ")}
	}

	return &cfg, nil
}
