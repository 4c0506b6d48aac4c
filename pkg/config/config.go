package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Settings holds the course configuration read from the environment
type Settings struct {
	ModelName      string `mapstructure:"model_name"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	GymEnv         string `mapstructure:"gym_env"`
	DebugMode      bool   `mapstructure:"debug_mode"`

	// API client behaviour
	APITimeout time.Duration `mapstructure:"-"`
	APIRetries int           `mapstructure:"api_retries"`

	// Working directories
	DataDir   string `mapstructure:"data_dir"`
	ModelsDir string `mapstructure:"models_dir"`

	LogLevel string `mapstructure:"log_level"`
}

// DefaultSettings returns settings with the course defaults
func DefaultSettings() *Settings {
	return &Settings{
		ModelName:      "default-model",
		EmbeddingModel: "default-embedding-model",
		GymEnv:         "CartPole-v1",
		DebugMode:      false,
		APITimeout:     10 * time.Second,
		APIRetries:     1,
		DataDir:        "./data",
		ModelsDir:      "./models",
		LogLevel:       "info",
	}
}

// LoadSettings reads settings from environment variables (MODEL_NAME,
// API_TIMEOUT, ...) on top of the defaults.
func LoadSettings() (*Settings, error) {
	return loadSettings(viper.New())
}

func loadSettings(v *viper.Viper) (*Settings, error) {
	d := DefaultSettings()
	v.SetDefault("model_name", d.ModelName)
	v.SetDefault("embedding_model", d.EmbeddingModel)
	v.SetDefault("gym_env", d.GymEnv)
	v.SetDefault("debug_mode", d.DebugMode)
	v.SetDefault("api_timeout", "10")
	v.SetDefault("api_retries", d.APIRetries)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("models_dir", d.ModelsDir)
	v.SetDefault("log_level", d.LogLevel)
	v.AutomaticEnv()

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	timeout, err := parseTimeout(v.GetString("api_timeout"))
	if err != nil {
		return nil, err
	}
	s.APITimeout = timeout

	return s, nil
}

// parseTimeout accepts plain seconds ("10") or a Go duration ("1m30s").
func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("api_timeout %q is neither seconds nor a duration", value)
	}
	return d, nil
}

// Validate checks if the settings are usable
func (s *Settings) Validate() error {
	if s.GymEnv == "" {
		return fmt.Errorf("gym_env is required")
	}
	if s.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive")
	}
	if s.APIRetries < 0 {
		return fmt.Errorf("api_retries must not be negative")
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the zerolog level, forcing debug when DebugMode is set.
func (s *Settings) Level() zerolog.Level {
	if s.DebugMode {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
