package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// Title is the service name reported by /info.
	Title = "YOLOv8 Inference API"
	// Description is the service description reported by /info.
	Description = "API for YOLOv8 object detection"
	// Version is the API version reported by /info.
	Version = "1.0"
)

type Config struct {
	Port                int           `env:"PORT" envDefault:"7860"`
	ModelPath           string        `env:"MODEL_PATH" envDefault:"models/best.onnx"`
	NamesPath           string        `env:"NAMES_PATH" envDefault:"models/data.yaml"`
	InputSize           int           `env:"INPUT_SIZE" envDefault:"640"`
	ConfidenceThreshold float64       `env:"CONF_THRESHOLD" envDefault:"0.25"`
	IoUThreshold        float64       `env:"IOU_THRESHOLD" envDefault:"0.7"`
	InferenceWorkers    int           `env:"INFERENCE_WORKERS" envDefault:"2"` // Liczba niezależnie załadowanych sieci
	MaxUploadSize       int64         `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	LogDirectory        string        `env:"LOG_DIR" envDefault:"logs"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins      []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that numeric settings are usable.
func (c *Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("invalid PORT: %d", c.Port)
	case c.InputSize <= 0:
		return fmt.Errorf("invalid INPUT_SIZE: %d", c.InputSize)
	case c.InferenceWorkers <= 0:
		return fmt.Errorf("invalid INFERENCE_WORKERS: %d", c.InferenceWorkers)
	case c.MaxUploadSize <= 0:
		return fmt.Errorf("invalid MAX_UPLOAD_SIZE: %d", c.MaxUploadSize)
	case c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1:
		return fmt.Errorf("invalid CONF_THRESHOLD: %v", c.ConfidenceThreshold)
	case c.IoUThreshold < 0 || c.IoUThreshold > 1:
		return fmt.Errorf("invalid IOU_THRESHOLD: %v", c.IoUThreshold)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
