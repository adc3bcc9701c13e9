package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type (
	Config struct {
		Port          string `env:"PORT" envDefault:"8080"`
		SessionSecret string `env:"SESSION_SECRET" envDefault:"secret_key_change_me"`
		DatabaseURL   string `env:"DATABASE_URL"`
		LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

		// Bootstrap Super User, created on first start if the email is unknown.
		AdminEmail    string `env:"ADMIN_EMAIL"`
		AdminPassword string `env:"ADMIN_PASSWORD"`

		Vision VisionConfig `envPrefix:"VISION_"`
		Store  StoreConfig  `envPrefix:"S3_"`
		Ingest IngestConfig `envPrefix:"INGEST_"`
		SMTP   SMTPConfig   `envPrefix:"SMTP_"`
	}

	// VisionConfig drives the image suggestion client. An empty APIKey
	// disables the feature without affecting anything else.
	VisionConfig struct {
		APIKey  string `env:"API_KEY"`
		Model   string `env:"MODEL" envDefault:"gemini-2.5-flash"`
		BaseURL string `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	}

	// StoreConfig points at the object store for item photos. When Endpoint
	// is empty, images fall back to the local data directory.
	StoreConfig struct {
		Endpoint  string `env:"ENDPOINT"`
		AccessKey string `env:"ACCESS_KEY"`
		SecretKey string `env:"SECRET_KEY"`
		Bucket    string `env:"BUCKET" envDefault:"lostfound"`
		UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
		LocalDir  string `env:"LOCAL_DIR" envDefault:"./data/uploads"`
	}

	// IngestConfig guards the inbound mail gateway endpoint. An empty token
	// disables ingestion.
	IngestConfig struct {
		Token string `env:"TOKEN"`
	}

	SMTPConfig struct {
		Host     string `env:"HOST"`
		Port     string `env:"PORT"`
		Username string `env:"USER"`
		Password string `env:"PASS"`
		From     string `env:"FROM"`
	}
)

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
