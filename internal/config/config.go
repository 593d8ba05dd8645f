// Package config loads connection and extract settings from the
// environment, with an optional YAML file as the base layer. A .env file in
// the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything a run needs to reach the object store and the
// database. Environment variables override file values.
type Config struct {
	DatabaseURL    string `yaml:"database_url"`
	MinioEndpoint  string `yaml:"minio_endpoint"`
	MinioAccessKey string `yaml:"minio_access_key"`
	MinioSecretKey string `yaml:"minio_secret_key"`
	MinioUseSSL    bool   `yaml:"minio_use_ssl"`
	Bucket         string `yaml:"bucket"`
	ObjectKey      string `yaml:"object_key"`
}

// Load reads the optional YAML file at path (skipped when empty), then
// applies environment overrides. Defaults match the local development
// stack the extract pipeline runs against.
func Load(path string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg := &Config{
		MinioEndpoint: "localhost:9000",
		ObjectKey:     "fashion_store_sales.csv",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)
	cfg.MinioEndpoint = getenv("MINIO_ENDPOINT", cfg.MinioEndpoint)
	cfg.MinioAccessKey = getenv("MINIO_ROOT_USER", cfg.MinioAccessKey)
	cfg.MinioSecretKey = getenv("MINIO_ROOT_PASSWORD", cfg.MinioSecretKey)
	cfg.Bucket = getenv("MINIO_BUCKET_NAME", cfg.Bucket)
	cfg.ObjectKey = getenv("FILE_NAME", cfg.ObjectKey)
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		cfg.MinioUseSSL = strings.EqualFold(v, "true")
	}

	return cfg, nil
}

// Validate reports the missing required settings. Callers check this
// before any connection is opened.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.MinioAccessKey == "" {
		missing = append(missing, "MINIO_ROOT_USER")
	}
	if c.MinioSecretKey == "" {
		missing = append(missing, "MINIO_ROOT_PASSWORD")
	}
	if c.Bucket == "" {
		missing = append(missing, "MINIO_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
