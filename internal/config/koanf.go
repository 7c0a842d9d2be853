// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/trickortreat/config.yaml",
	"/etc/trickortreat/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the location of the optional .env file.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Driver:       "duckdb",
			Path:         "/data/trickortreat.duckdb",
			MaxMemory:    "512MB",
			Threads:      0,
			MaxOpenConns: 0,
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			TokenTTL:          time.Hour,
			BcryptCost:        10,
			PasswordMinLength: 6,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Geocoder: GeocoderConfig{
			BaseURL:   "https://api.mapbox.com",
			Timeout:   5 * time.Second,
			RateLimit: 10,
			Burst:     5,
			CacheTTL:  24 * time.Hour,
		},
		Photos: PhotosConfig{
			Backend:          "badger",
			BadgerPath:       "/data/photos",
			CloudinaryURL:    "https://api.cloudinary.com",
			Folder:           "treatproviders",
			Timeout:          30 * time.Second,
			MaxFiles:         5,
			MaxFileBytes:     10 << 20,
			AllowedMIMETypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
			GCInterval:       10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in layers: struct defaults, then the
// optional YAML file, then environment variables. A .env file, when present,
// is read into the process environment first so its values take part in the
// environment layer without overriding variables that are already set.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads DOTENV_PATH (or ./.env) when it exists. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"photos.allowed_mime_types",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unlisted variables are ignored so unrelated process env never leaks into config.
var envMappings = map[string]string{
	// Server
	"port":             "server.port",
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Database
	"db_driver":         "database.driver",
	"duckdb_path":       "database.path",
	"database_url":      "database.dsn",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"db_max_open_conns": "database.max_open_conns",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"token_ttl":           "security.token_ttl",
	"bcrypt_cost":         "security.bcrypt_cost",
	"password_min_length": "security.password_min_length",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"casbin_model_path":   "security.casbin.model_path",
	"casbin_policy_path":  "security.casbin.policy_path",

	// Geocoder
	"mapbox_access_token": "geocoder.access_token",
	"geocoder_base_url":   "geocoder.base_url",
	"geocoder_timeout":    "geocoder.timeout",
	"geocoder_rate_limit": "geocoder.rate_limit",
	"geocoder_burst":      "geocoder.burst",
	"geocoder_cache_size": "geocoder.cache_size",
	"geocoder_cache_ttl":  "geocoder.cache_ttl",

	// Photos
	"photo_backend":            "photos.backend",
	"photo_badger_path":        "photos.badger_path",
	"photo_public_base_url":    "photos.public_base_url",
	"cloudinary_cloud_name":    "photos.cloud_name",
	"cloudinary_api_key":       "photos.api_key",
	"cloudinary_api_secret":    "photos.api_secret",
	"cloudinary_url":           "photos.cloudinary_url",
	"cloudinary_folder":        "photos.folder",
	"photo_upload_timeout":     "photos.timeout",
	"photo_max_files":          "photos.max_files",
	"photo_max_file_bytes":     "photos.max_file_bytes",
	"photo_allowed_mime_types": "photos.allowed_mime_types",
	"photo_gc_interval":        "photos.gc_interval",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - PORT -> server.port
//   - JWT_SECRET -> security.jwt_secret
//   - MAPBOX_ACCESS_TOKEN -> geocoder.access_token
//   - CLOUDINARY_API_KEY -> photos.api_key
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
