// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. .env file: Loaded into the process environment when present
//  3. Config File: Optional YAML config file (config.yaml)
//  4. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Geocoder GeocoderConfig `koanf:"geocoder"`
	Photos   PhotosConfig   `koanf:"photos"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// DatabaseConfig selects and tunes the SQL engine.
//
// Driver "duckdb" (default) stores everything in an embedded file at Path.
// Driver "postgres" connects to DSN.
type DatabaseConfig struct {
	Driver       string `koanf:"driver"`
	Path         string `koanf:"path"`
	DSN          string `koanf:"dsn"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // DuckDB threads (0 = NumCPU)
	MaxOpenConns int    `koanf:"max_open_conns"`
}

// APIConfig holds API pagination settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and authorization settings
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	PasswordMinLength int           `koanf:"password_min_length"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	Casbin            CasbinConfig  `koanf:"casbin"`
}

// CasbinConfig points at optional model/policy overrides. Empty paths use
// the embedded defaults.
type CasbinConfig struct {
	ModelPath  string `koanf:"model_path"`
	PolicyPath string `koanf:"policy_path"`
}

// GeocoderConfig configures the Mapbox forward geocoder.
//
// Environment Variables:
//   - MAPBOX_ACCESS_TOKEN: Mapbox API token (required in production)
//   - GEOCODER_BASE_URL: API base URL (default: https://api.mapbox.com)
//   - GEOCODER_TIMEOUT: per-request timeout (default: 5s)
//   - GEOCODER_RATE_LIMIT: requests per second (default: 10)
type GeocoderConfig struct {
	AccessToken string        `koanf:"access_token"`
	BaseURL     string        `koanf:"base_url"`
	Timeout     time.Duration `koanf:"timeout"`
	RateLimit   float64       `koanf:"rate_limit"`
	Burst       int           `koanf:"burst"`
	CacheSize   int           `koanf:"cache_size"` // 0 disables the lookup cache
	CacheTTL    time.Duration `koanf:"cache_ttl"`
}

// PhotosConfig selects the photo storage backend.
//
// Backend "badger" keeps images in an embedded key/value store and serves them
// from /photos/{id}. Backend "cloudinary" uploads to Cloudinary.
type PhotosConfig struct {
	Backend          string        `koanf:"backend"`
	BadgerPath       string        `koanf:"badger_path"`
	PublicBaseURL    string        `koanf:"public_base_url"`
	CloudName        string        `koanf:"cloud_name"`
	APIKey           string        `koanf:"api_key"`
	APISecret        string        `koanf:"api_secret"`
	CloudinaryURL    string        `koanf:"cloudinary_url"`
	Folder           string        `koanf:"folder"`
	Timeout          time.Duration `koanf:"timeout"`
	MaxFiles         int           `koanf:"max_files"`
	MaxFileBytes     int64         `koanf:"max_file_bytes"`
	AllowedMIMETypes []string      `koanf:"allowed_mime_types"`
	GCInterval       time.Duration `koanf:"gc_interval"` // badger value log GC; 0 disables
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads configuration using Koanf v2.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
