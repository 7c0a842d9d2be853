// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateGeocoder(); err != nil {
		return err
	}

	if err := c.validatePhotos(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validDBDrivers defines the supported SQL engines
var validDBDrivers = map[string]bool{
	"duckdb":   true,
	"postgres": true,
}

// validateDatabase validates the selected driver has what it needs
func (c *Config) validateDatabase() error {
	if !validDBDrivers[c.Database.Driver] {
		return fmt.Errorf("DB_DRIVER must be one of: duckdb, postgres")
	}
	switch c.Database.Driver {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DB_DRIVER=duckdb")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

// validateAPI validates pagination bounds
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}

	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	// bcrypt.MinCost .. bcrypt.MaxCost
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	if c.Security.PasswordMinLength < 1 || c.Security.PasswordMinLength > maxPasswordBytes {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be between 1 and %d", maxPasswordBytes)
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

// validateJWTSecret validates the JWT secret configuration
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

// validateCORS rejects wildcard origins in production.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validateRateLimits keeps limiter settings inside sane bounds
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h")
	}
	return nil
}

// validateGeocoder validates the geocoder endpoint and limiter
func (c *Config) validateGeocoder() error {
	if c.Geocoder.AccessToken == "" && c.IsProduction() {
		return fmt.Errorf("MAPBOX_ACCESS_TOKEN is required in production")
	}
	if err := validateHTTPURL(c.Geocoder.BaseURL, "GEOCODER_BASE_URL"); err != nil {
		return err
	}
	if c.Geocoder.Timeout <= 0 {
		return fmt.Errorf("GEOCODER_TIMEOUT must be positive")
	}
	if c.Geocoder.RateLimit <= 0 {
		return fmt.Errorf("GEOCODER_RATE_LIMIT must be positive")
	}
	if c.Geocoder.Burst < 1 {
		return fmt.Errorf("GEOCODER_BURST must be at least 1")
	}
	if c.Geocoder.CacheSize < 0 {
		return fmt.Errorf("GEOCODER_CACHE_SIZE must not be negative")
	}
	if c.Geocoder.CacheSize > 0 && c.Geocoder.CacheTTL <= 0 {
		return fmt.Errorf("GEOCODER_CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

// validatePhotos validates the photo backend settings
func (c *Config) validatePhotos() error {
	switch c.Photos.Backend {
	case "badger":
		if c.Photos.BadgerPath == "" {
			return fmt.Errorf("PHOTO_BADGER_PATH is required when PHOTO_BACKEND=badger")
		}
	case "cloudinary":
		if c.Photos.CloudName == "" || c.Photos.APIKey == "" || c.Photos.APISecret == "" {
			return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required when PHOTO_BACKEND=cloudinary")
		}
		if err := validateHTTPURL(c.Photos.CloudinaryURL, "CLOUDINARY_URL"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("PHOTO_BACKEND must be one of: badger, cloudinary")
	}
	if c.Photos.MaxFiles < 1 {
		return fmt.Errorf("PHOTO_MAX_FILES must be at least 1")
	}
	if c.Photos.MaxFileBytes < 1 {
		return fmt.Errorf("PHOTO_MAX_FILE_BYTES must be positive")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL validates that a URL is a bare http(s) base URL.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// placeholderPatterns flag values the operator forgot to replace.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
