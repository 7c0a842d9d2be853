// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package config provides centralized configuration management for the
trick-or-treat directory service.

Configuration is layered with Koanf v2: built-in defaults, an optional YAML
file (CONFIG_PATH, config.yaml or /etc/trickortreat/config.yaml), then
environment variables. An optional .env file (DOTENV_PATH or ./.env) is read
into the process environment before the environment layer is applied.

# Environment Variables

HTTP Server (ServerConfig):
  - PORT / HTTP_PORT: Listen port (default: 3001)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development or production

Database (DatabaseConfig):
  - DB_DRIVER: duckdb (default) or postgres
  - DUCKDB_PATH: Database file path (default: /data/trickortreat.duckdb)
  - DATABASE_URL: PostgreSQL connection string
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS: DuckDB tuning

Security (SecurityConfig):
  - JWT_SECRET: HS256 signing secret (min 32 chars, required)
  - TOKEN_TTL: Token lifetime (default: 1h)
  - BCRYPT_COST: Hash cost (default: 10)
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Geocoder (GeocoderConfig):
  - MAPBOX_ACCESS_TOKEN: Required in production
  - GEOCODER_BASE_URL, GEOCODER_TIMEOUT, GEOCODER_RATE_LIMIT, GEOCODER_BURST
  - GEOCODER_CACHE_SIZE, GEOCODER_CACHE_TTL: opt-in lookup cache (default: off, 24h)

Photos (PhotosConfig):
  - PHOTO_BACKEND: badger (default) or cloudinary
  - PHOTO_BADGER_PATH, PHOTO_PUBLIC_BASE_URL
  - CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET
  - PHOTO_MAX_FILES, PHOTO_MAX_FILE_BYTES, PHOTO_ALLOWED_MIME_TYPES

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load config")
	}
	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)

# Thread Safety

The Config struct is immutable after Load() returns and safe for concurrent
reads.
*/
package config
