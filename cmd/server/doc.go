// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package main is the entry point for the treat provider directory server.

The server keeps accounts, treat provider profiles, their photos and saved
houses in SQL, geocodes addresses with Mapbox and stores uploaded photos in
an embedded badger store or Cloudinary.

# Application Architecture

	RootSupervisor ("trickortreat")
	├── "storage-layer"
	│   └── PhotoGCService (PHOTO_BACKEND=badger)
	└── "api-layer"
	    └── HTTPServerService (chi router)

Initialization order:

 1. Configuration: .env file, config.yaml and environment via koanf
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB (default) or PostgreSQL, schema migrations applied
 4. Geocoder and photo store
 5. JWT manager and casbin enforcer
 6. Router and supervisor tree

# Configuration

	# Server
	PORT=3001
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Database
	DB_DRIVER=duckdb             # duckdb or postgres
	DUCKDB_PATH=/data/trickortreat.duckdb
	DATABASE_URL=postgres://...  # when DB_DRIVER=postgres

	# Security
	JWT_SECRET=<32+ chars>
	TOKEN_TTL=1h
	CORS_ORIGINS=https://treats.example.com

	# External services
	MAPBOX_ACCESS_TOKEN=<token>
	GEOCODER_CACHE_SIZE=0        # > 0 enables the lookup cache
	PHOTO_BACKEND=badger         # badger or cloudinary
	PHOTO_PUBLIC_BASE_URL=https://api.treats.example.com
	CLOUDINARY_CLOUD_NAME=...    # when PHOTO_BACKEND=cloudinary

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
SHUTDOWN_TIMEOUT, then the photo store and database are closed.
*/
package main
