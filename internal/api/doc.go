// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package api provides the HTTP surface of the treat provider directory.

# Routes

	POST   /users/signup                          create account (rate limited)
	POST   /users/login                           issue token (rate limited)
	GET    /users/users                           list accounts            (bearer)
	PUT    /users/user/treatprovider              opt in/out of provider   (bearer)
	DELETE /users/users/{userId}                  delete own account       (bearer, self)
	PUT    /users/change-password/{userId}        rotate own password      (bearer, self)
	POST   /treatproviders/treatproviders         create profile           (bearer)
	PUT    /treatproviders/treatproviders         edit profile, JSON or multipart (bearer)
	GET    /treatproviders/treatproviders         list providers with photos
	GET    /treatproviders/treatproviders/{id}    one provider with photos
	GET    /treatproviders/treatprovidersfilter   filter, sort and page
	POST   /savedhouses/savedhouses               bookmark a provider      (bearer)
	GET    /savedhouses/savedhouses               list bookmarks           (bearer)
	DELETE /savedhouses/savedhouses/{treatProviderId}  remove bookmark     (bearer)
	GET    /health                                database ping
	GET    /metrics                               Prometheus metrics
	GET    /photos/{publicId}                     photo bytes (badger backend only)

# Errors

Every error body has the shape

	{"error": "Treat provider not found", "code": "NOT_FOUND", "request_id": "..."}

Store sentinels from package database are mapped in one place (writeStoreError):
ErrNotFound is 404, ErrDuplicate and ErrConflict are 409, ErrNotProvider is 404
and ErrUnavailable is 503. Anything else is logged with the request context and
answered with a generic 500. Geocoding misses and failures are 400.

# Middleware

The global stack is request ID, real IP, access log, panic recovery, CORS,
security headers and Prometheus metrics. Authenticated groups add a per-IP
rate limit, bearer token validation (package auth) and the casbin policy
check (package authz).
*/
package api
