// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package auth provides token authentication and password hashing.

Key Components:

  - JWTManager: HS256 token generation and validation. Tokens carry the user
    id and a snapshot of the provider link taken at login or signup.
  - PasswordHasher: bcrypt hashing with a configurable cost.
  - Middleware: bearer token verification for protected routes.
  - SecurityHeaders: response hardening headers.

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	authMW := auth.NewMiddleware(jwtManager)

	r.Group(func(r chi.Router) {
	    r.Use(authMW.Authenticate)
	    r.Get("/savedhouses/savedhouses", h.ListSavedHouses)
	})

	claims, ok := auth.ClaimsFromContext(r.Context())

Missing, malformed or expired tokens are answered with 401 before any handler
runs. Authorization decisions (403) live in package authz.
*/
package auth
