// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package api

import (
	"github.com/tomtom215/trickortreat/internal/auth"
	"github.com/tomtom215/trickortreat/internal/authz"
)

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	handler       *Handler
	authn         *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a new router. chiMw carries CORS and rate limit settings;
// authn validates bearer tokens and authzMw applies the casbin policy to the
// routes that need a caller.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, authn *auth.Middleware, authzMw *authz.Middleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		authn:         authn,
		authz:         authzMw,
		chiMiddleware: chiMw,
	}
}
