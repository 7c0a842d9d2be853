// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package validation provides request struct validation using
// go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct
// metadata). Field names in messages come from the json tag, and the
// non-standard "notblank" validator is registered for free-text fields that
// must contain more than whitespace.
//
//	type SignupRequest struct {
//	    Email    string `json:"email" validate:"required,email,max=254"`
//	    Password string `json:"password" validate:"required"`
//	}
package validation
