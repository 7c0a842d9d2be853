// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package models defines data structures for the trick-or-treat directory.

This package contains the database rows, API request bodies and API response
shapes shared by the store, the query builder and the HTTP handlers. It serves
as the single source of truth for data structure definitions.

Key Components:

  - User: account with a unique email and an optional provider link
  - Provider: a treat-giving household with an optional coordinate
  - Photo: a stored image belonging to exactly one provider
  - SearchParams / SearchResponse: the filter endpoint's input and output

Model Categories:

1. Database Models:
  - User, Provider, Photo, SavedHouse

2. API Request Models:
  - SignupRequest, LoginRequest, ProviderStatusRequest
  - CreateProviderRequest, UpdateProviderRequest
  - ChangePasswordRequest, SaveHouseRequest

3. API Response Models:
  - AuthResponse, UserSummary, ProviderStatusResponse
  - MessageResponse, ErrorResponse, SearchResponse, HealthResponse

JSON Field Names:

Response fields use the lowercase column spellings the browser client was
written against (treatproviderid, treatsprovided, hauntedhouse, photourl).
Request bodies use camelCase (treatProviderId, wantsToBeTreatProvider). JSON
decoding matches keys case-insensitively, so "treatsprovided" and
"treatsProvided" bind to the same field.

Thread Safety:

Model types are plain data with no internal synchronization.
*/
package models
