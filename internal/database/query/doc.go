// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

// Package query provides SQL query building utilities for the database package.
//
// # Overview
//
// WhereBuilder joins parameterized WHERE fragments with AND:
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("hauntedhouse = ?", true)
//	wb.AddClause("treatsprovided ILIKE '%' || CAST(? AS VARCHAR) || '%'", "chocolate")
//	whereClause, args := wb.Build()
//
// SearchQuery builds the provider filter query from named fragments:
//
//   - DistanceColumn: great-circle distance in km from the geocoded origin
//   - RadiusClause: distance < radius (only with an origin)
//   - HauntedHouseClause: exact match on the haunted-house flag
//   - TreatsClause: case-insensitive substring match on treats
//   - OrderBy: validated sort column and direction, id tie-break
//   - Paginate: LIMIT/OFFSET from a 1-based page
//
// The distance column is computed in an inner select so the outer WHERE and
// ORDER BY can reference it by name on both DuckDB and PostgreSQL.
//
// # Security
//
// Fragments only ever contain fixed SQL text and "?" placeholders. Sort
// columns come from a fixed allow-list; user input never reaches the SQL text.
//
// # Thread Safety
//
// Builders are not safe for concurrent use. Create one per query.
package query
