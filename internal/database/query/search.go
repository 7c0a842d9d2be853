// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package query

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/trickortreat/internal/models"
)

const (
	// ProvidersTable is the table searched by the filter endpoint.
	ProvidersTable = "treat_providers"

	// ProviderColumns lists the provider columns in scan order.
	ProviderColumns = "treatproviderid, address, treatsprovided, hours, hauntedhouse, description, latitude, longitude"

	// EarthRadiusKm is the mean Earth radius used for distances.
	EarthRadiusKm = 6371

	// DefaultRadiusKm applies when the radius is missing or not positive.
	DefaultRadiusKm = 10.0

	// DefaultLimit applies when the page size is missing or not positive.
	DefaultLimit = 10

	// MaxOffset caps OFFSET so (page-1)*limit never overflows. Any page past
	// it is empty anyway.
	MaxOffset = math.MaxInt32
)

// distanceExpr is the spherical law of cosines. The ACOS argument is clamped
// to [-1, 1] so rounding never produces NaN for identical points.
const distanceExpr = "%d * ACOS(LEAST(1.0, GREATEST(-1.0, " +
	"COS(RADIANS(CAST(? AS DOUBLE PRECISION))) * COS(RADIANS(latitude)) * " +
	"COS(RADIANS(longitude) - RADIANS(CAST(? AS DOUBLE PRECISION))) + " +
	"SIN(RADIANS(CAST(? AS DOUBLE PRECISION))) * SIN(RADIANS(latitude)))))"

// sortColumns maps accepted sortBy values to columns.
var sortColumns = map[string]string{
	models.SortByTreats:       "treatsprovided",
	"treatsprovided":          "treatsprovided",
	models.SortByHauntedHouse: "hauntedhouse",
	models.SortByDistance:     "distance",
}

// DistanceColumn returns the select expression for the computed distance in
// kilometers from origin, or "" when origin is nil.
func DistanceColumn(origin *models.Origin) (string, []interface{}) {
	if origin == nil {
		return "", nil
	}
	expr := fmt.Sprintf(distanceExpr, EarthRadiusKm) + " AS distance"
	return expr, []interface{}{origin.Latitude, origin.Longitude, origin.Latitude}
}

// RadiusClause keeps rows strictly closer than radius. It only applies when
// an origin is present. Rows without a coordinate have a NULL distance and
// never match.
func RadiusClause(origin *models.Origin, radius float64) (string, []interface{}) {
	if origin == nil {
		return "", nil
	}
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	return "distance < ?", []interface{}{radius}
}

// HauntedHouseClause matches the haunted-house flag exactly.
func HauntedHouseClause(haunted *bool) (string, []interface{}) {
	if haunted == nil {
		return "", nil
	}
	return "hauntedhouse = ?", []interface{}{*haunted}
}

// TreatsClause is a case-insensitive substring match on the treats column.
func TreatsClause(treats string) (string, []interface{}) {
	if treats == "" {
		return "", nil
	}
	return "treatsprovided ILIKE '%' || CAST(? AS VARCHAR) || '%'", []interface{}{treats}
}

// OrderBy returns the ORDER BY clause. Unknown keys fall back to distance
// when an origin is present and to the provider id otherwise. sortOrder is
// only honored when sortBy is given. The provider id is always the final
// tie-break.
func OrderBy(sortBy, sortOrder string, hasOrigin bool) string {
	column, ok := sortColumns[strings.ToLower(sortBy)]
	if !ok || (column == "distance" && !hasOrigin) {
		column = "treatproviderid"
		if hasOrigin {
			column = "distance"
		}
	}

	direction := "ASC"
	if sortBy != "" && strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}

	if column == "treatproviderid" {
		return "ORDER BY treatproviderid " + direction
	}
	return fmt.Sprintf("ORDER BY %s %s, treatproviderid ASC", column, direction)
}

// Paginate returns the LIMIT/OFFSET clause for a 1-based page.
func Paginate(page, limit int) (string, []interface{}) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = 1
	}
	offset := MaxOffset
	if page-1 <= MaxOffset/limit {
		offset = (page - 1) * limit
	}
	return "LIMIT ? OFFSET ?", []interface{}{limit, offset}
}

// SearchQuery composes the filter endpoint's read query from the fragments
// above. Every user supplied value is bound as an argument.
//
//	sq := query.NewSearchQuery(params)
//	sqlText, args := sq.Build()
//	rows, err := db.QueryxContext(ctx, db.Rebind(sqlText), args...)
type SearchQuery struct {
	params models.SearchParams
}

// NewSearchQuery creates a SearchQuery for normalized params.
func NewSearchQuery(params models.SearchParams) *SearchQuery {
	return &SearchQuery{params: params}
}

// Where returns the filter clauses applied to the inner select.
func (sq *SearchQuery) Where() *WhereBuilder {
	p := sq.params
	wb := NewWhereBuilder()

	clause, args := RadiusClause(p.Origin, p.Radius)
	wb.AddClause(clause, args...)

	clause, args = HauntedHouseClause(p.HauntedHouse)
	wb.AddClause(clause, args...)

	clause, args = TreatsClause(p.Treats)
	wb.AddClause(clause, args...)

	return wb
}

// Build returns the read query and its arguments.
func (sq *SearchQuery) Build() (string, []interface{}) {
	p := sq.params
	args := make([]interface{}, 0, 8)

	columns := ProviderColumns
	if expr, distArgs := DistanceColumn(p.Origin); expr != "" {
		columns += ", " + expr
		args = append(args, distArgs...)
	}

	whereClause, whereArgs := sq.Where().BuildWithPrefix()
	args = append(args, whereArgs...)

	pageClause, pageArgs := Paginate(p.Page, p.Limit)
	args = append(args, pageArgs...)

	sqlText := fmt.Sprintf("SELECT * FROM (SELECT %s FROM %s) AS tp %s %s %s",
		columns, ProvidersTable, whereClause,
		OrderBy(p.SortBy, p.SortOrder, p.Origin != nil), pageClause)
	return sqlText, args
}

// CountSQL returns the total-count statement. It counts every provider,
// ignoring the filters.
func (sq *SearchQuery) CountSQL() string {
	return "SELECT COUNT(*) FROM " + ProvidersTable
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit < 1 {
		limit = DefaultLimit
	}
	l := int64(limit)
	return (total + l - 1) / l
}
