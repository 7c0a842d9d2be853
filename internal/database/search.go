// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"context"
	"time"

	"github.com/tomtom215/trickortreat/internal/database/query"
	"github.com/tomtom215/trickortreat/internal/models"
)

// SearchProviders runs the filter query built from params. TotalRecords is
// the size of the whole providers table, not of the filtered set.
func (db *DB) SearchProviders(ctx context.Context, params *models.SearchParams) (*models.SearchResponse, error) {
	sq := query.NewSearchQuery(*params)
	sqlText, args := sq.Build()

	start := time.Now()
	rows := []models.Provider{}
	err := db.conn.SelectContext(ctx, &rows, db.rebind(sqlText), args...)
	if err := observe("search", "treat_providers", start, err); err != nil {
		return nil, classify("search providers", err)
	}

	start = time.Now()
	var total int64
	err = db.conn.GetContext(ctx, &total, sq.CountSQL())
	if err := observe("count", "treat_providers", start, err); err != nil {
		return nil, classify("count providers", err)
	}

	if err := attachPhotos(ctx, db.conn, rows); err != nil {
		return nil, err
	}

	return &models.SearchResponse{
		Data:         rows,
		TotalRecords: total,
		TotalPages:   query.TotalPages(total, params.Limit),
	}, nil
}
