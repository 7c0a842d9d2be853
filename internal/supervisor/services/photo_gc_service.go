// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package services

import (
	"context"
	"time"

	"github.com/tomtom215/trickortreat/internal/logging"
)

// DefaultDiscardRatio is the share of stale data a badger value log file
// must hold before it is rewritten.
const DefaultDiscardRatio = 0.5

// GarbageCollector is satisfied by *photos.BadgerStore.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// PhotoGCService periodically reclaims value log space in the embedded
// photo store. Replaced and deleted photos leave stale blobs behind until a
// GC pass rewrites their files.
type PhotoGCService struct {
	collector    GarbageCollector
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewPhotoGCService creates the GC loop. A non-positive interval becomes 10m.
func NewPhotoGCService(collector GarbageCollector, interval time.Duration) *PhotoGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &PhotoGCService{
		collector:    collector,
		interval:     interval,
		discardRatio: DefaultDiscardRatio,
		name:         "photo-gc",
	}
}

// Serve implements suture.Service. GC errors are logged and retried on the
// next tick; they are not worth restarting the service for.
func (s *PhotoGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger := logging.WithComponent(s.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.collector.RunGC(s.discardRatio); err != nil {
				logger.Warn().Err(err).Msg("Photo store GC failed")
				continue
			}
			logger.Debug().Dur("duration", time.Since(start)).Msg("Photo store GC pass complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *PhotoGCService) String() string {
	return s.name
}
