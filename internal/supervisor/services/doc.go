// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package services adapts server components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancellation
  - PhotoGCService: periodic value log GC for the embedded photo store

Both implement fmt.Stringer so supervisor events name the service.
*/
package services
