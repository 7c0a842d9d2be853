// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

/*
Package photos stores the images attached to treat provider profiles.

Two backends implement Store:

  - BadgerStore keeps blobs in an embedded BadgerDB. The API serves them at
    GET /photos/{publicId}. This is the development default.
  - CloudinaryStore sends signed multipart uploads and destroy calls to the
    Cloudinary REST API behind a circuit breaker.

Photo rows in the database hold only the public URL. PublicIDFromURL recovers
the backend id from that URL so the media can be destroyed when the rows are
replaced or their provider is deleted.
*/
package photos
