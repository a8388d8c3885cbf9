// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

/*
Package api provides the HTTP REST layer for Filmorate.

Routes are registered on a Chi router with a shared middleware stack
(request id, real IP, panic recovery, CORS, rate limiting, Prometheus
instrumentation). Handlers decode request bodies, delegate to the
service layer and map domain errors onto HTTP status codes:

  - unknown film, user, genre or MPA rating: 404
  - validation failures, self-friendship, removing an absent like,
    non-positive popular count: 400
  - anything else: 500

Error bodies are a single JSON object {"error": "..."} so clients have
one shape to parse regardless of the failure.
*/
package api
