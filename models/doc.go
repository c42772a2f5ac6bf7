// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON request/response types for the ballotd API.

Wire field names are camelCase to match the fixed HTTP contract consumed by
the UI layer ({identifier}, {candidateIds}, {success, receipt}, ...).

ErrorResponse carries a stable machine-readable code alongside the
human-readable message; the codes are defined in the election package and
mapped to HTTP statuses by the handlers.
*/
package models
