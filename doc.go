// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotd API server.

ballotd lets a roll of registered voters authenticate with a one-time
passcode and cast a bounded ballot exactly once. Ballot content is never
re-linkable to the voter: the only persisted artifacts of a cast vote are
the per-candidate tallies and the voter's has_voted flag.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3324 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - JWT_SECRET (-jwt-secret): secret for session credential signing
  - ELECTION_START / ELECTION_END: voting window (RFC3339)
  - SMTP_HOST: relay for OTP delivery

Optional settings:

  - PORT (-p): server port (default: 3324)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SMTP_PORT, SMTP_USER, SMTP_PASS, MAIL_FROM
  - SECURE_COOKIES: "true" behind HTTPS

# Architecture

The server uses a handler-based architecture with dependency injection:

  - election: the core protocol (OTP issuer, verifier, commit engine, abuse guard)
  - auth: session credentials (JWT), receipts, codes, masking
  - mailer: SMTP notification collaborator
  - handlers: HTTP adapters mapping failure codes to statuses
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, JSON helpers, client IP
  - models: request/response types

Voter rows and the candidate roster are seeded out-of-band before the
election opens; ballotd only reads and mutates them during the window.
*/
package main
