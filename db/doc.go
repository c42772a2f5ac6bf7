// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - voter: the electoral roll: identifier, contact address, ephemeral OTP
    state, and the monotonic has_voted flag
  - origin_request: append-only log of OTP issuance attempts per network
    origin, used for distinct-voter throttling
  - candidate: candidate roster with per-candidate vote tallies

There are no foreign keys between them: a ballot is never stored as a row
linking a voter to a candidate. The only artifacts of a cast vote are the
incremented candidate tallies and the voter's has_voted flag.

# Portability

The DDL works unchanged on SQLite (dev, tests) and PostgreSQL (production).
Timestamps are always bound by the caller rather than defaulted with NOW().
*/
package db
