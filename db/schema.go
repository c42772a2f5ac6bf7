// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is kept portable between SQLite and PostgreSQL: no NOW() defaults
// (timestamps are always bound by the caller) and only type names both
// engines accept.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Electoral roll. Rows are seeded out-of-band before the election opens.
-- current_otp/otp_expiry are ephemeral: cleared on redemption, overwritten
-- on reissue, and cleared again when the vote commits.
CREATE TABLE IF NOT EXISTS voter (
    identifier TEXT PRIMARY KEY,
    contact TEXT NOT NULL,
    current_otp TEXT,
    otp_expiry TIMESTAMP,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE
);

-- Append-only log of OTP issuance attempts, one row per attempt.
-- Only ever queried as COUNT(DISTINCT voter_identifier) per origin.
CREATE TABLE IF NOT EXISTS origin_request (
    id TEXT PRIMARY KEY,
    origin TEXT NOT NULL,
    voter_identifier TEXT NOT NULL,
    requested_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_origin_request_origin ON origin_request(origin);

-- Candidates and their running tallies. votes is only ever incremented
-- inside the ballot commit transaction.
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position TEXT NOT NULL DEFAULT '',
    votes BIGINT NOT NULL DEFAULT 0
);
`
