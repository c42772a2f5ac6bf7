// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/classelect/ballotd/cliparse"
	"github.com/classelect/ballotd/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. A single pooled connection keeps the :memory: database alive and
// serializes access, which is also what makes the concurrency tests honest:
// contention resolves in the store, not in test scheduling.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration with an election
// window spanning the present.
func GetTestConfig() cliparse.Config {
	now := time.Now()
	return cliparse.Config{
		Port:          3324,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		JWTSecret:     "test-jwt-secret",
		ElectionStart: now.Add(-time.Hour),
		ElectionEnd:   now.Add(time.Hour),
		SMTPHost:      "localhost",
		SMTPPort:      2525,
		MailFrom:      "committee@example.edu",
	}
}

// SeedVoter inserts a voter on the electoral roll.
func SeedVoter(t *testing.T, conn *sqlx.DB, identifier, contact string, hasVoted bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (identifier, contact, has_voted)
		VALUES (?, ?, ?)
	`, identifier, contact, hasVoted)
	if err != nil {
		t.Fatalf("Failed to seed voter %s: %v", identifier, err)
	}
}

// SeedVoterWithOTP inserts a voter holding an issued code.
func SeedVoterWithOTP(t *testing.T, conn *sqlx.DB, identifier, contact, code string, expiry time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (identifier, contact, current_otp, otp_expiry, has_voted)
		VALUES (?, ?, ?, ?, FALSE)
	`, identifier, contact, code, expiry)
	if err != nil {
		t.Fatalf("Failed to seed voter %s: %v", identifier, err)
	}
}

// SeedCandidate adds a candidate to the roster with a zero tally.
func SeedCandidate(t *testing.T, conn *sqlx.DB, id, name, position string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, position, votes)
		VALUES (?, ?, ?, 0)
	`, id, name, position)
	if err != nil {
		t.Fatalf("Failed to seed candidate %s: %v", id, err)
	}
}

// GetTally reads the current vote count for a candidate.
func GetTally(t *testing.T, conn *sqlx.DB, candidateID string) int64 {
	t.Helper()

	var votes int64
	if err := conn.Get(&votes, `SELECT votes FROM candidate WHERE id = ?`, candidateID); err != nil {
		t.Fatalf("Failed to read tally for %s: %v", candidateID, err)
	}
	return votes
}

// HasVoted reads a voter's has_voted flag.
func HasVoted(t *testing.T, conn *sqlx.DB, identifier string) bool {
	t.Helper()

	var voted bool
	if err := conn.Get(&voted, `SELECT has_voted FROM voter WHERE identifier = ?`, identifier); err != nil {
		t.Fatalf("Failed to read has_voted for %s: %v", identifier, err)
	}
	return voted
}

// StoredOTP reads a voter's current code, or "" when cleared.
func StoredOTP(t *testing.T, conn *sqlx.DB, identifier string) string {
	t.Helper()

	var code sql.NullString
	if err := conn.Get(&code, `SELECT current_otp FROM voter WHERE identifier = ?`, identifier); err != nil {
		t.Fatalf("Failed to read current_otp for %s: %v", identifier, err)
	}
	return code.String
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// SessionCookie extracts the named cookie from a recorded response, or nil.
func SessionCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
