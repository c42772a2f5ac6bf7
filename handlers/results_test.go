// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classelect/ballotd/models"
	"github.com/classelect/ballotd/testutil"
)

func TestGetCandidates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn)

	testutil.SeedCandidate(t, conn, "C2", "Ben Eze", "Senator")
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")
	testutil.SeedCandidate(t, conn, "C3", "Chi Ike", "President")

	req := testutil.MakeRequest("GET", "/candidates", nil, nil)
	w := httptest.NewRecorder()

	handler.GetCandidates(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	testutil.AssertJSON(t, w, &candidates)

	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}
	// Ordered by position, then name
	wantOrder := []string{"C3", "C1", "C2"}
	for i, want := range wantOrder {
		if candidates[i].ID != want {
			t.Errorf("candidates[%d].ID = %s, want %s", i, candidates[i].ID, want)
		}
	}
}

func TestGetResults(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn)

	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")
	testutil.SeedCandidate(t, conn, "C2", "Ben Eze", "Senator")
	testutil.SeedCandidate(t, conn, "C3", "Chi Ike", "Senator")

	for candidateID, votes := range map[string]int{"C1": 2, "C3": 5} {
		if _, err := conn.Exec(`UPDATE candidate SET votes = ? WHERE id = ?`, votes, candidateID); err != nil {
			t.Fatalf("Failed to set tally for %s: %v", candidateID, err)
		}
	}

	req := testutil.MakeRequest("GET", "/results", nil, nil)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var tallies []models.CandidateTally
	testutil.AssertJSON(t, w, &tallies)

	if len(tallies) != 3 {
		t.Fatalf("Expected 3 tallies, got %d", len(tallies))
	}
	// Ordered by votes descending, then name
	wantOrder := []struct {
		id    string
		votes int64
	}{
		{"C3", 5},
		{"C1", 2},
		{"C2", 0},
	}
	for i, want := range wantOrder {
		if tallies[i].ID != want.id || tallies[i].Votes != want.votes {
			t.Errorf("tallies[%d] = %s/%d, want %s/%d",
				i, tallies[i].ID, tallies[i].Votes, want.id, want.votes)
		}
	}
}

func TestGetResultsEmptyRoster(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(conn)

	req := testutil.MakeRequest("GET", "/results", nil, nil)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var tallies []models.CandidateTally
	testutil.AssertJSON(t, w, &tallies)
	if len(tallies) != 0 {
		t.Errorf("Expected empty tally list, got %d entries", len(tallies))
	}
}
