// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/classelect/ballotd/testutil"
)

func TestEngineCast_SelectionValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedVoter(t, conn, "U2021/001", "student@example.edu", false)
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")

	tests := []struct {
		name         string
		candidateIDs []string
		want         Code
	}{
		{"empty selection", []string{}, CodeEmptySelection},
		{"nil selection", nil, CodeEmptySelection},
		{"six selections", []string{"C1", "C2", "C3", "C4", "C5", "C6"}, CodeTooManySelections},
		{"duplicate selections", []string{"C1", "C1"}, CodeDuplicateSelection},
		{"duplicate hidden in a full set", []string{"C1", "C2", "C3", "C4", "C1"}, CodeDuplicateSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(conn)
			_, err := engine.Cast(context.Background(), "U2021/001", tt.candidateIDs)
			assertCode(t, err, tt.want)
		})
	}

	// None of the refused casts may have touched state
	if testutil.HasVoted(t, conn, "U2021/001") {
		t.Error("refused casts marked the voter as having voted")
	}
	if votes := testutil.GetTally(t, conn, "C1"); votes != 0 {
		t.Errorf("refused casts moved the tally: %d", votes)
	}
}

func TestEngineCast_Success(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedVoter(t, conn, "U2021/001", "student@example.edu", false)
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")
	testutil.SeedCandidate(t, conn, "C2", "Ben Eze", "Senator")
	testutil.SeedCandidate(t, conn, "C3", "Chi Ike", "Senator")

	engine := NewEngine(conn)
	receipt, err := engine.Cast(context.Background(), "U2021/001", []string{"C1", "C3"})
	if err != nil {
		t.Fatalf("Cast() error = %v", err)
	}

	if !regexp.MustCompile(`^VOTE-[0-9A-F]{8}$`).MatchString(receipt) {
		t.Errorf("receipt %q does not match VOTE-XXXXXXXX", receipt)
	}

	if !testutil.HasVoted(t, conn, "U2021/001") {
		t.Error("voter not marked as having voted")
	}
	if votes := testutil.GetTally(t, conn, "C1"); votes != 1 {
		t.Errorf("tally[C1] = %d, want 1", votes)
	}
	if votes := testutil.GetTally(t, conn, "C2"); votes != 0 {
		t.Errorf("tally[C2] = %d, want 0", votes)
	}
	if votes := testutil.GetTally(t, conn, "C3"); votes != 1 {
		t.Errorf("tally[C3] = %d, want 1", votes)
	}
}

func TestEngineCast_Idempotence(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedVoter(t, conn, "U2021/001", "student@example.edu", false)
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")
	testutil.SeedCandidate(t, conn, "C2", "Ben Eze", "Senator")

	engine := NewEngine(conn)
	if _, err := engine.Cast(context.Background(), "U2021/001", []string{"C1"}); err != nil {
		t.Fatalf("first Cast() error = %v", err)
	}

	// A second cast for the same voter, even with a different selection,
	// must fail and leave every tally unchanged.
	_, err := engine.Cast(context.Background(), "U2021/001", []string{"C2"})
	assertCode(t, err, CodeAlreadyVoted)

	if votes := testutil.GetTally(t, conn, "C1"); votes != 1 {
		t.Errorf("tally[C1] = %d, want 1", votes)
	}
	if votes := testutil.GetTally(t, conn, "C2"); votes != 0 {
		t.Errorf("tally[C2] = %d, want 0", votes)
	}
}

func TestEngineCast_UnknownVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")

	engine := NewEngine(conn)
	_, err := engine.Cast(context.Background(), "U9999/999", []string{"C1"})
	assertCode(t, err, CodeNotFound)
}

func TestEngineCast_UnknownCandidateRollsBack(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedVoter(t, conn, "U2021/001", "student@example.edu", false)
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")

	engine := NewEngine(conn)
	_, err := engine.Cast(context.Background(), "U2021/001", []string{"C1", "C9"})
	assertCode(t, err, CodeCommitFailed)

	// All-or-nothing: the valid candidate's increment and the has_voted
	// flip must both have rolled back.
	if votes := testutil.GetTally(t, conn, "C1"); votes != 0 {
		t.Errorf("tally[C1] = %d after rollback, want 0", votes)
	}
	if testutil.HasVoted(t, conn, "U2021/001") {
		t.Error("voter marked as voted after a rolled-back commit")
	}

	// The voter can still cast a valid ballot afterwards
	if _, err := engine.Cast(context.Background(), "U2021/001", []string{"C1"}); err != nil {
		t.Errorf("Cast() after rollback: %v", err)
	}
}

func TestEngineCast_ClearsPendingOTP(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedVoterWithOTP(t, conn, "U2021/001", "student@example.edu", "123456", inWindow.Add(10*time.Minute))
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")

	engine := NewEngine(conn)
	if _, err := engine.Cast(context.Background(), "U2021/001", []string{"C1"}); err != nil {
		t.Fatalf("Cast() error = %v", err)
	}

	// has_voted implies no redeemable code
	if code := testutil.StoredOTP(t, conn, "U2021/001"); code != "" {
		t.Errorf("pending code survived the commit: %q", code)
	}
}

// TestEngineCast_ConcurrentDoubleCast verifies the exactly-once property:
// two simultaneous casts for the same voter resolve to one success and one
// ALREADY_VOTED, and the tally reflects exactly one of the two selections.
func TestEngineCast_ConcurrentDoubleCast(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedVoter(t, conn, "U2021/001", "student@example.edu", false)
	testutil.SeedCandidate(t, conn, "C1", "Ada Obi", "Senator")
	testutil.SeedCandidate(t, conn, "C2", "Ben Eze", "Senator")

	engine := NewEngine(conn)

	var successCount, alreadyVotedCount atomic.Int32
	var wg sync.WaitGroup

	selections := [][]string{{"C1"}, {"C2"}}
	for _, selection := range selections {
		wg.Add(1)
		go func(candidateIDs []string) {
			defer wg.Done()
			_, err := engine.Cast(context.Background(), "U2021/001", candidateIDs)
			if err == nil {
				successCount.Add(1)
				return
			}
			if code, _ := CodeOf(err); code == CodeAlreadyVoted {
				alreadyVotedCount.Add(1)
			}
		}(selection)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 successful cast, got %d", successCount.Load())
	}
	if alreadyVotedCount.Load() != 1 {
		t.Errorf("expected exactly 1 ALREADY_VOTED, got %d", alreadyVotedCount.Load())
	}

	total := testutil.GetTally(t, conn, "C1") + testutil.GetTally(t, conn, "C2")
	if total != 1 {
		t.Errorf("expected exactly 1 tallied vote across candidates, got %d", total)
	}
}
