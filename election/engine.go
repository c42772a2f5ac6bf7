// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classelect/ballotd/auth"
)

// MaxSelections is the largest number of candidates one ballot may carry.
const MaxSelections = 5

// Engine commits ballots: one atomic transaction that flips the voter's
// has_voted flag, increments the selected tallies and produces an anonymous
// receipt. Nothing persisted ever links the voter to the selection.
type Engine struct {
	db *sqlx.DB
}

func NewEngine(db *sqlx.DB) *Engine {
	return &Engine{db: db}
}

// Cast validates the selection and commits it exactly once for the given
// voter. Two concurrent casts for the same voter resolve to one success and
// one ALREADY_VOTED: the has_voted flip is a compare-and-set enforced by the
// store, not an application-level lock. Any failure inside the transaction
// rolls the whole commit back; no partial tally state is ever observable.
func (e *Engine) Cast(ctx context.Context, voterID string, candidateIDs []string) (string, error) {
	if len(candidateIDs) == 0 {
		return "", newError(CodeEmptySelection, "you must select at least 1 candidate")
	}
	if len(candidateIDs) > MaxSelections {
		return "", newError(CodeTooManySelections,
			fmt.Sprintf("you cannot select more than %d candidates", MaxSelections))
	}
	// Duplicates are a client-protocol violation, not silently corrected.
	seen := make(map[string]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		if seen[id] {
			return "", newError(CodeDuplicateSelection, "duplicate candidates detected")
		}
		seen[id] = true
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", wrapError(CodeStoreUnavailable, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	// Compare-and-set on has_voted. This is the exactly-once guarantee:
	// whichever concurrent commit runs this first wins, every other one sees
	// zero rows. Clearing the code here keeps the invariant that a voter who
	// has voted can never hold a redeemable OTP.
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE voter
		SET has_voted = TRUE, current_otp = NULL, otp_expiry = NULL
		WHERE identifier = ? AND has_voted = FALSE
	`), voterID)
	if err != nil {
		return "", wrapError(CodeStoreUnavailable, "failed to mark voter", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", wrapError(CodeStoreUnavailable, "failed to mark voter", err)
	}
	if n == 0 {
		var hasVoted bool
		err := tx.GetContext(ctx, &hasVoted, tx.Rebind(`
			SELECT has_voted FROM voter WHERE identifier = ?
		`), voterID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", newError(CodeNotFound, "identifier not found on the electoral roll")
		}
		if err != nil {
			return "", wrapError(CodeStoreUnavailable, "failed to look up voter", err)
		}
		return "", newError(CodeAlreadyVoted, "a vote has already been cast for this identifier")
	}

	for _, candidateID := range candidateIDs {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
			UPDATE candidate SET votes = votes + 1 WHERE id = ?
		`), candidateID)
		if err != nil {
			return "", wrapError(CodeCommitFailed, "failed to record selection", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return "", wrapError(CodeCommitFailed, "failed to record selection", err)
		}
		if n == 0 {
			return "", newError(CodeCommitFailed, "unknown candidate id: "+candidateID)
		}
	}

	receipt, err := auth.GenerateReceipt()
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", wrapError(CodeCommitFailed, "failed to commit vote", err)
	}

	return receipt, nil
}
