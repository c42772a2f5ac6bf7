// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/classelect/ballotd/auth"
)

// Verifier redeems a one-time passcode and mints a session credential.
type Verifier struct {
	db       *sqlx.DB
	sessions auth.SessionAuthority
	now      func() time.Time
}

func NewVerifier(db *sqlx.DB, sessions auth.SessionAuthority) *Verifier {
	return &Verifier{db: db, sessions: sessions, now: time.Now}
}

// Verify checks the submitted code against the stored one and, on success,
// clears it (one code, one redemption) and returns a minted session
// credential. Checks run in a fixed order: voter exists, has not voted,
// code matches (constant time), code not expired.
func (v *Verifier) Verify(ctx context.Context, identifier, otp string) (string, error) {
	id := NormalizeIdentifier(identifier)
	now := v.now()

	var voter voterRow
	err := v.db.GetContext(ctx, &voter, v.db.Rebind(`
		SELECT contact, current_otp, otp_expiry, has_voted
		FROM voter
		WHERE identifier = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", newError(CodeNotFound, "identifier not found on the electoral roll")
	}
	if err != nil {
		return "", wrapError(CodeStoreUnavailable, "failed to look up voter", err)
	}

	if voter.HasVoted {
		return "", newError(CodeAlreadyVoted, "a vote has already been cast for this identifier")
	}

	if !voter.CurrentOTP.Valid || !auth.ConstantTimeEqual(otp, voter.CurrentOTP.String) {
		return "", newError(CodeInvalidOTP, "invalid code; please check it and try again")
	}

	if !voter.OTPExpiry.Valid || now.After(voter.OTPExpiry.Time) {
		return "", newError(CodeExpired, "this code has expired; please request a new one")
	}

	// Consume the code. Keyed on the exact code value so a concurrent
	// redemption of the same code wins at most once.
	res, err := v.db.ExecContext(ctx, v.db.Rebind(`
		UPDATE voter
		SET current_otp = NULL, otp_expiry = NULL
		WHERE identifier = ? AND current_otp = ?
	`), id, otp)
	if err != nil {
		return "", wrapError(CodeStoreUnavailable, "failed to consume code", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", wrapError(CodeStoreUnavailable, "failed to consume code", err)
	}
	if n == 0 {
		return "", newError(CodeInvalidOTP, "invalid code; please check it and try again")
	}

	credential, err := v.sessions.Mint(id)
	if err != nil {
		return "", fmt.Errorf("failed to mint session: %w", err)
	}
	return credential, nil
}
