// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/classelect/ballotd/auth"
	"github.com/classelect/ballotd/mailer"
)

const (
	// Codes live 10 minutes; re-requesting within 2 minutes of a still-valid
	// code is refused. The cooldown is derived from remaining time-to-expiry:
	// more than lifetime-cooldown (8 minutes) left means the code is younger
	// than 2 minutes.
	otpLifetime = 10 * time.Minute
	otpCooldown = 2 * time.Minute

	// An origin that has requested codes for this many distinct identifiers
	// is refused further issuance.
	originLimit = 5

	// Outbound mail gets its own deadline so a slow relay cannot hang the
	// request past the point where the code is already persisted.
	notifyTimeout = 10 * time.Second
)

// Issuer generates, persists and delivers one-time passcodes, enforcing the
// election window, per-origin throttling and the reissue cooldown.
type Issuer struct {
	db       *sqlx.DB
	notifier mailer.Notifier
	start    time.Time
	end      time.Time
	now      func() time.Time
}

func NewIssuer(db *sqlx.DB, notifier mailer.Notifier, start, end time.Time) *Issuer {
	return &Issuer{db: db, notifier: notifier, start: start, end: end, now: time.Now}
}

// SendResult reports a successful issuance. Warning is set when the code was
// persisted but delivery failed; the code remains valid and the voter can
// re-request after the cooldown.
type SendResult struct {
	MaskedContact string
	Warning       string
}

type voterRow struct {
	Contact    string         `db:"contact"`
	CurrentOTP sql.NullString `db:"current_otp"`
	OTPExpiry  sql.NullTime   `db:"otp_expiry"`
	HasVoted   bool           `db:"has_voted"`
}

// Send runs the full issuance pipeline for one request. Preconditions are
// checked in a fixed order and the first failure wins: election window,
// origin throttle, voter exists, not already voted, reissue cooldown. The
// attempt is logged after the throttle check but before the eligibility
// checks, so the throttle counts attempts rather than successes.
func (i *Issuer) Send(ctx context.Context, identifier, origin string) (SendResult, error) {
	now := i.now()
	if now.Before(i.start) {
		return SendResult{}, newError(CodeOutOfWindow,
			fmt.Sprintf("voting has not started yet; it opens at %s", i.start.Format(time.RFC1123)))
	}
	if !now.Before(i.end) {
		return SendResult{}, newError(CodeOutOfWindow, "voting is closed; the election has ended")
	}

	id := NormalizeIdentifier(identifier)

	throttled, err := i.originThrottled(ctx, origin)
	if err != nil {
		return SendResult{}, err
	}
	if throttled {
		return SendResult{}, newError(CodeOriginThrottled,
			"suspicious activity detected; this address has requested codes for too many voters")
	}

	i.logOriginRequest(ctx, origin, id, now)

	var voter voterRow
	err = i.db.GetContext(ctx, &voter, i.db.Rebind(`
		SELECT contact, current_otp, otp_expiry, has_voted
		FROM voter
		WHERE identifier = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return SendResult{}, newError(CodeNotFound, "identifier not found on the electoral roll")
	}
	if err != nil {
		return SendResult{}, wrapError(CodeStoreUnavailable, "failed to look up voter", err)
	}

	if voter.HasVoted {
		return SendResult{}, newError(CodeAlreadyVoted, "a vote has already been cast for this identifier")
	}

	if voter.OTPExpiry.Valid && voter.OTPExpiry.Time.Sub(now) > otpLifetime-otpCooldown {
		return SendResult{}, newError(CodeCooldown,
			"please wait at least 2 minutes before requesting another code")
	}

	code, err := auth.GenerateOTPCode()
	if err != nil {
		return SendResult{}, err
	}
	expiry := now.Add(otpLifetime)

	// Conditional write: the same guards again, in the store, so two racing
	// requests cannot both slip past the cooldown read above.
	res, err := i.db.ExecContext(ctx, i.db.Rebind(`
		UPDATE voter
		SET current_otp = ?, otp_expiry = ?
		WHERE identifier = ?
		  AND has_voted = FALSE
		  AND (otp_expiry IS NULL OR otp_expiry <= ?)
	`), code, expiry, id, now.Add(otpLifetime-otpCooldown))
	if err != nil {
		return SendResult{}, wrapError(CodeStoreUnavailable, "failed to save code", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return SendResult{}, wrapError(CodeStoreUnavailable, "failed to save code", err)
	}
	if n == 0 {
		// Lost a race since the read; re-read to classify the refusal.
		return SendResult{}, i.classifyIssueConflict(ctx, id)
	}

	result := SendResult{MaskedContact: auth.MaskContact(voter.Contact)}

	// Persist first, then notify: a delivery failure leaves a valid code
	// behind, so it is reported as a warning rather than failing the request.
	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := i.notifier.Send(nctx, voter.Contact, otpMailSubject, otpMailBody(code)); err != nil {
		slog.Warn("otp delivery failed", "identifier", id, "error", err)
		result.Warning = "the code could not be delivered; if it does not arrive, request a new one after 2 minutes"
	}

	return result, nil
}

func (i *Issuer) classifyIssueConflict(ctx context.Context, id string) error {
	var voter voterRow
	err := i.db.GetContext(ctx, &voter, i.db.Rebind(`
		SELECT contact, current_otp, otp_expiry, has_voted
		FROM voter
		WHERE identifier = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return newError(CodeNotFound, "identifier not found on the electoral roll")
	}
	if err != nil {
		return wrapError(CodeStoreUnavailable, "failed to look up voter", err)
	}
	if voter.HasVoted {
		return newError(CodeAlreadyVoted, "a vote has already been cast for this identifier")
	}
	return newError(CodeCooldown, "please wait at least 2 minutes before requesting another code")
}

// NormalizeIdentifier case-normalizes a registration number the way it is
// stored on the roll.
func NormalizeIdentifier(identifier string) string {
	return strings.ToUpper(strings.TrimSpace(identifier))
}

const otpMailSubject = "Your Voting OTP - Senatorial Election"

func otpMailBody(code string) string {
	return fmt.Sprintf(`Hello,

You requested access to the voting portal. Your One-Time Password (OTP) is:

    %s

Note: this OTP will expire in exactly 10 minutes. Do not share this code
with anyone.

If you did not request this, please ignore this message or contact the
electoral admin immediately.
`, code)
}
