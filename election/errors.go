// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Code is a stable, machine-readable failure code. Every failure of a core
// operation carries exactly one. The HTTP layer owns the mapping to status
// codes; nothing in this package knows about HTTP.
type Code string

const (
	CodeOutOfWindow        Code = "OUT_OF_WINDOW"
	CodeOriginThrottled    Code = "ORIGIN_THROTTLED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyVoted       Code = "ALREADY_VOTED"
	CodeCooldown           Code = "COOLDOWN"
	CodeInvalidOTP         Code = "INVALID_OTP"
	CodeExpired            Code = "EXPIRED"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeInvalidSession     Code = "INVALID_SESSION"
	CodeEmptySelection     Code = "EMPTY_SELECTION"
	CodeTooManySelections  Code = "TOO_MANY_SELECTIONS"
	CodeDuplicateSelection Code = "DUPLICATE_SELECTION"
	CodeCommitFailed       Code = "COMMIT_FAILED"
	CodeStoreUnavailable   Code = "STORE_UNAVAILABLE"
	CodeNotifyFailed       Code = "NOTIFY_FAILED"
)

// Error pairs a Code with a human-readable message and an optional
// underlying cause. All errors are terminal for the current request; retry
// is a client decision.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func wrapError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the failure code from an error returned by this package.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// MessageOf returns the human-readable message for an error from this
// package, or the plain Error() string for anything else.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
