// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/classelect/ballotd/auth"
	"github.com/classelect/ballotd/cliparse"
	"github.com/classelect/ballotd/election"
	"github.com/classelect/ballotd/middleware"
)

// SessionCookieName is the cookie carrying the session credential. HttpOnly
// and SameSite=Strict: the UI never reads it, it only rides along.
const SessionCookieName = "voter_session"

// statusFor maps the core failure taxonomy to HTTP statuses. This mapping
// lives here, at the transport boundary, and nowhere else.
func statusFor(code election.Code) int {
	switch code {
	case election.CodeOutOfWindow, election.CodeAlreadyVoted:
		return http.StatusForbidden
	case election.CodeOriginThrottled, election.CodeCooldown:
		return http.StatusTooManyRequests
	case election.CodeNotFound:
		return http.StatusNotFound
	case election.CodeInvalidOTP, election.CodeExpired,
		election.CodeUnauthenticated, election.CodeInvalidSession:
		return http.StatusUnauthorized
	case election.CodeEmptySelection, election.CodeTooManySelections,
		election.CodeDuplicateSelection, election.CodeCommitFailed:
		return http.StatusBadRequest
	case election.CodeStoreUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeElectionError renders a core error as JSON. Errors without a code
// (unexpected internals) become a plain 500.
func writeElectionError(w http.ResponseWriter, err error) {
	code, ok := election.CodeOf(err)
	if !ok {
		slog.Error("unexpected error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "An internal server error occurred.")
		return
	}
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "code", code, "error", err)
	}
	middleware.ErrorResponse(w, status, string(code), election.MessageOf(err))
}

// setSessionCookie stores the credential for its full lifetime.
func setSessionCookie(w http.ResponseWriter, cfg cliparse.Config, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(auth.SessionLifetime / time.Second),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie overwrites the credential with an already-expired one.
// With no server-side session table this is the only invalidation there is.
func clearSessionCookie(w http.ResponseWriter, cfg cliparse.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
