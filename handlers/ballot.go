// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/classelect/ballotd/auth"
	"github.com/classelect/ballotd/cliparse"
	"github.com/classelect/ballotd/election"
	"github.com/classelect/ballotd/middleware"
	"github.com/classelect/ballotd/models"
)

type BallotHandler struct {
	engine   *election.Engine
	sessions auth.SessionAuthority
	cfg      cliparse.Config
}

func NewBallotHandler(engine *election.Engine, sessions auth.SessionAuthority, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{engine: engine, sessions: sessions, cfg: cfg}
}

// CastBallot handles POST /ballot/cast
// The voter identity comes from the session cookie, never from the body.
// On success the cookie is overwritten with an expired one: the credential
// is spent the moment the vote commits.
func (h *BallotHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized,
			string(election.CodeUnauthenticated), "Your session is missing or has expired.")
		return
	}

	voterID, err := h.sessions.Verify(cookie.Value)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized,
			string(election.CodeInvalidSession), "Invalid or expired session. Please log in again.")
		return
	}

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	receipt, err := h.engine.Cast(r.Context(), voterID, req.CandidateIDs)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	clearSessionCookie(w, h.cfg)
	middleware.JSONResponse(w, http.StatusOK, models.CastBallotResponse{
		Success: true,
		Receipt: receipt,
	})
}

// EndSession handles POST /session/end
// Always succeeds: clearing a session that does not exist is a no-op.
func (h *BallotHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.cfg)
	middleware.JSONResponse(w, http.StatusOK, models.EndSessionResponse{Success: true})
}
