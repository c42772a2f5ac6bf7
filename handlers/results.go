// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/classelect/ballotd/middleware"
	"github.com/classelect/ballotd/models"
)

// ResultsHandler serves the read-only aggregation surface: candidate roster
// and tallies. It reads tallies only, never voter identity.
type ResultsHandler struct {
	db *sqlx.DB
}

func NewResultsHandler(db *sqlx.DB) *ResultsHandler {
	return &ResultsHandler{db: db}
}

// GetResults handles GET /results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	tallies := []models.CandidateTally{}
	err := h.db.SelectContext(r.Context(), &tallies, `
		SELECT id, name, votes
		FROM candidate
		ORDER BY votes DESC, name
	`)
	if err != nil {
		slog.Error("failed to query tallies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tallies)
}

// GetCandidates handles GET /candidates
// The roster for ballot rendering: no tallies while voting is underway.
func (h *ResultsHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	candidates := []models.Candidate{}
	err := h.db.SelectContext(r.Context(), &candidates, `
		SELECT id, name, position
		FROM candidate
		ORDER BY position, name
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}
