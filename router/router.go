// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/classelect/ballotd/auth"
	"github.com/classelect/ballotd/cliparse"
	"github.com/classelect/ballotd/election"
	"github.com/classelect/ballotd/handlers"
	"github.com/classelect/ballotd/mailer"
	"github.com/classelect/ballotd/middleware"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config, notifier mailer.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Core services
	sessions := auth.NewJWTAuthority(cfg.JWTSecret)
	issuer := election.NewIssuer(db, notifier, cfg.ElectionStart, cfg.ElectionEnd)
	verifier := election.NewVerifier(db, sessions)
	engine := election.NewEngine(db)

	// Initialize handlers
	otpHandler := handlers.NewOTPHandler(issuer, verifier, cfg)
	ballotHandler := handlers.NewBallotHandler(engine, sessions, cfg)
	resultsHandler := handlers.NewResultsHandler(db)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication
	mux.HandleFunc("POST /otp/send", middleware.WithLogging(otpHandler.SendOTP))
	mux.HandleFunc("POST /otp/verify", middleware.WithLogging(otpHandler.VerifyOTP))

	// Voting
	mux.HandleFunc("POST /ballot/cast", middleware.WithLogging(ballotHandler.CastBallot))
	mux.HandleFunc("POST /session/end", middleware.WithLogging(ballotHandler.EndSession))

	// Read-only aggregation
	mux.HandleFunc("GET /candidates", middleware.WithLogging(resultsHandler.GetCandidates))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotd API v1"))
	})

	return mux
}
