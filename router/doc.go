// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method patterns.

NewRouter wires the full dependency graph: the session authority, the OTP
issuer, the verifier and the commit engine are constructed here from the
database handle, configuration and notifier, then handed to their handlers.

	mux := router.NewRouter(db, cfg, notifier)

Routes:

	POST /otp/send      request a one-time passcode
	POST /otp/verify    redeem a passcode for a session
	POST /ballot/cast   cast the ballot (session cookie required)
	POST /session/end   discard the session
	GET  /candidates    candidate roster
	GET  /results       per-candidate tallies
	GET  /health        liveness probe
*/
package router
