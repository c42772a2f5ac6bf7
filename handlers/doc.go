// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP adapters for the ballotd API.

Handlers are thin: they parse JSON, hand off to the election core, and map
the core's failure codes to HTTP statuses (respond.go owns the mapping).
No voting rule lives here.

# Handler Types

  - OTPHandler: code issuance and redemption
  - BallotHandler: ballot casting and session teardown
  - ResultsHandler: read-only candidate roster and tallies

# Voting Flow

	POST /otp/send     → SendOTP      (code mailed, masked contact returned)
	POST /otp/verify   → VerifyOTP    (session cookie set)
	POST /ballot/cast  → CastBallot   (receipt returned, cookie expired)
	POST /session/end  → EndSession   (cookie expired)

# Session Transport

The credential rides in the voter_session cookie: HttpOnly,
SameSite=Strict, Secure when configured. CastBallot reads identity from the
cookie only - a body-supplied identifier is never trusted. Both a committed
vote and an explicit logout overwrite the cookie with an expired one.

# Aggregation

	GET /candidates → roster for ballot rendering
	GET /results    → per-candidate tallies, no voter data
*/
package handlers
