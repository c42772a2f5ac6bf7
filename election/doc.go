// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the core voting protocol: OTP issuance with abuse
control, OTP redemption into a session credential, and the exactly-once
ballot commit.

# Flow

	client → Issuer.Send        (code delivered to voter's contact)
	client → Verifier.Verify    (code redeemed, session credential minted)
	client → Engine.Cast        (vote committed atomically, receipt returned)

# Issuer

Send enforces, in order: the election window, the per-origin distinct-voter
throttle, voter existence, the has_voted flag, and a 2-minute reissue
cooldown. Codes live 10 minutes. The code is persisted before the mail is
sent; delivery failure becomes a warning on an otherwise successful result.

# Verifier

Verify compares the submitted code in constant time, refuses expired codes,
and atomically clears the stored code so it can never redeem twice. Success
yields a 15-minute session credential from the injected SessionAuthority.

# Engine

Cast validates the selection (1-5 candidates, no duplicates) and commits in
one transaction: a compare-and-set flips has_voted false→true, tallies are
incremented per candidate, and an anonymous receipt is generated. Zero rows
from the compare-and-set means another commit won; the request fails with
ALREADY_VOTED and no tally moves. An unknown candidate id rolls everything
back.

# Errors

Every failure is an *Error carrying a stable Code from the taxonomy in
errors.go. Handlers map codes to HTTP statuses; this package never imports
net/http.
*/
package election
