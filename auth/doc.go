// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and token utilities for the voting protocol.

# Session Credentials

Sessions are stateless bearer credentials: HMAC-SHA256 signed JWTs binding a
voter identifier to a 15-minute validity window. The server stores nothing;
verification is signature + expiry only.

	authority := auth.NewJWTAuthority(secret)
	cred, err := authority.Mint(voterID)
	voterID, err := authority.Verify(cred)

The SessionAuthority interface keeps the signing mechanism swappable without
touching callers.

# One-Time Passcodes

6-digit codes from a cryptographically secure source, uniform over
100000-999999:

	code, err := auth.GenerateOTPCode()

Comparison against the stored code goes through ConstantTimeEqual.

# Receipts

Anonymous proof-of-submission tokens returned after a vote commits:

	receipt, err := auth.GenerateReceipt()  // "VOTE-3F9A01BC"

Receipts carry no identity or candidate linkage.

# Contact Masking

For OTP delivery confirmations the contact address is shown masked:

	auth.MaskContact("student@example.edu")  // "st*****@example.edu"
*/
package auth
