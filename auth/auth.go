// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// GenerateOTPCode returns a 6-digit one-time passcode drawn uniformly from
// [100000, 999999] using a cryptographically secure source.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GenerateReceipt creates an anonymous proof-of-submission token of the form
// "VOTE-" followed by 8 uppercase hex characters (32 bits of entropy).
// The receipt carries no voter or candidate linkage. Uniqueness is
// probabilistic and is not re-checked against prior receipts.
func GenerateReceipt() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate receipt: %w", err)
	}
	return "VOTE-" + strings.ToUpper(hex.EncodeToString(b)), nil
}

// MaskContact hides a contact address for display: the first 2 characters
// stay visible and everything up to the domain separator is replaced with
// asterisks ("ab*****@example.edu"). Addresses too short to mask (or with
// no "@") are returned unchanged.
func MaskContact(contact string) string {
	at := strings.Index(contact, "@")
	if at <= 2 {
		return contact
	}
	return contact[:2] + strings.Repeat("*", at-2) + contact[at:]
}

// ConstantTimeEqual compares two strings in constant time. Used for OTP
// comparison so response timing leaks nothing about the stored code.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
