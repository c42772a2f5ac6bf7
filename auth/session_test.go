// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
	"time"
)

func TestJWTAuthority_RoundTrip(t *testing.T) {
	authority := NewJWTAuthority("test-secret")

	cred, err := authority.Mint("U2021/001")
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if cred == "" {
		t.Fatal("Mint() returned empty credential")
	}

	voterID, err := authority.Verify(cred)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if voterID != "U2021/001" {
		t.Errorf("Verify() = %q, want %q", voterID, "U2021/001")
	}
}

func TestJWTAuthority_Lifetime(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	authority := NewJWTAuthority("test-secret")
	authority.now = func() time.Time { return base }

	cred, err := authority.Mint("U2021/002")
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"immediately valid", base, false},
		{"valid mid-lifetime", base.Add(7 * time.Minute), false},
		{"valid just before expiry", base.Add(15*time.Minute - time.Second), false},
		{"rejected after expiry", base.Add(15*time.Minute + time.Second), true},
		{"rejected long after expiry", base.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authority.now = func() time.Time { return tt.at }
			_, err := authority.Verify(cred)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() at %v: error = %v, wantErr %v", tt.at, err, tt.wantErr)
			}
		})
	}
}

func TestJWTAuthority_RejectsTampering(t *testing.T) {
	authority := NewJWTAuthority("test-secret")

	cred, _ := authority.Mint("U2021/003")

	// Flip a character in the payload segment
	parts := strings.Split(cred, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected credential shape: %d segments", len(parts))
	}
	tampered := parts[0] + "." + parts[1][:len(parts[1])-2] + "xx." + parts[2]

	if _, err := authority.Verify(tampered); err == nil {
		t.Error("Verify() accepted a tampered credential")
	}
}

func TestJWTAuthority_RejectsWrongSecret(t *testing.T) {
	minter := NewJWTAuthority("secret-one")
	verifier := NewJWTAuthority("secret-two")

	cred, _ := minter.Mint("U2021/004")

	if _, err := verifier.Verify(cred); err == nil {
		t.Error("Verify() accepted a credential signed with a different secret")
	}
}

func TestJWTAuthority_RejectsGarbage(t *testing.T) {
	authority := NewJWTAuthority("test-secret")

	for _, cred := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := authority.Verify(cred); err == nil {
			t.Errorf("Verify(%q) accepted garbage", cred)
		}
	}
}
